package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"folio/internal/model"
)

// ProjectPreviewParams carries one gallery image for a project.
type ProjectPreviewParams struct {
	ImageURL string
	Caption  *string
	Order    int
}

// ProjectParams carries the writable project fields plus its associations.
// TechnologyIDs and Previews replace the existing sets on update.
type ProjectParams struct {
	Title            string
	Category         model.ProjectCategory
	Description      *string
	ThumbnailURL     *string
	LiveURL          *string
	RepoURL          *string
	Featured         bool
	WorkExperienceID *int64
	TechnologyIDs    []int64
	Previews         []ProjectPreviewParams
}

const projectColumns = `id, profile_id, title, category, description,
	thumbnail_url, live_url, repo_url, featured, work_experience_id`

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.ProfileID, &p.Title, &p.Category, &p.Description,
		&p.ThumbnailURL, &p.LiveURL, &p.RepoURL, &p.Featured, &p.WorkExperienceID)
	return p, err
}

// CreateProject inserts the project row and its associations in one transaction.
func (q *Queries) CreateProject(ctx context.Context, profileID int64, params ProjectParams) (model.Project, error) {
	tx, err := q.Pool.Begin(ctx)
	if err != nil {
		return model.Project{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	p, err := scanProject(tx.QueryRow(ctx,
		`INSERT INTO projects (profile_id, title, category, description,
			thumbnail_url, live_url, repo_url, featured, work_experience_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+projectColumns,
		profileID, params.Title, string(params.Category), params.Description,
		params.ThumbnailURL, params.LiveURL, params.RepoURL, params.Featured,
		params.WorkExperienceID,
	))
	if err != nil {
		return model.Project{}, err
	}
	if err := writeAssociations(ctx, tx, p.ID, profileID, params); err != nil {
		return model.Project{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Project{}, fmt.Errorf("commit: %w", err)
	}
	return q.loadAssociations(ctx, p)
}

// UpdateProject rewrites the project row and replaces its associations.
func (q *Queries) UpdateProject(ctx context.Context, id, profileID int64, params ProjectParams) (model.Project, error) {
	tx, err := q.Pool.Begin(ctx)
	if err != nil {
		return model.Project{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	p, err := scanProject(tx.QueryRow(ctx,
		`UPDATE projects SET title = $3, category = $4, description = $5,
			thumbnail_url = $6, live_url = $7, repo_url = $8, featured = $9,
			work_experience_id = $10, updated_at = NOW()
		WHERE id = $1 AND profile_id = $2 AND deleted_at IS NULL
		RETURNING `+projectColumns,
		id, profileID, params.Title, string(params.Category), params.Description,
		params.ThumbnailURL, params.LiveURL, params.RepoURL, params.Featured,
		params.WorkExperienceID,
	))
	if err != nil {
		return model.Project{}, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM project_technologies WHERE project_id = $1`, id); err != nil {
		return model.Project{}, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM project_previews WHERE project_id = $1`, id); err != nil {
		return model.Project{}, err
	}
	if err := writeAssociations(ctx, tx, id, profileID, params); err != nil {
		return model.Project{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Project{}, fmt.Errorf("commit: %w", err)
	}
	return q.loadAssociations(ctx, p)
}

// writeAssociations links technologies (only the caller's own, live rows) and
// inserts preview images for the project.
func writeAssociations(ctx context.Context, tx pgx.Tx, projectID, profileID int64, params ProjectParams) error {
	for _, techID := range params.TechnologyIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_technologies (project_id, technology_id)
			SELECT $1, id FROM technologies
			WHERE id = $2 AND profile_id = $3 AND deleted_at IS NULL`,
			projectID, techID, profileID,
		)
		if err != nil {
			return fmt.Errorf("link technology %d: %w", techID, err)
		}
	}
	for _, pv := range params.Previews {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_previews (project_id, image_url, caption, sort_order)
			VALUES ($1, $2, $3, $4)`,
			projectID, pv.ImageURL, pv.Caption, pv.Order,
		)
		if err != nil {
			return fmt.Errorf("insert preview: %w", err)
		}
	}
	return nil
}

func (q *Queries) ListProjectsByProfile(ctx context.Context, profileID int64) ([]model.Project, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects
		WHERE profile_id = $1 AND deleted_at IS NULL
		ORDER BY featured DESC, id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	return q.collectProjects(ctx, rows)
}

func (q *Queries) ListPublicProjects(ctx context.Context, username string) ([]model.Project, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT pr.id, pr.profile_id, pr.title, pr.category, pr.description,
			pr.thumbnail_url, pr.live_url, pr.repo_url, pr.featured, pr.work_experience_id
		FROM projects pr
		JOIN profiles p ON p.id = pr.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND pr.deleted_at IS NULL AND p.deleted_at IS NULL
		ORDER BY pr.featured DESC, pr.id DESC`,
		username,
	)
	if err != nil {
		return nil, err
	}
	return q.collectProjects(ctx, rows)
}

func (q *Queries) collectProjects(ctx context.Context, rows pgx.Rows) ([]model.Project, error) {
	defer rows.Close()
	items := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.Title, &p.Category, &p.Description,
			&p.ThumbnailURL, &p.LiveURL, &p.RepoURL, &p.Featured, &p.WorkExperienceID); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range items {
		loaded, err := q.loadAssociations(ctx, items[i])
		if err != nil {
			return nil, err
		}
		items[i] = loaded
	}
	return items, nil
}

// loadAssociations fills the technology and preview slices for one project.
func (q *Queries) loadAssociations(ctx context.Context, p model.Project) (model.Project, error) {
	techRows, err := q.Pool.Query(ctx,
		`SELECT t.id, t.profile_id, t.name, t.category, t.icon_url
		FROM technologies t
		JOIN project_technologies pt ON pt.technology_id = t.id
		WHERE pt.project_id = $1 AND t.deleted_at IS NULL
		ORDER BY t.name`,
		p.ID,
	)
	if err != nil {
		return model.Project{}, err
	}
	if p.Technologies, err = scanTechnologies(techRows); err != nil {
		return model.Project{}, err
	}

	previewRows, err := q.Pool.Query(ctx,
		`SELECT id, project_id, image_url, caption, sort_order FROM project_previews
		WHERE project_id = $1
		ORDER BY sort_order, id`,
		p.ID,
	)
	if err != nil {
		return model.Project{}, err
	}
	defer previewRows.Close()
	p.Previews = []model.ProjectPreview{}
	for previewRows.Next() {
		var pv model.ProjectPreview
		if err := previewRows.Scan(&pv.ID, &pv.ProjectID, &pv.ImageURL, &pv.Caption, &pv.Order); err != nil {
			return model.Project{}, err
		}
		p.Previews = append(p.Previews, pv)
	}
	return p, previewRows.Err()
}

func (q *Queries) SoftDeleteProject(ctx context.Context, id, profileID int64) error {
	result, err := q.Pool.Exec(ctx,
		`UPDATE projects SET deleted_at = NOW()
		WHERE id = $1 AND profile_id = $2 AND deleted_at IS NULL`,
		id, profileID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
