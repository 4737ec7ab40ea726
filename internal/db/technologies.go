package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"folio/internal/model"
)

// TechnologyParams carries the writable technology fields.
type TechnologyParams struct {
	Name     string
	Category model.TechnologyCategory
	IconURL  *string
}

func scanTechnologies(rows pgx.Rows) ([]model.Technology, error) {
	defer rows.Close()
	items := []model.Technology{}
	for rows.Next() {
		var t model.Technology
		if err := rows.Scan(&t.ID, &t.ProfileID, &t.Name, &t.Category, &t.IconURL); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (q *Queries) CreateTechnology(ctx context.Context, profileID int64, params TechnologyParams) (model.Technology, error) {
	var t model.Technology
	err := q.Pool.QueryRow(ctx,
		`INSERT INTO technologies (profile_id, name, category, icon_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, profile_id, name, category, icon_url`,
		profileID, params.Name, string(params.Category), params.IconURL,
	).Scan(&t.ID, &t.ProfileID, &t.Name, &t.Category, &t.IconURL)
	return t, err
}

func (q *Queries) ListTechnologiesByProfile(ctx context.Context, profileID int64) ([]model.Technology, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT id, profile_id, name, category, icon_url FROM technologies
		WHERE profile_id = $1 AND deleted_at IS NULL
		ORDER BY id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	return scanTechnologies(rows)
}

func (q *Queries) ListPublicTechnologies(ctx context.Context, username string) ([]model.Technology, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT t.id, t.profile_id, t.name, t.category, t.icon_url
		FROM technologies t
		JOIN profiles p ON p.id = t.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND t.deleted_at IS NULL AND p.deleted_at IS NULL
		ORDER BY t.name`,
		username,
	)
	if err != nil {
		return nil, err
	}
	return scanTechnologies(rows)
}

func (q *Queries) UpdateTechnology(ctx context.Context, id, profileID int64, params TechnologyParams) (model.Technology, error) {
	var t model.Technology
	err := q.Pool.QueryRow(ctx,
		`UPDATE technologies SET name = $3, category = $4, icon_url = $5, updated_at = NOW()
		WHERE id = $1 AND profile_id = $2 AND deleted_at IS NULL
		RETURNING id, profile_id, name, category, icon_url`,
		id, profileID, params.Name, string(params.Category), params.IconURL,
	).Scan(&t.ID, &t.ProfileID, &t.Name, &t.Category, &t.IconURL)
	return t, err
}

// SoftDeleteTechnology marks the row deleted; it stops appearing in lists
// but stays in the table until the purge job removes it.
func (q *Queries) SoftDeleteTechnology(ctx context.Context, id, profileID int64) error {
	result, err := q.Pool.Exec(ctx,
		`UPDATE technologies SET deleted_at = NOW()
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
