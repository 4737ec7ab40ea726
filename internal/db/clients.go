package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"folio/internal/model"
)

// ClientParams carries the writable client-testimonial fields.
type ClientParams struct {
	Name           string
	Company        *string
	Feedback       *string
	ClientPhotoURL *string
	ProjectLink    *string
}

func scanClients(rows pgx.Rows) ([]model.Client, error) {
	defer rows.Close()
	items := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Company,
			&c.Feedback, &c.ClientPhotoURL, &c.ProjectLink); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (q *Queries) CreateClient(ctx context.Context, profileID int64, params ClientParams) (model.Client, error) {
	var c model.Client
	err := q.Pool.QueryRow(ctx,
		`INSERT INTO clients (profile_id, name, company, feedback, client_photo_url, project_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, profile_id, name, company, feedback, client_photo_url, project_link`,
		profileID, params.Name, params.Company, params.Feedback,
		params.ClientPhotoURL, params.ProjectLink,
	).Scan(&c.ID, &c.ProfileID, &c.Name, &c.Company, &c.Feedback,
		&c.ClientPhotoURL, &c.ProjectLink)
	return c, err
}

func (q *Queries) ListClientsByProfile(ctx context.Context, profileID int64) ([]model.Client, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT id, profile_id, name, company, feedback, client_photo_url, project_link
		FROM clients
		WHERE profile_id = $1 AND deleted_at IS NULL
		ORDER BY id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	return scanClients(rows)
}

func (q *Queries) ListPublicClients(ctx context.Context, username string) ([]model.Client, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT c.id, c.profile_id, c.name, c.company, c.feedback, c.client_photo_url, c.project_link
		FROM clients c
		JOIN profiles p ON p.id = c.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND c.deleted_at IS NULL AND p.deleted_at IS NULL
		ORDER BY c.id DESC`,
		username,
	)
	if err != nil {
		return nil, err
	}
	return scanClients(rows)
}

func (q *Queries) UpdateClient(ctx context.Context, id, profileID int64, params ClientParams) (model.Client, error) {
	var c model.Client
	err := q.Pool.QueryRow(ctx,
		`UPDATE clients SET name = $3, company = $4, feedback = $5,
			client_photo_url = $6, project_link = $7, updated_at = NOW()
		WHERE id = $1 AND profile_id = $2 AND deleted_at IS NULL
		RETURNING id, profile_id, name, company, feedback, client_photo_url, project_link`,
		id, profileID, params.Name, params.Company, params.Feedback,
		params.ClientPhotoURL, params.ProjectLink,
	).Scan(&c.ID, &c.ProfileID, &c.Name, &c.Company, &c.Feedback,
		&c.ClientPhotoURL, &c.ProjectLink)
	return c, err
}

func (q *Queries) SoftDeleteClient(ctx context.Context, id, profileID int64) error {
	result, err := q.Pool.Exec(ctx,
		`UPDATE clients SET deleted_at = NOW()
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
