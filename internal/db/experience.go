package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"folio/internal/model"
)

// ExperienceParams carries the writable work-experience fields.
type ExperienceParams struct {
	JobTitle    string
	Company     string
	Location    *string
	StartDate   string
	EndDate     *string
	Description *string
}

func scanExperience(rows pgx.Rows) ([]model.WorkExperience, error) {
	defer rows.Close()
	items := []model.WorkExperience{}
	for rows.Next() {
		var e model.WorkExperience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.JobTitle, &e.Company,
			&e.Location, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (q *Queries) CreateExperience(ctx context.Context, profileID int64, params ExperienceParams) (model.WorkExperience, error) {
	var e model.WorkExperience
	err := q.Pool.QueryRow(ctx,
		`INSERT INTO work_experience (profile_id, job_title, company, location, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, profile_id, job_title, company, location,
			to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), description`,
		profileID, params.JobTitle, params.Company, params.Location,
		params.StartDate, params.EndDate, params.Description,
	).Scan(&e.ID, &e.ProfileID, &e.JobTitle, &e.Company, &e.Location,
		&e.StartDate, &e.EndDate, &e.Description)
	return e, err
}

func (q *Queries) ListExperienceByProfile(ctx context.Context, profileID int64) ([]model.WorkExperience, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT id, profile_id, job_title, company, location,
			to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), description
		FROM work_experience
		WHERE profile_id = $1 AND deleted_at IS NULL
		ORDER BY start_date DESC, id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	return scanExperience(rows)
}

func (q *Queries) ListPublicExperience(ctx context.Context, username string) ([]model.WorkExperience, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT w.id, w.profile_id, w.job_title, w.company, w.location,
			to_char(w.start_date, 'YYYY-MM-DD'), to_char(w.end_date, 'YYYY-MM-DD'), w.description
		FROM work_experience w
		JOIN profiles p ON p.id = w.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND w.deleted_at IS NULL AND p.deleted_at IS NULL
		ORDER BY w.start_date DESC, w.id DESC`,
		username,
	)
	if err != nil {
		return nil, err
	}
	return scanExperience(rows)
}

func (q *Queries) UpdateExperience(ctx context.Context, id, profileID int64, params ExperienceParams) (model.WorkExperience, error) {
	var e model.WorkExperience
	err := q.Pool.QueryRow(ctx,
		`UPDATE work_experience SET job_title = $3, company = $4, location = $5,
			start_date = $6, end_date = $7, description = $8, updated_at = NOW()
		WHERE id = $1 AND profile_id = $2 AND deleted_at IS NULL
		RETURNING id, profile_id, job_title, company, location,
			to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), description`,
		id, profileID, params.JobTitle, params.Company, params.Location,
		params.StartDate, params.EndDate, params.Description,
	).Scan(&e.ID, &e.ProfileID, &e.JobTitle, &e.Company, &e.Location,
		&e.StartDate, &e.EndDate, &e.Description)
	return e, err
}

func (q *Queries) SoftDeleteExperience(ctx context.Context, id, profileID int64) error {
	result, err := q.Pool.Exec(ctx,
		`UPDATE work_experience SET deleted_at = NOW()
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
