package db

import (
	"context"

	"folio/internal/model"
)

const profileColumns = `p.id, p.user_id, p.name, p.last_name, u.email,
	p.current_title, p.bio_summary, p.location, p.phone, p.photo_url,
	p.profile, p.cv_url`

// ProfileParams carries the writable profile fields.
type ProfileParams struct {
	Name         string
	LastName     string
	CurrentTitle *string
	BioSummary   *string
	Location     *string
	Phone        *string
	PhotoURL     *string
	Profile      *string
	CVURL        *string
}

func scanProfile(row interface{ Scan(...any) error }) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.LastName, &p.Email,
		&p.CurrentTitle, &p.BioSummary, &p.Location, &p.Phone, &p.PhotoURL,
		&p.Profile, &p.CVURL,
	)
	return p, err
}

func (q *Queries) CreateProfile(ctx context.Context, userID int64, params ProfileParams) (model.Profile, error) {
	row := q.Pool.QueryRow(ctx,
		`WITH inserted AS (
			INSERT INTO profiles (user_id, name, last_name, current_title, bio_summary,
				location, phone, photo_url, profile, cv_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT `+profileColumns+` FROM inserted p JOIN users u ON u.id = p.user_id`,
		userID, params.Name, params.LastName, params.CurrentTitle, params.BioSummary,
		params.Location, params.Phone, params.PhotoURL, params.Profile, params.CVURL,
	)
	return scanProfile(row)
}

func (q *Queries) GetProfileByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	row := q.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND p.deleted_at IS NULL`,
		userID,
	)
	return scanProfile(row)
}

func (q *Queries) GetProfileByUsername(ctx context.Context, username string) (model.Profile, error) {
	row := q.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND p.deleted_at IS NULL`,
		username,
	)
	return scanProfile(row)
}

func (q *Queries) UpdateProfileByUserID(ctx context.Context, userID int64, params ProfileParams) (model.Profile, error) {
	row := q.Pool.QueryRow(ctx,
		`WITH updated AS (
			UPDATE profiles SET name = $2, last_name = $3, current_title = $4,
				bio_summary = $5, location = $6, phone = $7, photo_url = $8,
				profile = $9, cv_url = $10, updated_at = NOW()
			WHERE user_id = $1 AND deleted_at IS NULL
			RETURNING *
		)
		SELECT `+profileColumns+` FROM updated p JOIN users u ON u.id = p.user_id`,
		userID, params.Name, params.LastName, params.CurrentTitle, params.BioSummary,
		params.Location, params.Phone, params.PhotoURL, params.Profile, params.CVURL,
	)
	return scanProfile(row)
}
