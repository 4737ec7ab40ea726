package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"folio/internal/model"
)

// SocialParams carries the writable social-link fields.
type SocialParams struct {
	Platform string
	URL      string
	IconName *string
	Order    int
}

func scanSocials(rows pgx.Rows) ([]model.Social, error) {
	defer rows.Close()
	items := []model.Social{}
	for rows.Next() {
		var s model.Social
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Platform, &s.URL, &s.IconName, &s.Order); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (q *Queries) CreateSocial(ctx context.Context, profileID int64, params SocialParams) (model.Social, error) {
	var s model.Social
	err := q.Pool.QueryRow(ctx,
		`INSERT INTO socials (profile_id, platform, url, icon_name, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, profile_id, platform, url, icon_name, sort_order`,
		profileID, params.Platform, params.URL, params.IconName, params.Order,
	).Scan(&s.ID, &s.ProfileID, &s.Platform, &s.URL, &s.IconName, &s.Order)
	return s, err
}

func (q *Queries) ListSocialsByProfile(ctx context.Context, profileID int64) ([]model.Social, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT id, profile_id, platform, url, icon_name, sort_order FROM socials
		WHERE profile_id = $1 AND deleted_at IS NULL
		ORDER BY sort_order, id`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	return scanSocials(rows)
}

func (q *Queries) ListPublicSocials(ctx context.Context, username string) ([]model.Social, error) {
	rows, err := q.Pool.Query(ctx,
		`SELECT s.id, s.profile_id, s.platform, s.url, s.icon_name, s.sort_order
		FROM socials s
		JOIN profiles p ON p.id = s.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND s.deleted_at IS NULL AND p.deleted_at IS NULL
		ORDER BY s.sort_order, s.id`,
		username,
	)
	if err != nil {
		return nil, err
	}
	return scanSocials(rows)
}

func (q *Queries) UpdateSocial(ctx context.Context, id, profileID int64, params SocialParams) (model.Social, error) {
	var s model.Social
	err := q.Pool.QueryRow(ctx,
		`UPDATE socials SET platform = $3, url = $4, icon_name = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $1 AND profile_id = $2 AND deleted_at IS NULL
		RETURNING id, profile_id, platform, url, icon_name, sort_order`,
		id, profileID, params.Platform, params.URL, params.IconName, params.Order,
	).Scan(&s.ID, &s.ProfileID, &s.Platform, &s.URL, &s.IconName, &s.Order)
	return s, err
}

func (q *Queries) SoftDeleteSocial(ctx context.Context, id, profileID int64) error {
	result, err := q.Pool.Exec(ctx,
		`UPDATE socials SET deleted_at = NOW()
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
