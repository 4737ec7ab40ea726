package db

import (
	"context"
	"fmt"
	"time"
)

// softDeleteTables lists every table the purge job hard-deletes from. Order
// matters: child rows go before profiles.
var softDeleteTables = []string{
	"technologies",
	"projects",
	"work_experience",
	"clients",
	"socials",
	"profiles",
}

// PurgeSoftDeleted hard-deletes rows that were soft-deleted longer ago than
// the retention window. Returns the number of rows removed.
func (q *Queries) PurgeSoftDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	var total int64
	for _, table := range softDeleteTables {
		result, err := q.Pool.Exec(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE deleted_at IS NOT NULL AND deleted_at < $1", table),
			cutoff,
		)
		if err != nil {
			return total, fmt.Errorf("purge %s: %w", table, err)
		}
		total += result.RowsAffected()
	}
	return total, nil
}

// ListReferencedMediaURLs collects every media URL any live row points at.
// The sweep job deletes stored objects missing from this set.
func (q *Queries) ListReferencedMediaURLs(ctx context.Context) ([]string, error) {
	rows, err := q.Pool.Query(ctx, `
		SELECT photo_url FROM profiles WHERE photo_url IS NOT NULL
		UNION
		SELECT cv_url FROM profiles WHERE cv_url IS NOT NULL
		UNION
		SELECT icon_url FROM technologies WHERE icon_url IS NOT NULL
		UNION
		SELECT thumbnail_url FROM projects WHERE thumbnail_url IS NOT NULL
		UNION
		SELECT image_url FROM project_previews
		UNION
		SELECT client_photo_url FROM clients WHERE client_photo_url IS NOT NULL`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
