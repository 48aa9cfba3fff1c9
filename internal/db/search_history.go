package db

import (
	"context"
	"fmt"
)

// AddSearchQuery appends one row to the search log with the current timestamp
func (db *DB) AddSearchQuery(ctx context.Context, query string) (*SearchEntry, error) {
	var e SearchEntry
	err := db.pool.QueryRow(ctx,
		`INSERT INTO search_history (query) VALUES ($1)
		 RETURNING id, query, "timestamp"`,
		query,
	).Scan(&e.ID, &e.Query, &e.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to add search query: %w", err)
	}
	return &e, nil
}

// GetRecentSearches returns the most recent search rows, newest first.
// Rows are not deduplicated.
func (db *DB) GetRecentSearches(ctx context.Context, limit int) ([]SearchEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, query, "timestamp" FROM search_history
		 ORDER BY "timestamp" DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent searches: %w", err)
	}
	defer rows.Close()

	entries := []SearchEntry{}
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan search entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get recent searches: %w", err)
	}
	return entries, nil
}
