// Package repo holds the PostgreSQL implementations of the domain repositories.
// Every statement comes from sqlinline and runs through infra.SQLRunner.
package repo

import (
	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
)

// notFound maps pgx.ErrNoRows to domain.ErrNotFound. A key that is not a
// valid uuid cannot match a row either.
func notFound(err error) error {
	if infra.IsNoRows(err) || infra.IsInvalidText(err) {
		return domain.ErrNotFound
	}
	return err
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func breakdown(rows pgx.Rows) (*domain.RatingSummary, error) {
	defer rows.Close()
	summary := &domain.RatingSummary{ByStar: map[int]int{}}
	total := 0
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		summary.ByStar[rating] = count
		summary.Count += count
		total += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}
