package store

import (
	"context"
	"fmt"

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

// SaleRecord is one row of a garden's sales ledger.
type SaleRecord struct {
	Day  int
	Sale game.Sale
}

func (s *Store) RecordSale(ctx context.Context, garden string, day int, sale game.Sale) error {
	const q = `
		INSERT INTO sales (garden, day, strain_id, grams, quality, revenue, score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, garden, day, sale.StrainID, sale.Grams, sale.Quality, sale.Revenue, sale.Score); err != nil {
		return fmt.Errorf("store: record sale for %q: %w", garden, err)
	}
	return nil
}

// Sales returns the ledger in the order sales were made.
func (s *Store) Sales(ctx context.Context, garden string) ([]SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, strain_id, grams, quality, revenue, score
		FROM sales WHERE garden = ? ORDER BY id`, garden)
	if err != nil {
		return nil, fmt.Errorf("store: list sales for %q: %w", garden, err)
	}
	defer rows.Close()

	var out []SaleRecord
	for rows.Next() {
		var r SaleRecord
		if err := rows.Scan(&r.Day, &r.Sale.StrainID, &r.Sale.Grams, &r.Sale.Quality, &r.Sale.Revenue, &r.Sale.Score); err != nil {
			return nil, fmt.Errorf("store: scan sale: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
