package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dealgraph.app/insight/internal/model"
)

type pgCatalogStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog creates a CatalogStore backed by the use_cases table.
func NewPostgresCatalog(pool *pgxpool.Pool) CatalogStore {
	return &pgCatalogStore{pool: pool}
}

func (s *pgCatalogStore) LoadCatalog(ctx context.Context) ([]model.CoverageRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, status, email_count,
		       products, parameters, email_examples, what_works, whats_gap
		FROM use_cases
		ORDER BY ordinal ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying use cases: %w", err)
	}
	defer rows.Close()

	var records []model.CoverageRecord
	for rows.Next() {
		var (
			rec         model.CoverageRecord
			status      string
			examplesRaw []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.Title, &status, &rec.EmailCount,
			&rec.Products, &rec.Parameters, &examplesRaw, &rec.WhatWorks, &rec.WhatsGap,
		); err != nil {
			return nil, fmt.Errorf("scanning use case: %w", err)
		}

		rec.Status = model.CoverageStatus(status)
		if len(examplesRaw) > 0 {
			if err := json.Unmarshal(examplesRaw, &rec.EmailExamples); err != nil {
				return nil, fmt.Errorf("decoding email examples for %q: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating use cases: %w", err)
	}

	return records, nil
}
