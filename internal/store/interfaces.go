package store

import (
	"context"
	"errors"

	"dealgraph.app/insight/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// CatalogStore defines the contract for use-case catalog access. The
// catalog's source (file, Postgres, knowledge graph) is deployment
// configuration; its shape and ordering contract are fixed.
type CatalogStore interface {
	LoadCatalog(ctx context.Context) ([]model.CoverageRecord, error)
}
