package store

import (
	"context"

	"dealgraph.app/insight/internal/coverage"
	"dealgraph.app/insight/internal/model"
)

type fileCatalogStore struct {
	path string
}

// NewFileCatalog creates a CatalogStore backed by a YAML catalog file.
// The file is re-read on every load so catalog edits show up without a
// restart.
func NewFileCatalog(path string) CatalogStore {
	return &fileCatalogStore{path: path}
}

func (s *fileCatalogStore) LoadCatalog(_ context.Context) ([]model.CoverageRecord, error) {
	return coverage.LoadCatalog(s.path)
}
