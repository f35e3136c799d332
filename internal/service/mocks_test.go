package service_test

import (
	"context"

	"dealgraph.app/insight/internal/model"
)

type mockCatalogStore struct {
	loadFn func(ctx context.Context) ([]model.CoverageRecord, error)
}

func (m *mockCatalogStore) LoadCatalog(ctx context.Context) ([]model.CoverageRecord, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

type mockSource struct {
	getFn func(ctx context.Context, project string) (model.Timeline, error)
}

func (m *mockSource) GetTimeline(ctx context.Context, project string) (model.Timeline, error) {
	if m.getFn != nil {
		return m.getFn(ctx, project)
	}
	return model.Timeline{Project: project}, nil
}
