package service

import (
	"dealgraph.app/insight/internal/store"
	"dealgraph.app/insight/internal/timeline"
)

type Services struct {
	coverage  CoverageService
	timelines TimelineService
}

type ServicesConfig struct {
	Catalog store.CatalogStore
	Source  timeline.Source
}

// NewServices wires the service layer. The timeline service is constructed
// once because it owns the inspection session's lifecycle state.
func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		coverage:  NewCoverageService(cfg.Catalog),
		timelines: NewTimelineService(cfg.Source),
	}
}

func (s *Services) Coverage() CoverageService {
	return s.coverage
}

func (s *Services) Timelines() TimelineService {
	return s.timelines
}
