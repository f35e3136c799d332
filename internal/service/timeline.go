package service

import (
	"context"
	"log/slog"
	"sync"

	"dealgraph.app/insight/common/logger"
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/timeline"
)

type TimelineService interface {
	// Fetch retrieves a project's timeline synchronously.
	Fetch(ctx context.Context, project string) (model.Timeline, error)
	// Inspect starts a lifecycle-guarded fetch for project and returns the
	// request generation token. A new Inspect supersedes any in-flight one.
	Inspect(ctx context.Context, project string) string
	// Current returns the inspection session's lifecycle snapshot.
	Current() timeline.Snapshot
}

type timelineService struct {
	assembler *timeline.Assembler
	lifecycle *timeline.Lifecycle

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewTimelineService(source timeline.Source) TimelineService {
	return &timelineService{
		assembler: timeline.NewAssembler(source),
		lifecycle: timeline.NewLifecycle(),
	}
}

func (s *timelineService) Fetch(ctx context.Context, project string) (model.Timeline, error) {
	return s.assembler.FetchTimeline(ctx, project)
}

func (s *timelineService) Inspect(ctx context.Context, project string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Correctness comes from the lifecycle's generation guard; cancelling
	// the superseded fetch just stops it from burning backend time.
	if s.cancel != nil {
		s.cancel()
	}

	generation := s.lifecycle.Start(project)

	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	fetchCtx = logger.WithLogFields(fetchCtx, logger.LogFields{
		Project:   logger.Ptr(project),
		Component: "insight.timeline.inspection",
	})

	go func() {
		defer cancel()

		tl, err := s.assembler.FetchTimeline(fetchCtx, project)
		if err != nil {
			if !s.lifecycle.Reject(generation, err) {
				slog.DebugContext(fetchCtx, "stale timeline failure discarded", "project", project)
			}
			return
		}
		if !s.lifecycle.Resolve(generation, tl) {
			slog.DebugContext(fetchCtx, "stale timeline result discarded", "project", project)
		}
	}()

	return generation
}

func (s *timelineService) Current() timeline.Snapshot {
	return s.lifecycle.Snapshot()
}
