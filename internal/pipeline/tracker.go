package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/kurochkinivan/defect_reporter/internal/lifecycle"
	"golang.org/x/sync/errgroup"
)

// Tracker drives every received file to a terminal job state and emits the outcome.
type Tracker struct {
	log        *slog.Logger
	workers    int
	fileIDs    <-chan domain.ID
	outcomes   chan<- *domain.Outcome
	controller LifecycleController
}

func NewTracker(
	log *slog.Logger,
	workers int,
	fileIDs <-chan domain.ID,
	outcomes chan<- *domain.Outcome,
	controller LifecycleController,
) *Tracker {
	return &Tracker{
		log:        log,
		workers:    max(workers, 1),
		fileIDs:    fileIDs,
		outcomes:   outcomes,
		controller: controller,
	}
}

func (t *Tracker) Run(ctx context.Context) error {
	defer close(t.outcomes)

	var g errgroup.Group
	g.SetLimit(t.workers)

	for {
		select {
		case fileID, ok := <-t.fileIDs:
			if !ok {
				return g.Wait()
			}

			g.Go(func() error {
				t.track(ctx, fileID)
				return nil
			})

		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		}
	}
}

func (t *Tracker) track(ctx context.Context, fileID domain.ID) {
	log := t.log.With(slog.String("file_id", fileID.String()))

	log.InfoContext(ctx, "tracking file")

	outcome, err := t.controller.ResumeOrStart(ctx, fileID)
	if errors.Is(err, lifecycle.ErrCancelled) {
		log.InfoContext(ctx, "tracking cancelled")
		return
	}

	switch {
	case outcome == nil:
		outcome = &domain.Outcome{FileID: fileID, Error: err}
	case outcome.Error == nil && err != nil:
		// the controller's outcome may be shared, so it is copied rather than written
		withErr := *outcome
		withErr.Error = err
		outcome = &withErr
	}

	if err != nil {
		log.WarnContext(ctx, "job did not complete", slog.String("err", err.Error()))
	}

	select {
	case t.outcomes <- outcome:
	case <-ctx.Done():
	}
}
