package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kurochkinivan/defect_reporter/internal/analytics"
	"github.com/kurochkinivan/defect_reporter/internal/config"
	v1 "github.com/kurochkinivan/defect_reporter/internal/controller/http/v1"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/kurochkinivan/defect_reporter/internal/infrastructure/processing_api"
	"github.com/kurochkinivan/defect_reporter/internal/infrastructure/report_generator"
	"github.com/kurochkinivan/defect_reporter/internal/lifecycle"
	"github.com/kurochkinivan/defect_reporter/internal/pipeline"
	"github.com/kurochkinivan/defect_reporter/internal/repository/postgresql"
	"golang.org/x/sync/errgroup"
)

const (
	fileIDsBuffer  = 100
	outcomesBuffer = 50
	reportsBuffer  = 100

	// connections beyond the tracker workers, for the http api and resume
	extraConns = 4
)

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting app",
		slog.String("backend_url", a.cfg.Backend.BaseURL),
		slog.String("reports_dir", a.cfg.App.ReportsDirectory),
		slog.Duration("poll_interval", a.cfg.App.PollInterval),
		slog.Int("workers", a.cfg.App.Workers),
		slog.Bool("auto_execute", a.cfg.App.AutoExecute),
	)

	a.log.InfoContext(ctx, "establishing postgresql connection",
		slog.String("postgresql_host", a.cfg.PostgreSQL.Host),
		slog.String("postgresql_port", a.cfg.PostgreSQL.Port),
		slog.String("postgresql_dbname", a.cfg.PostgreSQL.DBName),
	)

	pool, err := postgresql.NewConnection(ctx, a.log, a.cfg.PostgreSQL, a.cfg.App.Workers+extraConns)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer pool.Close()

	jobsRepository := postgresql.NewJobsRepository(pool)
	analysesRepository := postgresql.NewAnalysesRepository(pool)
	txManager := postgresql.NewTxManager(pool)

	client, err := a.newClient()
	if err != nil {
		return err
	}

	controller := lifecycle.NewController(a.log, client,
		lifecycle.WithPollInterval(a.cfg.App.PollInterval),
		lifecycle.WithAutoExecute(a.cfg.App.AutoExecute),
		lifecycle.WithSnapshotRecorder(jobsRepository),
	)
	defer controller.Close()

	return a.startPipeline(ctx, controller, jobsRepository, analysesRepository, txManager)
}

func (a *App) newClient() (*processing_api.Client, error) {
	client, err := processing_api.NewClient(a.log, a.cfg.Backend.BaseURL, a.cfg.Backend.Timeout,
		processing_api.WithToken(a.cfg.Backend.Token),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create processing api client: %w", err)
	}

	return client, nil
}

func (a *App) startPipeline(
	ctx context.Context,
	controller *lifecycle.Controller,
	jobsRepo *postgresql.JobsRepository,
	analysesRepo *postgresql.AnalysesRepository,
	txManager *postgresql.TxManager,
) error {
	fileIDs := make(chan domain.ID, fileIDsBuffer)
	outcomes := make(chan *domain.Outcome, outcomesBuffer)
	reports := make(chan *domain.Analytics, reportsBuffer)

	queue := pipeline.NewQueue(a.log, fileIDs)
	tracker := pipeline.NewTracker(a.log, a.cfg.App.Workers, fileIDs, outcomes, controller)
	writer := pipeline.NewWriter(a.log, outcomes, reports, analytics.NewAssembler(a.log), jobsRepo, analysesRepo, txManager)
	reporter := pipeline.NewReporter(a.log, a.cfg.ReportsDirectory, reports, report_generator.New())

	handler := v1.NewAnalysisHandler(a.log, queue, controller, jobsRepo, analysesRepo)
	server := v1.NewServer(a.cfg.HTTP, handler)

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		// Jobs left in flight by a previous run are picked up again.
		if err := queue.Resume(ctx, jobsRepo); err != nil && !errors.Is(err, context.Canceled) {
			a.log.ErrorContext(ctx, "failed to resume active jobs", slog.String("err", err.Error()))
		}
		return nil
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "tracker started")
		return tracker.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "writer started")
		return writer.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "reporter started")
		return reporter.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	a.log.InfoContext(ctx, "all components started")

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "pipeline stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "pipeline stopped gracefully")

	return nil
}
