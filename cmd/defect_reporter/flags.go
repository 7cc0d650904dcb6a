package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kurochkinivan/defect_reporter/internal/app"
	"github.com/kurochkinivan/defect_reporter/internal/config"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/kurochkinivan/defect_reporter/internal/infrastructure/processing_api"
	"github.com/kurochkinivan/defect_reporter/internal/lifecycle"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:    "defect_reporter",
		Usage:   "Defect analysis tracking service",
		Version: version,
		Flags:   flags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return withLogger(ctx, cmd.String("log-level"), cmd.String("log-format"))
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := logger(ctx)
			if err != nil {
				return err
			}

			cfg := config.Load(cmd)
			if err := validatePostgreSQL(cfg.PostgreSQL); err != nil {
				return err
			}

			return app.New(log, cfg).Run(ctx)
		},
		Commands: []*cli.Command{
			analyzeCmd(),
		},
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run one file through processing and write its reports",
		ArgsUsage: "FILE_ID",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "result",
				Usage: "Render the already completed result `ID` instead of tracking a job",
			},
			&cli.StringSliceFlag{
				Name:      "download",
				Aliases:   []string{"d"},
				Usage:     "Also download backend exports of the given `TYPES` (csv, excel, json)",
				Validator: validateExportTypes,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := logger(ctx)
			if err != nil {
				return err
			}

			fileID := domain.ID(cmd.Args().First())
			if fileID == "" {
				return fmt.Errorf("%w: FILE_ID argument is required", lifecycle.ErrMissingIdentifier)
			}

			return app.New(log, config.Load(cmd)).Analyze(ctx, os.Stdout, app.AnalyzeRequest{
				FileID:    fileID,
				ResultID:  domain.ID(cmd.String("result")),
				Downloads: cmd.StringSlice("download"),
			})
		},
	}
}

func logger(ctx context.Context) (*slog.Logger, error) {
	log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return nil, errors.New("failed to get logger from context")
	}

	return log, nil
}

func flags() []cli.Flag {
	var config string

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Set log level (debug, info, warn, error)",
			Value:   "debug",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DEFECT_REPORTER_LOG_LEVEL")),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Set log format (text, json)",
			Value:   "text",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DEFECT_REPORTER_LOG_FORMAT")),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfig,
			Usage:       "Load configuration from `FILE`",
			Destination: &config,
		},
		&cli.StringFlag{
			Name:      "reports-dir",
			Aliases:   []string{"r"},
			Usage:     "Set directory to write reports to",
			Value:     "output",
			Sources:   cli.NewValueSourceChain(yaml.YAML("app.reports_dir", altsrc.NewStringPtrSourcer(&config))),
			Required:  true,
			Validator: validateDirectory,
		},
		&cli.DurationFlag{
			Name:      "poll-interval",
			Aliases:   []string{"p"},
			Value:     lifecycle.DefaultPollInterval,
			Usage:     "Set job status polling interval",
			Sources:   cli.NewValueSourceChain(yaml.YAML("app.poll_interval", altsrc.NewStringPtrSourcer(&config))),
			Validator: validatePositive,
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Value:   4,
			Usage:   "Set number of files tracked concurrently",
			Sources: cli.NewValueSourceChain(yaml.YAML("app.workers", altsrc.NewStringPtrSourcer(&config))),
			Validator: func(n int) error {
				if n < 1 {
					return fmt.Errorf("workers must be positive, got %d", n)
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:    "auto-execute",
			Value:   true,
			Usage:   "Execute every newly created job right away",
			Sources: cli.NewValueSourceChain(yaml.YAML("app.auto_execute", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:      "backend-url",
			Aliases:   []string{"b"},
			Usage:     "Set processing backend base `URL`",
			Value:     "http://localhost:8000/api",
			Sources:   cli.NewValueSourceChain(yaml.YAML("backend.base_url", altsrc.NewStringPtrSourcer(&config))),
			Required:  true,
			Validator: validateURL,
		},
		&cli.StringFlag{
			Name:    "backend-token",
			Usage:   "Set processing backend bearer token",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DEFECT_REPORTER_BACKEND_TOKEN"), yaml.YAML("backend.token", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.DurationFlag{
			Name:      "backend-timeout",
			Usage:     "Set processing backend request timeout",
			Value:     processing_api.DefaultTimeout,
			Sources:   cli.NewValueSourceChain(yaml.YAML("backend.timeout", altsrc.NewStringPtrSourcer(&config))),
			Validator: validatePositive,
		},
		&cli.StringFlag{
			Name:    "pg-host",
			Usage:   "Set PostgreSQL host",
			Value:   "localhost",
			Sources: cli.NewValueSourceChain(yaml.YAML("postgresql.host", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "pg-port",
			Usage:   "Set PostgreSQL port",
			Value:   "5432",
			Sources: cli.NewValueSourceChain(yaml.YAML("postgresql.port", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "pg-username",
			Usage:   "Set PostgreSQL username",
			Sources: cli.NewValueSourceChain(yaml.YAML("postgresql.username", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "pg-password",
			Usage:   "Set PostgreSQL password",
			Sources: cli.NewValueSourceChain(yaml.YAML("postgresql.password", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "pg-dbname",
			Usage:   "Set PostgreSQL database name",
			Value:   "defect_reporter",
			Sources: cli.NewValueSourceChain(yaml.YAML("postgresql.dbname", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "http-host",
			Usage:   "Set HTTP server host",
			Value:   "localhost",
			Sources: cli.NewValueSourceChain(yaml.YAML("http.host", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.StringFlag{
			Name:    "http-port",
			Usage:   "Set HTTP server port",
			Value:   "8080",
			Sources: cli.NewValueSourceChain(yaml.YAML("http.port", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.DurationFlag{
			Name:    "http-idle-timeout",
			Usage:   "Set HTTP server idle timeout",
			Value:   1 * time.Minute,
			Sources: cli.NewValueSourceChain(yaml.YAML("http.idle_timeout", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.DurationFlag{
			Name:    "http-read-timeout",
			Usage:   "Set HTTP server read timeout",
			Value:   15 * time.Second,
			Sources: cli.NewValueSourceChain(yaml.YAML("http.read_timeout", altsrc.NewStringPtrSourcer(&config))),
		},
		&cli.DurationFlag{
			Name:    "http-write-timeout",
			Usage:   "Set HTTP server write timeout",
			Value:   15 * time.Second,
			Sources: cli.NewValueSourceChain(yaml.YAML("http.write_timeout", altsrc.NewStringPtrSourcer(&config))),
		},
	}
}

func validateDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", dir)
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	return nil
}

func validateConfig(config string) error {
	info, err := os.Stat(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", config)
		}
		return fmt.Errorf("failed to stat %q: %w", config, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", config)
	}

	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", config)
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}

	return nil
}

func validatePositive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %s", d)
	}

	return nil
}

func validateExportTypes(types []string) error {
	for _, t := range types {
		switch strings.ToLower(t) {
		case processing_api.ExportCSV, processing_api.ExportExcel, processing_api.ExportJSON:
		default:
			return fmt.Errorf("unsupported export type %q", t)
		}
	}

	return nil
}

// validatePostgreSQL checks credentials the service needs; analyze runs without a database.
func validatePostgreSQL(cfg config.PostgreSQL) error {
	for _, req := range []struct{ name, value string }{
		{"pg-username", cfg.Username},
		{"pg-password", cfg.Password},
		{"pg-dbname", cfg.DBName},
	} {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}

	return nil
}
