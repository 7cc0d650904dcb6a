package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	exitCodeOK = iota
	exitCodeInputErr
	exitCodeInternalErr
)

// passwordEnv is read when -password is not given, to keep it out of the process list.
const passwordEnv = "DEFECT_REPORTER_PG_PASSWORD"

// action is one migrator operation selected with -type.
type action func(m *migrate.Migrate, f *flags) error

var actions = map[string]action{
	"up": func(m *migrate.Migrate, f *flags) error {
		if f.steps > 0 {
			return m.Steps(f.steps)
		}
		return m.Up()
	},
	"down": func(m *migrate.Migrate, f *flags) error {
		if f.steps > 0 {
			return m.Steps(-f.steps)
		}
		return m.Down()
	},
	// force marks the given version as applied and clears the dirty flag
	// left by a migration that failed halfway.
	"force": func(m *migrate.Migrate, f *flags) error {
		return m.Force(f.version)
	},
	"version": func(*migrate.Migrate, *flags) error {
		return nil
	},
}

type flags struct {
	migrationType string
	username      string
	password      string
	host          string
	port          string
	db            string
	steps         int
	version       int
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	exitCode, err := Run(ctx, log, parseFlags())
	if err != nil {
		log.ErrorContext(ctx, "migrator failed", slog.String("err", err.Error()))
	}

	stop()
	os.Exit(exitCode)
}

func Run(ctx context.Context, log *slog.Logger, f *flags) (exitCode int, err error) {
	if err := f.validate(); err != nil {
		return exitCodeInputErr, fmt.Errorf("invalid flags: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return exitCodeInternalErr, fmt.Errorf("failed to create migrations source: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, f.databaseURL())
	if err != nil {
		return exitCodeInternalErr, fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		if closeErr := errors.Join(migrator.Close()); closeErr != nil {
			if err == nil {
				exitCode = exitCodeInternalErr
			}
			err = errors.Join(err, closeErr)
		}
	}()

	migrator.Log = &migrateLogger{ctx: ctx, log: log}
	go func() {
		<-ctx.Done()
		migrator.GracefulStop <- true
	}()

	log = log.With(slog.String("type", f.migrationType))

	err = actions[f.migrationType](migrator, f)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.InfoContext(ctx, "no migrations to apply")
	case err != nil:
		return exitCodeInternalErr, fmt.Errorf("failed to run %s: %w", f.migrationType, err)
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.InfoContext(ctx, "database has no migrations applied")
		return exitCodeOK, nil
	}
	if err != nil {
		return exitCodeInternalErr, fmt.Errorf("failed to read schema version: %w", err)
	}

	log.InfoContext(ctx, "schema version",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return exitCodeOK, nil
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.migrationType, "type", "up", "migration type: "+strings.Join(actionNames(), "/"))
	flag.StringVar(&f.username, "username", "", "database username")
	flag.StringVar(&f.password, "password", os.Getenv(passwordEnv), "database password, defaults to $"+passwordEnv)
	flag.StringVar(&f.host, "host", "127.0.0.1", "database host")
	flag.StringVar(&f.port, "port", "5432", "database port")
	flag.StringVar(&f.db, "db", "defect_reporter", "database name")
	flag.IntVar(&f.steps, "steps", 0, "number of migrations to apply or revert, 0 means all")
	flag.IntVar(&f.version, "version", -1, "version to force, used with -type force")
	flag.Parse()
	return f
}

func actionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func (f *flags) validate() error {
	if _, ok := actions[f.migrationType]; !ok {
		return fmt.Errorf("type must be one of %v, got %q", actionNames(), f.migrationType)
	}

	if f.steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", f.steps)
	}

	if f.migrationType == "force" && f.version < 0 {
		return errors.New("version is required for force")
	}

	for _, req := range []struct{ name, value string }{
		{"username", f.username},
		{"password", f.password},
		{"db", f.db},
		{"port", f.port},
	} {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}

	return nil
}

func (f *flags) databaseURL() string {
	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(f.username, f.password),
		Host:     net.JoinHostPort(f.host, f.port),
		Path:     f.db,
		RawQuery: "sslmode=disable",
	}).String()
}

// migrateLogger adapts slog to migrate.Logger.
type migrateLogger struct {
	ctx context.Context
	log *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.DebugContext(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool {
	return true
}
