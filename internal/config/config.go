package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

type Config struct {
	App
	Backend
	PostgreSQL
	HTTP
}

type App struct {
	ReportsDirectory string
	PollInterval     time.Duration
	Workers          int
	AutoExecute      bool
}

// Backend is the processing API the analyses are fetched from.
type Backend struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type PostgreSQL struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

type HTTP struct {
	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load(cmd *cli.Command) *Config {
	return &Config{
		App: App{
			ReportsDirectory: cmd.String("reports-dir"),
			PollInterval:     cmd.Duration("poll-interval"),
			Workers:          cmd.Int("workers"),
			AutoExecute:      cmd.Bool("auto-execute"),
		},
		Backend: Backend{
			BaseURL: cmd.String("backend-url"),
			Token:   cmd.String("backend-token"),
			Timeout: cmd.Duration("backend-timeout"),
		},
		PostgreSQL: PostgreSQL{
			Host:     cmd.String("pg-host"),
			Port:     cmd.String("pg-port"),
			Username: cmd.String("pg-username"),
			Password: cmd.String("pg-password"),
			DBName:   cmd.String("pg-dbname"),
		},
		HTTP: HTTP{
			Host:         cmd.String("http-host"),
			Port:         cmd.String("http-port"),
			IdleTimeout:  cmd.Duration("http-idle-timeout"),
			ReadTimeout:  cmd.Duration("http-read-timeout"),
			WriteTimeout: cmd.Duration("http-write-timeout"),
		},
	}
}
