// Package bootstrap wires the Vigil components together for the CLI layer.
package bootstrap

import (
	"fmt"

	"vigil/config"
	"vigil/eventlog"
	"vigil/registry"
	"vigil/report"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App holds the assembled application components.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger

	Events   *eventlog.Log
	Persons  *registry.PersonRegistry
	Failures *registry.FailureRegistry
	Devices  *registry.DeviceRegistry
	Reports  *report.Builder
}

// NewApp loads configuration, builds the logger and wires every registry to
// the shared event log.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	sugar := logger.Sugar()

	events := eventlog.New(sugar)
	persons := registry.NewPersonRegistry(events, sugar)
	failures := registry.NewFailureRegistry(events, sugar)
	devices := registry.NewDeviceRegistry(events, sugar)
	reports := report.NewBuilder(persons, failures, devices, events, sugar)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sugar:    sugar,
		Events:   events,
		Persons:  persons,
		Failures: failures,
		Devices:  devices,
		Reports:  reports,
	}, nil
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
