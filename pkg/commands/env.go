package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"tableflip.dev/jos/pkg/app"
	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/logging"
	"tableflip.dev/jos/pkg/store"
)

// env is everything a command needs once configuration has been read.
type env struct {
	Settings *store.Settings
	Service  *app.Service
	Logger   *slog.Logger
	Client   *http.Client

	closers []io.Closer
}

// Close releases the store and the log file.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Directory loads the configured link directory.
func (e *env) Directory(ctx context.Context) (*links.Directory, error) {
	return links.Load(ctx, e.Settings.Links, e.Client)
}

// loadEnv is replaced in tests.
var loadEnv = openEnv

func openEnv(ctx context.Context) (*env, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.Open(settings.Log, settings.LogLevel)
	if err != nil {
		return nil, err
	}
	e := &env{
		Settings: settings,
		Logger:   logger,
		Client:   http.DefaultClient,
		closers:  []io.Closer{logCloser},
	}
	kv, err := store.Open(ctx, settings)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	e.closers = append(e.closers, kv)
	e.Service = &app.Service{Store: kv, Logger: logger}
	if err := e.Service.Load(); err != nil {
		_ = e.Close()
		return nil, err
	}
	logger.Debug("environment ready",
		slog.String("store", settings.Backend()),
		slog.String("path", settings.Path))
	return e, nil
}
