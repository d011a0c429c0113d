// Package providers contains dependency injection providers for the BookWorm server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookwormapp/bookworm-server/internal/backup/export"
	"github.com/bookwormapp/bookworm-server/internal/config"
	"github.com/bookwormapp/bookworm-server/internal/logger"
	"github.com/bookwormapp/bookworm-server/internal/metadata/googlebooks"
	"github.com/bookwormapp/bookworm-server/internal/store/sqlite"
)

// ProvideConfigWith returns a config provider that applies the given
// command-line overrides on top of environment configuration.
func ProvideConfigWith(ov config.Overrides) func(do.Injector) (*config.Config, error) {
	return func(i do.Injector) (*config.Config, error) {
		return config.Load(ov)
	}
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Logger.Level),
		Format: cfg.Logger.Format,
	})

	log.Debug("configuration loaded",
		"db_path", cfg.Database.Path,
		"log_level", cfg.Logger.Level,
		"export_dir", cfg.Export.Dir,
	)

	return log, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the catalog store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s, err := sqlite.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}

	log.Debug("database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: s}, nil
}

// GoogleBooksClientHandle wraps the metadata client with shutdown capability.
type GoogleBooksClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *GoogleBooksClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideGoogleBooksClient provides the Google Books metadata client.
func ProvideGoogleBooksClient(i do.Injector) (*GoogleBooksClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.NewClient(cfg.Metadata.Endpoint, cfg.Metadata.Timeout, log)
	return &GoogleBooksClientHandle{Client: client}, nil
}

// ProvideExporter provides the XML database exporter.
func ProvideExporter(i do.Injector) (*export.Exporter, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return export.New(log), nil
}
