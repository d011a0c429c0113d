// Package di provides dependency injection configuration for the BookWorm server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookwormapp/bookworm-server/internal/config"
	"github.com/bookwormapp/bookworm-server/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Command-line overrides take precedence over environment configuration.
func NewContainer(ov config.Overrides) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfigWith(ov))
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata layer
	do.Provide(injector, providers.ProvideGoogleBooksClient)

	// Backup layer
	do.Provide(injector, providers.ProvideExporter)

	return injector
}

// Shutdown releases all container-managed resources, closing the store and
// metadata client.
func Shutdown(injector *do.RootScope) error {
	return injector.Shutdown()
}
