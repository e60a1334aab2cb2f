// Package main provides the entry point for the ReelKeep API server
//
// @title ReelKeep API
// @version 0.3.0
// @description Media library studio consistency engine: studio CRUD with
// @description label propagation, cascade cleanup and search index upkeep
// @host localhost:4400
// @BasePath /
// @schemes http https
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/reelkeep/reelkeep-core/domain/health"
	"github.com/reelkeep/reelkeep-core/domain/images"
	"github.com/reelkeep/reelkeep-core/domain/labels"
	"github.com/reelkeep/reelkeep-core/domain/movies"
	"github.com/reelkeep/reelkeep-core/domain/plugins"
	"github.com/reelkeep/reelkeep-core/domain/scenes"
	"github.com/reelkeep/reelkeep-core/domain/scheduler"
	"github.com/reelkeep/reelkeep-core/domain/search"
	"github.com/reelkeep/reelkeep-core/domain/studios"
	"github.com/reelkeep/reelkeep-core/internal/config"
	"github.com/reelkeep/reelkeep-core/internal/database"
	"github.com/reelkeep/reelkeep-core/internal/migrate"
	"github.com/reelkeep/reelkeep-core/internal/server"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

func main() {
	// Load .env files if present (for local development)
	// Order matters: .env.local overrides .env
	// Note: Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load("../../.env")
	_ = godotenv.Overload("../../.env.local")

	fx.New(
		// Logging
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		migrate.Module,
		server.Module,

		// Domain modules
		health.Module,
		labels.Module,
		scenes.Module,
		movies.Module,
		images.Module,
		search.Module,
		plugins.Module,
		studios.Module,

		// Scheduler module (index reconcile sweep, stale job recovery)
		scheduler.Module,
	).Run()
}
