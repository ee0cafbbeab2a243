// Package main provides the entry point for the KinGraph API server: bounded
// ancestor/descendant tree traversal, collateral notable-relative scans, a
// weighted research queue and tree layout computation over a people/families
// graph in PostgreSQL.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/kingraph-app/kingraph/domain/admin"
	"github.com/kingraph-app/kingraph/domain/health"
	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/domain/research"
	"github.com/kingraph-app/kingraph/domain/scheduler"
	"github.com/kingraph-app/kingraph/domain/tree"
	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/internal/database"
	"github.com/kingraph-app/kingraph/internal/server"
	"github.com/kingraph-app/kingraph/pkg/logger"
	"github.com/kingraph-app/kingraph/pkg/rescache"
)

func main() {
	// Load .env files if present (for local development). Load() won't
	// overwrite existing vars, Overload() will.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		server.Module,
		rescache.Module,

		// Domain modules
		health.Module,
		people.Module,
		tree.Module,
		research.Module,
		admin.Module,

		// Scheduler module (periodic result cache sweep)
		scheduler.Module,
	).Run()
}
