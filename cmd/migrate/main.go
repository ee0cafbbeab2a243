// Package main provides the database migration CLI.
//
// Usage: migrate [up|down|status|version]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/internal/database"
	"github.com/kingraph-app/kingraph/internal/migrate"
	"github.com/kingraph-app/kingraph/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	app := fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		logger.Module,
		config.Module,
		database.Module,
		migrate.Module,

		fx.Invoke(func(m *migrate.Migrator, log *slog.Logger, sd fx.Shutdowner) {
			ctx := context.Background()
			var err error
			switch command {
			case "up":
				err = m.Up(ctx)
			case "down":
				err = m.Down(ctx)
			case "status":
				err = m.Status(ctx)
			case "version":
				var v int64
				if v, err = m.Version(ctx); err == nil {
					fmt.Printf("database version: %d\n", v)
				}
			default:
				err = fmt.Errorf("unknown command %q (want up, down, status or version)", command)
			}
			if err != nil {
				log.Error("migration command failed", logger.Error(err))
				_ = sd.Shutdown(fx.ExitCode(1))
				return
			}
			_ = sd.Shutdown()
		}),
	)
	app.Run()
}
