package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vncsmyrnk/polls/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/polls/internal/config"
	"github.com/vncsmyrnk/polls/internal/lib/logger"
	"github.com/vncsmyrnk/polls/internal/lib/logger/sl"
)

// Applies every up migration of the configured driver, or only the one
// whose file name matches the first positional argument
// (e.g. "0001_create_polls.down").
//
//	migrations [-config path] [name]
func main() {
	cfg, args := config.MustLoadArgs(os.Args[1:])
	log := logger.Setup(cfg.Env, os.Stdout)

	ctx := context.Background()

	db, err := sqldb.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if len(args) > 0 {
		name := args[0]
		if err := sqldb.MigrateNamed(ctx, db, cfg.Database.Driver, name); err != nil {
			log.Error("migration failed", slog.String("name", name), sl.Err(err))
			os.Exit(1)
		}
		log.Info("migration file executed successfully", slog.String("name", name))
		return
	}

	if err := sqldb.Migrate(ctx, db, cfg.Database.Driver); err != nil {
		log.Error("migrations failed", sl.Err(err))
		os.Exit(1)
	}
	log.Info("migrations executed successfully")
}
