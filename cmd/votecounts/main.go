package main

import (
	"context"
	"os"
	"time"

	"github.com/vncsmyrnk/polls/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/polls/internal/config"
	"github.com/vncsmyrnk/polls/internal/core/services"
	"github.com/vncsmyrnk/polls/internal/lib/logger"
	"github.com/vncsmyrnk/polls/internal/lib/logger/sl"
)

func main() {
	cfg := config.MustLoad(os.Args[1:])
	log := logger.Setup(cfg.Env, os.Stdout)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	pollRepo := sqldb.NewPollRepository(db)
	resultRepo := sqldb.NewPollResultRepository(db)
	summaryService := services.NewSummaryService(pollRepo, resultRepo)

	log.Info("starting vote recount job")

	start := time.Now()
	if err := summaryService.RecountAllVotes(ctx); err != nil {
		log.Error("vote recount failed", sl.Err(err))
		os.Exit(1)
	}

	log.Info("vote recount completed", "duration", time.Since(start).String())
}
