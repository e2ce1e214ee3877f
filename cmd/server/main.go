package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vncsmyrnk/polls/internal/adapters/handler/http"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/polls/internal/config"
	"github.com/vncsmyrnk/polls/internal/core/services"
	"github.com/vncsmyrnk/polls/internal/lib/logger"
	"github.com/vncsmyrnk/polls/internal/lib/logger/sl"
)

func main() {
	cfg := config.MustLoad(os.Args[1:])

	log := logger.Setup(cfg.Env, os.Stdout)
	log.Info("starting polls server", slog.String("env", cfg.Env), slog.String("db", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqldb.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := sqldb.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			log.Error("failed to migrate database", sl.Err(err))
			os.Exit(1)
		}
	}

	// Initialize Repositories
	pollRepo := sqldb.NewPollRepository(db)
	optionRepo := sqldb.NewOptionRepository(db)
	voteRepo := sqldb.NewVoteRepository(db)
	resultRepo := sqldb.NewPollResultRepository(db)

	// Initialize Services
	pollService := services.NewPollService(pollRepo, resultRepo)
	optionService := services.NewOptionService(pollRepo, optionRepo)
	voteService := services.NewVoteService(pollRepo, optionRepo, voteRepo)

	handler := http.NewHandler(
		log,
		db,
		http.NewPollHandler(pollService, log),
		http.NewOptionHandler(optionService, log),
		http.NewVoteHandler(voteService, log),
	)

	server := &stdhttp.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("listening", slog.String("address", cfg.HTTPServer.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Error("server stopped", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down server", sl.Err(err))
		return
	}

	log.Info("server stopped")
}
