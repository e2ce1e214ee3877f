package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/vncsmyrnk/polls/internal/adapters/handler/http/docs"
	"github.com/vncsmyrnk/polls/internal/adapters/handler/http/mwlogger"
	"github.com/vncsmyrnk/polls/internal/lib/logger/sl"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func NewHandler(
	log *slog.Logger,
	db Pinger,
	pollHandler *PollHandler,
	optionHandler *OptionHandler,
	voteHandler *VoteHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(mwlogger.New(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			log.Error("health check failed", sl.Err(err))
			writeJSON(w, log, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Post("/", pollHandler.CreatePoll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetPoll)
				r.Put("/", pollHandler.UpdatePoll)
				r.Delete("/", pollHandler.DeletePoll)
				r.Post("/vote", voteHandler.VoteOnPoll)
				r.Get("/options", optionHandler.ListPollOptions)
				r.Get("/results", pollHandler.GetResults)
			})
		})

		r.Route("/options", func(r chi.Router) {
			r.Get("/", optionHandler.ListOptions)
			r.Post("/", optionHandler.CreateOption)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", optionHandler.GetOption)
				r.Put("/", optionHandler.UpdateOption)
				r.Delete("/", optionHandler.DeleteOption)
			})
		})

		r.Get("/votes", voteHandler.ListVotes)
	})

	return r
}
