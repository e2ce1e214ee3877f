package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
	log     *slog.Logger
}

func NewPollHandler(service ports.PollService, log *slog.Logger) *PollHandler {
	return &PollHandler{
		service: service,
		log:     log.With(slog.String("component", "handler/poll")),
	}
}

type pollRequest struct {
	QuestionText *string  `json:"question_text"`
	PubDate      *string  `json:"pub_date"`
	Options      []string `json:"options"`
}

func (req pollRequest) input() ports.PollInput {
	return ports.PollInput{
		QuestionText: req.QuestionText,
		PubDate:      req.PubDate,
		Options:      req.Options,
	}
}

// ListPolls godoc
// @Summary      Lists polls
// @Description  Returns every poll with its options in creation order. `q` filters by question text.
// @Tags         polls
// @Produce      json
// @Param        q    query     string  false  "case-insensitive search on question_text"
// @Success      200  {array}   domain.Poll
// @Router       /api/polls/ [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListPolls(r.Context(), ports.ListPollsInput{Query: r.URL.Query().Get("q")})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, polls)
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Poll
// @Failure      400  {object}  map[string]string
// @Router       /api/polls/ [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	poll, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	h.log.Info("poll created", slog.String("poll_id", poll.ID.String()))
	writeJSON(w, h.log, http.StatusCreated, poll)
}

// GetPoll godoc
// @Summary      Gets a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      string  true  "poll id"
// @Success      200  {object}  domain.Poll
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/ [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, poll)
}

// UpdatePoll godoc
// @Summary      Replaces a poll's question and publish date
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "poll id"
// @Success      200  {object}  domain.Poll
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/ [put]
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	poll, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, poll)
}

// DeletePoll godoc
// @Summary      Deletes a poll with its options and votes
// @Tags         polls
// @Param        id   path      string  true  "poll id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/ [delete]
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	h.log.Info("poll deleted", slog.String("poll_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// GetResults godoc
// @Summary      Vote counts per option
// @Description  Counts are computed from recorded votes.
// @Tags         polls
// @Produce      json
// @Param        id   path      string  true  "poll id"
// @Success      200  {object}  domain.PollResult
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/results/ [get]
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
