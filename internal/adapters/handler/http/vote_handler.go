package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	log     *slog.Logger
}

func NewVoteHandler(service ports.VoteService, log *slog.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		log:     log.With(slog.String("component", "handler/vote")),
	}
}

type voteRequest struct {
	OptionID json.RawMessage `json:"option_id"`
	Poll     json.RawMessage `json:"poll"`
}

// VoteOnPoll godoc
// @Summary      Casts a vote
// @Description  The option must belong to the poll in the path. Unknown options are a 400, an unknown poll a 404.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "poll id"
// @Success      201  {object}  domain.Vote
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/vote/ [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	input := ports.VoteInput{
		PollID:     chi.URLParam(r, "id"),
		BodyPollID: rawID(req.Poll),
	}
	if optionID := rawID(req.OptionID); optionID != nil {
		input.OptionID = *optionID
	}

	vote, err := h.service.Vote(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	h.log.Debug("vote recorded",
		slog.String("poll_id", vote.PollID.String()),
		slog.String("option_id", vote.OptionID.String()),
	)
	writeJSON(w, h.log, http.StatusCreated, vote)
}

// ListVotes godoc
// @Summary      Lists all votes
// @Tags         votes
// @Produce      json
// @Success      200  {array}   domain.Vote
// @Router       /api/votes/ [get]
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.service.ListVotes(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, votes)
}
