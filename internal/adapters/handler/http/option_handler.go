package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type OptionHandler struct {
	service ports.OptionService
	log     *slog.Logger
}

func NewOptionHandler(service ports.OptionService, log *slog.Logger) *OptionHandler {
	return &OptionHandler{
		service: service,
		log:     log.With(slog.String("component", "handler/option")),
	}
}

type optionRequest struct {
	OptionText *string         `json:"option_text"`
	Poll       json.RawMessage `json:"poll"`
}

func (req optionRequest) input() ports.OptionInput {
	return ports.OptionInput{
		PollID:     rawID(req.Poll),
		OptionText: req.OptionText,
	}
}

// ListOptions godoc
// @Summary      Lists all options
// @Tags         options
// @Produce      json
// @Success      200  {array}   domain.Option
// @Router       /api/options/ [get]
func (h *OptionHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ports.ListOptionsInput{})
}

// ListPollOptions godoc
// @Summary      Lists the options of a poll
// @Tags         options
// @Produce      json
// @Param        id   path      string  true  "poll id"
// @Success      200  {array}   domain.Option
// @Router       /api/polls/{id}/options/ [get]
func (h *OptionHandler) ListPollOptions(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ports.ListOptionsInput{PollID: chi.URLParam(r, "id")})
}

func (h *OptionHandler) list(w http.ResponseWriter, r *http.Request, input ports.ListOptionsInput) {
	options, err := h.service.ListOptions(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, options)
}

// CreateOption godoc
// @Summary      Adds an option to a poll
// @Tags         options
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Option
// @Failure      400  {object}  map[string]string
// @Router       /api/options/ [post]
func (h *OptionHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	option, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusCreated, option)
}

// GetOption godoc
// @Summary      Gets an option
// @Tags         options
// @Produce      json
// @Param        id   path      string  true  "option id"
// @Success      200  {object}  domain.Option
// @Failure      404  {object}  errorResponse
// @Router       /api/options/{id}/ [get]
func (h *OptionHandler) GetOption(w http.ResponseWriter, r *http.Request) {
	option, err := h.service.GetOption(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, option)
}

// UpdateOption godoc
// @Summary      Changes an option's text
// @Description  The parent poll cannot be changed.
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "option id"
// @Success      200  {object}  domain.Option
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/options/{id}/ [put]
func (h *OptionHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	option, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, option)
}

// DeleteOption godoc
// @Summary      Deletes an option and its votes
// @Tags         options
// @Param        id   path      string  true  "option id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/options/{id}/ [delete]
func (h *OptionHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
