package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type ParticipantHandler struct {
	service ports.ParticipantService
}

func NewParticipantHandler(service ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		service: service,
	}
}

// participantRequest carries one vote per poll option, in option order.
// null votes are stored as no.
type participantRequest struct {
	Name  string            `json:"name"`
	Votes []domain.VoteType `json:"votes"`
}

func (h *ParticipantHandler) input(w http.ResponseWriter, r *http.Request) (ports.ParticipantInput, bool) {
	var req participantRequest
	if r.Method != http.MethodDelete {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
			return ports.ParticipantInput{}, false
		}
	}

	session, _ := SessionFromContext(r.Context())
	return ports.ParticipantInput{
		PollID:        chi.URLParam(r, "id"),
		ParticipantID: chi.URLParam(r, "participantID"),
		Session:       session,
		Name:          req.Name,
		Votes:         req.Votes,
	}, true
}

func (h *ParticipantHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	input, ok := h.input(w, r)
	if !ok {
		return
	}

	p, err := h.service.Add(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, p)
}

func (h *ParticipantHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	input, ok := h.input(w, r)
	if !ok {
		return
	}

	p, err := h.service.Update(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, p)
}

func (h *ParticipantHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	input, ok := h.input(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
