package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/spf13/cast"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/pollview"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type PollHandler struct {
	service     ports.PollService
	viewService ports.PollViewService
}

func NewPollHandler(service ports.PollService, viewService ports.PollViewService) *PollHandler {
	return &PollHandler{
		service:     service,
		viewService: viewService,
	}
}

type createPollRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Location    string                  `json:"location"`
	TimeZone    string                  `json:"time_zone"`
	Options     []domain.DateTimeOption `json:"options"`
}

type updateOptionsRequest struct {
	Options []domain.DateTimeOption `json:"options"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	session, _ := SessionFromContext(r.Context())
	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		TimeZone:    req.TimeZone,
		UserID:      session.ID,
		Options:     req.Options,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, poll)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	polls, err := h.service.ListPolls(r.Context(), ports.ListPollsInput{
		Page:  page,
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, r, http.StatusOK, polls)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, poll)
}

// UpdateOptions replaces the poll's options. Only the poll owner may do it.
func (h *PollHandler) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	var req updateOptionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	session, _ := SessionFromContext(r.Context())
	poll, err := h.service.UpdateOptions(r.Context(), ports.UpdateOptionsInput{
		PollID:  chi.URLParam(r, "id"),
		Session: session,
		Options: req.Options,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, poll)
}

func (h *PollHandler) View(w http.ResponseWriter, r *http.Request) {
	data, err := h.view(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, data)
}

// Grid renders the poll votes as a plain text table.
func (h *PollHandler) Grid(w http.ResponseWriter, r *http.Request) {
	data, err := h.view(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := pollview.WriteGrid(w, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write grid")
	}
}

// view reads the view parameters: tz, view (grid or list), wide and active.
// wide defaults to true.
func (h *PollHandler) view(r *http.Request) (*pollview.PollData, error) {
	q := r.URL.Query()
	wide := true
	if v := q.Get("wide"); v != "" {
		wide = cast.ToBool(v)
	}

	session, _ := SessionFromContext(r.Context())
	return h.viewService.View(r.Context(), ports.PollViewInput{
		PollID:              chi.URLParam(r, "id"),
		Session:             session,
		TargetTimeZone:      q.Get("tz"),
		WideScreen:          wide,
		PreferredView:       pollview.View(q.Get("view")),
		ActiveParticipantID: q.Get("active"),
	})
}

func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
