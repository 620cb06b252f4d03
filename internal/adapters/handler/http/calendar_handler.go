package http

import (
	"net/http"
	"time"

	"github.com/vncsmyrnk/datepoll/internal/core/calendar"
	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

// CalendarHandler exposes the option editor. It keeps no state: every
// request carries the current options and gets the next ones back.
type CalendarHandler struct {
	defaultDuration int
	weekStartsOn    time.Weekday
	now             func() time.Time
}

func NewCalendarHandler(defaultDuration int, weekStartsOn time.Weekday) *CalendarHandler {
	return &CalendarHandler{
		defaultDuration: defaultDuration,
		weekStartsOn:    weekStartsOn,
		now:             time.Now,
	}
}

type editorRequest struct {
	calendar.State
	Day   string `json:"day"`
	Timed bool   `json:"timed"`
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type monthRequest struct {
	Date         string                  `json:"date"`
	Today        string                  `json:"today"`
	WeekStartsOn *int                    `json:"week_starts_on"`
	Options      []domain.DateTimeOption `json:"options"`
}

type monthResponse struct {
	calendar.Month
	Prev string `json:"prev"`
	Next string `json:"next"`
}

// Month renders the calendar grid around date, today's month by default.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	today := domain.Noon(h.now())
	if req.Today != "" {
		var err error
		if today, err = domain.DayNoon(req.Today); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	anchor := today
	if req.Date != "" {
		var err error
		if anchor, err = domain.DayNoon(domain.DayOf(req.Date)); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	weekStartsOn := h.weekStartsOn
	if req.WeekStartsOn != nil {
		if *req.WeekStartsOn < 0 || *req.WeekStartsOn > 6 {
			writeError(w, r, http.StatusBadRequest, "week_starts_on must be between 0 and 6")
			return
		}
		weekStartsOn = time.Weekday(*req.WeekStartsOn)
	}

	selection, err := calendar.SelectedDays(req.Options)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, monthResponse{
		Month: calendar.NewMonth(anchor, today, weekStartsOn, selection),
		Prev:  domain.FormatDay(calendar.PrevMonth(anchor)),
		Next:  domain.FormatDay(calendar.NextMonth(anchor)),
	})
}

func (h *CalendarHandler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		day, err := domain.DayNoon(req.Day)
		if err != nil {
			return req.State, err
		}
		return calendar.ToggleDay(req.State, day), nil
	})
}

func (h *CalendarHandler) SetTimed(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		return calendar.SetTimed(req.State, req.Timed)
	})
}

func (h *CalendarHandler) SetSlotStart(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		start, err := domain.ParseDateTime(req.Start)
		if err != nil {
			return req.State, err
		}
		return calendar.SetSlotStart(req.State, req.Index, start)
	})
}

func (h *CalendarHandler) SetSlotEnd(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		end, err := domain.ParseDateTime(req.End)
		if err != nil {
			return req.State, err
		}
		return calendar.SetSlotEnd(req.State, req.Index, end)
	})
}

func (h *CalendarHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		return calendar.AddSlot(req.State, req.Day)
	})
}

func (h *CalendarHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		return calendar.RemoveSlot(req.State, req.Index)
	})
}

func (h *CalendarHandler) ApplyToAllDays(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		return calendar.ApplyToAllDays(req.State, req.Day)
	})
}

func (h *CalendarHandler) RemoveDay(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(req editorRequest) (calendar.State, error) {
		if _, err := domain.ParseDay(req.Day); err != nil {
			return req.State, err
		}
		return calendar.RemoveDay(req.State, req.Day), nil
	})
}

// edit decodes the editor state, applies op and writes the next state.
func (h *CalendarHandler) edit(w http.ResponseWriter, r *http.Request, op func(editorRequest) (calendar.State, error)) {
	var req editorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Duration <= 0 {
		req.Duration = h.defaultDuration
	}
	if req.Options == nil {
		req.Options = []domain.DateTimeOption{}
	}

	next, err := op(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if next.Options == nil {
		next.Options = []domain.DateTimeOption{}
	}

	writeJSON(w, r, http.StatusOK, next)
}
