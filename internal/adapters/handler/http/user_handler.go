package http

import (
	"net/http"

	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// GetMe describes the caller: its session, display alias and, for signed-in
// users, the stored profile.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing session")
		return
	}

	profile, err := h.service.Me(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, profile)
}
