package pilothandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/api"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/middleware"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/shared"
)

type Handler struct {
	Store *pilot.Store
}

func NewHandler(store *pilot.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pilots", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{pilotID}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	role := r.URL.Query().Get("role")
	if role != "" {
		parsed, err := pilot.ParseRole(role)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_role", "role must be CAPTAIN or FIRST_OFFICER", requestID)
			return
		}
		role = string(parsed)
	}
	activeOnly := true
	if raw := r.URL.Query().Get("activeOnly"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			activeOnly = parsed
		}
	}

	page := shared.ParsePagination(r, 100, 500)
	pilots, err := h.Store.List(r.Context(), role, activeOnly, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pilot_list_failed", "failed to list pilots", requestID)
		return
	}
	api.Success(w, pilots, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	p, err := h.Store.Get(r.Context(), chi.URLParam(r, "pilotID"))
	if errors.Is(err, pilot.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pilot_get_failed", "failed to load pilot", requestID)
		return
	}
	api.Success(w, p, requestID)
}
