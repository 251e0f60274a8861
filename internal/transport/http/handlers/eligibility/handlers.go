package eligibilityhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/eligibility"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/api"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/middleware"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/shared"
)

type Handler struct {
	Engine   *eligibility.Engine
	Store    *eligibility.Store
	Calendar roster.Calendar
}

func NewHandler(engine *eligibility.Engine, store *eligibility.Store, cal roster.Calendar) *Handler {
	return &Handler{Engine: engine, Store: store, Calendar: cal}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/eligibility", func(r chi.Router) {
		r.Post("/check", h.handleCheck)
		r.Get("/roster-period/{code}", h.handleBulkCheck)
	})
	r.Route("/crew", func(r chi.Router) {
		r.Get("/availability", h.handleAvailability)
		r.Get("/requirements", h.handleRequirements)
		r.With(middleware.RequireRole("admin", "manager")).Put("/requirements", h.handleUpdateRequirement)
	})
}

type checkPayload struct {
	PilotID     string `json:"pilotId"`
	PilotRole   string `json:"pilotRole"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	RequestType string `json:"requestType"`
	RequestID   string `json:"requestId"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload checkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("pilotId", payload.PilotID, "pilot id is required")
	v.Required("pilotRole", payload.PilotRole, "pilot role is required")
	role, roleErr := pilot.ParseRole(payload.PilotRole)
	if payload.PilotRole != "" && roleErr != nil {
		v.Add("pilotRole", "must be CAPTAIN or FIRST_OFFICER")
	}
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Engine.CheckLeaveEligibility(r.Context(), eligibility.CheckInput{
		PilotID:     payload.PilotID,
		Role:        role,
		Start:       start,
		End:         end,
		RequestType: payload.RequestType,
		RequestID:   payload.RequestID,
	})
	if err != nil {
		failEvaluation(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleBulkCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	period, err := h.Calendar.FromCode(chi.URLParam(r, "code"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_roster_period", "roster period code must look like RP11/2025", requestID)
		return
	}

	result, err := h.Engine.CheckBulkLeaveEligibility(r.Context(), period)
	if err != nil {
		failEvaluation(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	var start, end time.Time
	if r.URL.Query().Get("startDate") == "" && r.URL.Query().Get("endDate") == "" {
		// Default to the current roster period.
		period := h.Calendar.Containing(time.Now().UTC())
		start, end = period.Start, period.End
	} else {
		start, _ = v.Date("startDate", r.URL.Query().Get("startDate"))
		end, _ = v.Date("endDate", r.URL.Query().Get("endDate"))
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	availability, err := h.Engine.CalculateCrewAvailability(r.Context(), start, end)
	if err != nil {
		failEvaluation(w, err, requestID)
		return
	}
	api.Success(w, availability, requestID)
}

func (h *Handler) handleRequirements(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	requirements, err := h.Engine.CrewRequirements(r.Context())
	if err != nil {
		failEvaluation(w, err, requestID)
		return
	}
	api.Success(w, requirements, requestID)
}

type requirementPayload struct {
	Role          string `json:"role"`
	MinOnDuty     int    `json:"minimumOnDuty"`
	Scope         string `json:"scope"`
	EffectiveFrom string `json:"effectiveFrom"`
}

func (h *Handler) handleUpdateRequirement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload requirementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("role", payload.Role, "role is required")
	role, roleErr := pilot.ParseRole(payload.Role)
	if payload.Role != "" && roleErr != nil {
		v.Add("role", "must be CAPTAIN or FIRST_OFFICER")
	}
	if payload.MinOnDuty < 0 {
		v.Add("minimumOnDuty", "must not be negative")
	}
	effectiveFrom, _ := v.Date("effectiveFrom", payload.EffectiveFrom)
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Store.InsertRequirement(r.Context(), role, payload.MinOnDuty, payload.Scope, effectiveFrom); err != nil {
		api.Fail(w, http.StatusInternalServerError, "requirement_update_failed", "failed to update crew requirement", requestID)
		return
	}
	api.Created(w, map[string]any{"role": role, "minimumOnDuty": payload.MinOnDuty, "effectiveFrom": effectiveFrom}, requestID)
}

func failEvaluation(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, eligibility.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, eligibility.ErrRequirementNotFound):
		api.Fail(w, http.StatusUnprocessableEntity, "requirement_not_found", err.Error(), requestID)
	case errors.Is(err, eligibility.ErrDataIntegrity):
		api.Fail(w, http.StatusInternalServerError, "data_integrity", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusServiceUnavailable, "snapshot_fetch_failed", "failed to load crew data", requestID)
	}
}
