package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/eligibility"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/leave"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/api"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/middleware"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/requests", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSubmit)
		r.Get("/{requestID}", h.handleGet)
		r.With(middleware.RequireRole("admin", "manager")).Post("/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole("admin", "manager")).Post("/{requestID}/deny", h.handleDeny)
		r.With(middleware.RequireRole("admin", "manager")).Post("/{requestID}/review", h.handleMarkUnderReview)
	})
}

type submitPayload struct {
	PilotID     string `json:"pilotId"`
	RequestType string `json:"requestType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("pilotId", payload.PilotID, "pilot id is required")
	v.Required("requestType", payload.RequestType, "request type is required")
	v.Enum("requestType", payload.RequestType, leave.RequestTypes, "unknown leave type")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.Submit(r.Context(), payload.PilotID, payload.RequestType, start, end, payload.Reason)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Created(w, result, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	status := r.URL.Query().Get("status")
	v.Enum("status", status, []string{leave.StatusPending, leave.StatusApproved, leave.StatusDenied, leave.StatusUnderReview}, "unknown status")
	if v.Reject(w, requestID) {
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	requests, err := h.Service.List(r.Context(), status, r.URL.Query().Get("rosterPeriod"), r.URL.Query().Get("pilotId"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	request, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Success(w, request, requestID)
}

type decisionPayload struct {
	Override bool `json:"override"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload decisionPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	request, err := h.Service.Approve(r.Context(), chi.URLParam(r, "requestID"), user.UserID, payload.Override)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Success(w, request, requestID)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	request, err := h.Service.Deny(r.Context(), chi.URLParam(r, "requestID"), user.UserID)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Success(w, request, requestID)
}

func (h *Handler) handleMarkUnderReview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	request, err := h.Service.MarkUnderReview(r.Context(), chi.URLParam(r, "requestID"), user.UserID)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Success(w, request, requestID)
}

func failLeave(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, leave.ErrRequestNotFound), errors.Is(err, pilot.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, leave.ErrPilotInactive):
		api.Fail(w, http.StatusUnprocessableEntity, "pilot_inactive", err.Error(), requestID)
	case errors.Is(err, leave.ErrNotEligible):
		api.Fail(w, http.StatusConflict, "not_eligible", err.Error(), requestID)
	case errors.Is(err, eligibility.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, eligibility.ErrRequirementNotFound):
		api.Fail(w, http.StatusUnprocessableEntity, "requirement_not_found", err.Error(), requestID)
	case errors.Is(err, eligibility.ErrDataIntegrity):
		api.Fail(w, http.StatusInternalServerError, "data_integrity", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_request_failed", "leave request operation failed", requestID)
	}
}
