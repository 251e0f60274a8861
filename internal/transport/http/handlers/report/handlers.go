package reporthandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/report"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/api"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/middleware"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/shared"
)

type Handler struct {
	Service  *report.Service
	Calendar roster.Calendar
}

func NewHandler(service *report.Service, cal roster.Calendar) *Handler {
	return &Handler{Service: service, Calendar: cal}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/availability.pdf", h.handleAvailabilityPDF)
}

func (h *Handler) handleAvailabilityPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	var start, end time.Time
	if r.URL.Query().Get("startDate") == "" && r.URL.Query().Get("endDate") == "" {
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

	filePath, err := h.Service.AvailabilityPDF(r.Context(), start, end)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate availability report", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="crew-availability.pdf"`)
	http.ServeFile(w, r, filePath)
}
