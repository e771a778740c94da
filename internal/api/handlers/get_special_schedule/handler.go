package get_special_schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdmit/MDC-AvailabilityService/internal/api/handlers"
	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidDate           = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgMissingDate           = "параметр date обязателен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/special-schedule?date=2026-09-08
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalIDStr := vars["professionalId"]

	professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/special-schedule - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/special-schedule - Missing date: professional_id=%d", professionalID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/special-schedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetSpecialSchedule(r.Context(), professionalID, date)
	if err != nil {
		h.logger.Error("GET /professionals/{id}/special-schedule - Failed to get special schedule: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/special-schedule - Special schedule retrieved: professional_id=%d, date=%s, entries=%d",
		professionalID, dateStr, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
