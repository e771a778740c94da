package get_professional_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/internal/service/appointments/models"
)

// parseQuery собирает request сервиса из query-параметров.
// Поддерживаются startDate, endDate (YYYY-MM-DD), status и includeInactive
func parseQuery(query url.Values, userID, professionalID int64) (*models.GetProfessionalAppointmentsRequest, error) {
	req := &models.GetProfessionalAppointmentsRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
