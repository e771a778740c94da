package update_special_schedule

import (
	"context"

	"github.com/avdmit/MDC-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateSpecialSchedule(ctx context.Context, req *models.UpdateSpecialScheduleRequest) (*models.SpecialScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
