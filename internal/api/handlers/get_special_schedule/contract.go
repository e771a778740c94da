package get_special_schedule

import (
	"context"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSpecialSchedule(ctx context.Context, professionalID int64, date time.Time) (*models.SpecialScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
