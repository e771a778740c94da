package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается при некорректном рабочем окне
	ErrInvalidWindow = errors.New("invalid availability window")
)

// Request модели

// WindowInput одно рабочее окно в запросе на обновление расписания
type WindowInput struct {
	Weekday   int    `json:"weekday"`   // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// UpdateScheduleRequest запрос на полную замену недельного расписания
type UpdateScheduleRequest struct {
	UserID         int64         `json:"userId"`
	ProfessionalID int64         `json:"professionalId"`
	Windows        []WindowInput `json:"windows"`
}

// ToDomainWindows конвертирует и валидирует окна запроса
func (r *UpdateScheduleRequest) ToDomainWindows() ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0, len(r.Windows))

	for i, w := range r.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return nil, fmt.Errorf("%w: window %d: weekday must be 0-6", ErrInvalidWindow, i)
		}

		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindow, i, err)
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindow, i, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: window %d: startTime must precede endTime", ErrInvalidWindow, i)
		}

		windows = append(windows, &domain.AvailabilityWindow{
			ProfessionalID: r.ProfessionalID,
			Weekday:        time.Weekday(w.Weekday),
			StartTime:      start,
			EndTime:        end,
		})
	}

	return windows, nil
}

// SpecialEntryInput одно окно особого расписания в запросе
type SpecialEntryInput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdateSpecialScheduleRequest запрос на замену особого расписания на дату.
// Пустой список окон означает "в этот день приёма нет"
type UpdateSpecialScheduleRequest struct {
	UserID         int64               `json:"userId"`
	ProfessionalID int64               `json:"professionalId"`
	Date           time.Time           `json:"date"`
	Entries        []SpecialEntryInput `json:"entries"`
}

// ToDomainEntries конвертирует и валидирует окна особого расписания
func (r *UpdateSpecialScheduleRequest) ToDomainEntries() ([]*domain.SpecialSchedule, error) {
	entries := make([]*domain.SpecialSchedule, 0, len(r.Entries))

	for i, e := range r.Entries {
		start, err := types.NewTimeStringFromString(e.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidWindow, i, err)
		}
		end, err := types.NewTimeStringFromString(e.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidWindow, i, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: entry %d: startTime must precede endTime", ErrInvalidWindow, i)
		}

		entries = append(entries, &domain.SpecialSchedule{
			ProfessionalID: r.ProfessionalID,
			Date:           r.Date,
			StartTime:      start,
			EndTime:        end,
		})
	}

	return entries, nil
}

// Response модели

// WindowResponse одно рабочее окно недельного расписания
type WindowResponse struct {
	ID        int64  `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleResponse недельное расписание специалиста
type ScheduleResponse struct {
	ProfessionalID int64            `json:"professionalId"`
	Windows        []WindowResponse `json:"windows"`
}

// SpecialEntryResponse одно окно особого расписания
type SpecialEntryResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SpecialScheduleResponse особое расписание специалиста на дату
type SpecialScheduleResponse struct {
	ProfessionalID int64                  `json:"professionalId"`
	Date           string                 `json:"date"`
	Entries        []SpecialEntryResponse `json:"entries"`
}

// FromDomainWindows конвертирует окна в DTO расписания
func FromDomainWindows(professionalID int64, windows []*domain.AvailabilityWindow) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID: professionalID,
		Windows:        make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:        w.ID,
			Weekday:   int(w.Weekday),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	return resp
}

// FromDomainSpecialSchedules конвертирует окна особого расписания в DTO
func FromDomainSpecialSchedules(professionalID int64, date time.Time, entries []*domain.SpecialSchedule) *SpecialScheduleResponse {
	resp := &SpecialScheduleResponse{
		ProfessionalID: professionalID,
		Date:           date.Format(domain.DateFormat),
		Entries:        make([]SpecialEntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, SpecialEntryResponse{
			ID:        e.ID,
			StartTime: e.StartTime.String(),
			EndTime:   e.EndTime.String(),
		})
	}

	return resp
}
