package domain

import "time"

// Service is a catalog entry: what a clinic sells
type Service struct {
	ID                     int64
	Name                   string
	DefaultDurationMinutes int
	BasePrice              float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// WeekdayMask is a per-weekday availability flag set for a service offering
type WeekdayMask struct {
	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool
}

// OfferedOn reports whether the mask allows the given weekday
func (m WeekdayMask) OfferedOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return m.Monday
	case time.Tuesday:
		return m.Tuesday
	case time.Wednesday:
		return m.Wednesday
	case time.Thursday:
		return m.Thursday
	case time.Friday:
		return m.Friday
	case time.Saturday:
		return m.Saturday
	case time.Sunday:
		return m.Sunday
	default:
		return false
	}
}

// ServiceOffering links a professional to a service, with optional duration
// and price overrides plus the weekdays the professional performs it on.
type ServiceOffering struct {
	ID              int64
	ProfessionalID  int64
	ServiceID       int64
	DurationMinutes *int     // nil = use the service's default duration
	Price           *float64 // nil = use the service's base price
	Weekdays        WeekdayMask
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveDuration resolves the offering's duration against the service
// default. Falling back to the default is by design, not a failure.
func (o *ServiceOffering) EffectiveDuration(service *Service) int {
	if o.DurationMinutes != nil {
		return *o.DurationMinutes
	}
	return service.DefaultDurationMinutes
}

// EffectivePrice resolves the offering's price against the service base price
func (o *ServiceOffering) EffectivePrice(service *Service) float64 {
	if o.Price != nil {
		return *o.Price
	}
	return service.BasePrice
}
