package create_appointment

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotOffered возвращается, когда специалист не оказывает услугу
	ErrServiceNotOffered = errors.New("create_appointment: professional does not offer this service")

	// ErrSlotConflict возвращается, когда слот пересекается с существующей записью.
	// В том числе когда конкурентное бронирование успело занять слот первым
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrOutsideWorkingHours возвращается, когда слот не покрыт рабочими часами
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrPastDate возвращается при попытке записи на прошедшую дату
	ErrPastDate = errors.New("create_appointment: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
