package validate_slot

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("validate_slot: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("validate_slot: service not found")

	// ErrServiceNotOffered возвращается, когда специалист не оказывает услугу
	ErrServiceNotOffered = errors.New("validate_slot: professional does not offer this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_slot: internal error")
)
