package directory

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден в справочнике
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrPatientNotFound возвращается, когда пациент не найден в справочнике
	ErrPatientNotFound = errors.New("patient not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что справочник недоступен и запись создается без денормализованного имени пациента
	ErrServiceDegraded = errors.New("directory unavailable: graceful degradation applied")
)
