package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом-справочником платформы
// (специалисты и пациенты живут в CRM-сервисе, не в этой БД)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfessional получает специалиста по ID
func (c *Client) GetProfessional(ctx context.Context, professionalID int64) (*Professional, error) {
	url := fmt.Sprintf("%s/internal/professionals/%d", c.baseURL, professionalID)

	var professional Professional
	if err := c.getJSON(ctx, url, ErrProfessionalNotFound, &professional); err != nil {
		return nil, err
	}

	return &professional, nil
}

// GetPatient получает пациента по ID
func (c *Client) GetPatient(ctx context.Context, patientID int64) (*Patient, error) {
	url := fmt.Sprintf("%s/internal/patients/%d", c.baseURL, patientID)

	var patient Patient
	if err := c.getJSON(ctx, url, ErrPatientNotFound, &patient); err != nil {
		return nil, err
	}

	return &patient, nil
}

// GetPatientWithGracefulDegradation получает пациента с graceful degradation.
// При недоступности справочника возвращает ErrServiceDegraded - запись на приём
// создается без денормализованного имени пациента, бронирование не блокируется.
func (c *Client) GetPatientWithGracefulDegradation(ctx context.Context, patientID int64) (*Patient, error) {
	patient, err := c.GetPatient(ctx, patientID)
	if err != nil {
		// Бизнес-ошибку "пациент не найден" пробрасываем дальше
		if err == ErrPatientNotFound {
			c.log.Info("Patient id=%d not found in directory", patientID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("Directory unavailable, applying graceful degradation for patient_id=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: patient_id=%d, error=%v", ErrServiceDegraded, patientID, err)
	}

	return patient, nil
}

func (c *Client) getJSON(ctx context.Context, url string, notFoundErr error, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
