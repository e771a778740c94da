package validate_slot

import (
	"errors"
	"net/http"

	"github.com/avdmit/MDC-AvailabilityService/internal/api/handlers"
	validateSlot "github.com/avdmit/MDC-AvailabilityService/internal/usecase/validate_slot"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgProfessionalNotFound = "специалист не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotOffered    = "специалист не оказывает эту услугу"
	msgInvalidInput         = "некорректные параметры запроса"
)

type Handler struct {
	useCase ValidateSlotUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateSlot.ErrProfessionalNotFound):
			h.logger.Warn("POST /slots/validate - Professional not found: professional_id=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, validateSlot.ErrServiceNotFound):
			h.logger.Warn("POST /slots/validate - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, validateSlot.ErrServiceNotOffered):
			h.logger.Warn("POST /slots/validate - Service not offered: professional_id=%d, service_id=%d",
				req.ProfessionalID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotOffered)

		case errors.Is(err, validateSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/validate - Failed to validate slot: professional_id=%d, service_id=%d, error=%v",
				req.ProfessionalID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/validate - Slot validated: professional_id=%d, start=%s, available=%t",
		req.ProfessionalID, req.StartTime, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
