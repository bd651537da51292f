package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/service"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: business error",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		responseWithJSON(w, statusCode,
			toPayload("error", businessErr.Code),
			toPayload("message", businessErr.Message),
			toPayload("details", businessErr.Details),
		)
		return true
	}
	return false
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// serviceError maps an error to a business response or a 500.
func serviceError(w http.ResponseWriter, err error, operation string) {
	if handleBusinessError(w, err) {
		return
	}
	logger.Error("HTTP: service error", err, zap.String("operation", operation))
	responseWithError(w, http.StatusInternalServerError, err.Error())
}
