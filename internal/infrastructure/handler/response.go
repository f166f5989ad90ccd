package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeRequest parses a JSON body into dst and runs its validate tags
func decodeRequest(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// normalizeCode upper-cases and trims a currency code from user input
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	writeJSON(w, statusCode, ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}

// sendDomainError maps tracker errors onto HTTP statuses
func sendDomainError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	switch {
	case errors.Is(err, entity.ErrInvalidExpense):
		sendErrorResponse(w, log, "Invalid expense", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrUnknownCurrency):
		sendErrorResponse(w, log, "Unknown currency", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrNotFound):
		sendErrorResponse(w, log, "Expense not found",
			"The requested expense could not be found", http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrPersistence):
		log.Error("Change applied but not saved", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Change not saved",
			"The change was applied but could not be written to storage. Do not resubmit it; it is saved with the next successful change.",
			http.StatusInternalServerError, requestID)
	case errors.Is(err, entity.ErrClosed):
		sendErrorResponse(w, log, "Service unavailable",
			"The tracker is shutting down", http.StatusServiceUnavailable, requestID)
	default:
		log.Error("Unexpected error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
	}
}
