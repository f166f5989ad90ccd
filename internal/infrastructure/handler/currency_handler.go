package handler

import (
	"net/http"

	"github.com/damon-houk/expense-tracker/internal/application/service"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// CurrencyHandler handles the display-currency selector
type CurrencyHandler struct {
	tracker *service.TrackerService
	logger  logger.Logger
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(tracker *service.TrackerService, log logger.Logger) *CurrencyHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurrencyHandler{tracker: tracker, logger: log}
}

// ListCurrencies handles GET /currencies
func (h *CurrencyHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.RateTable().All())
}

// GetDisplayCurrency handles GET /currency
func (h *CurrencyHandler) GetDisplayCurrency(w http.ResponseWriter, r *http.Request) {
	h.respondCurrent(w, r)
}

// SetDisplayCurrency handles PUT /currency
func (h *CurrencyHandler) SetDisplayCurrency(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req SetCurrencyRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"Expected a JSON object with a 3-letter currency code", http.StatusBadRequest, requestID)
		return
	}

	if err := h.tracker.SetDisplayCurrency(r.Context(), normalizeCode(req.Code)); err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	h.respondCurrent(w, r)
}

func (h *CurrencyHandler) respondCurrent(w http.ResponseWriter, r *http.Request) {
	c, err := h.tracker.RateTable().Lookup(h.tracker.DisplayCurrency())
	if err != nil {
		sendDomainError(w, h.logger, err, middleware.GetRequestID(r.Context()))
		return
	}

	writeJSON(w, http.StatusOK, CurrencyResponse{Code: c.Code, Symbol: c.Symbol, Name: c.Name})
}

// RegisterRoutes registers the currency handler routes
func (h *CurrencyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/currencies", h.ListCurrencies).Methods(http.MethodGet)
	router.HandleFunc("/currency", h.GetDisplayCurrency).Methods(http.MethodGet)
	router.HandleFunc("/currency", h.SetDisplayCurrency).Methods(http.MethodPut)

	h.logger.Debug("Currency routes registered", map[string]interface{}{
		"routes": []string{
			"GET /currencies",
			"GET /currency",
			"PUT /currency",
		},
	})
}
