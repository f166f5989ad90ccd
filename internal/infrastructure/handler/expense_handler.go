// Package handler exposes the tracker to presentation clients over JSON/HTTP
package handler

import (
	"net/http"
	"strconv"

	"github.com/damon-houk/expense-tracker/internal/application/service"
	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ExpenseHandler handles HTTP requests of the add/edit form, the list and the chart
type ExpenseHandler struct {
	tracker *service.TrackerService
	views   *service.ViewService
	logger  logger.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(tracker *service.TrackerService, views *service.ViewService, log logger.Logger) *ExpenseHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExpenseHandler{
		tracker: tracker,
		views:   views,
		logger:  log,
	}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateExpenseRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"Expected a JSON object with a title and a numeric amount", http.StatusBadRequest, requestID)
		return
	}

	e, err := h.tracker.AddExpense(r.Context(), req.Title, *req.Amount)
	if err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

// GetExpense handles GET /expenses/{id}
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid expense id", err.Error(), http.StatusBadRequest, requestID)
		return
	}

	e, err := h.tracker.GetExpense(id)
	if err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// UpdateExpense handles PUT /expenses/{id}
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid expense id", err.Error(), http.StatusBadRequest, requestID)
		return
	}

	var req UpdateExpenseRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"Expected a JSON object with a title, a numeric amount and an optional 3-letter currency",
			http.StatusBadRequest, requestID)
		return
	}

	upd := entity.ExpenseUpdate{Title: req.Title, Amount: *req.Amount}
	if req.Currency != nil {
		code := normalizeCode(*req.Currency)
		upd.Currency = &code
	}

	e, err := h.tracker.UpdateExpense(r.Context(), id, upd)
	if err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// DeleteExpense handles DELETE /expenses/{id}
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid expense id", err.Error(), http.StatusBadRequest, requestID)
		return
	}

	if err := h.tracker.DeleteExpense(r.Context(), id); err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListExpenses handles GET /expenses, converted to the display currency
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	view, err := h.views.ExpenseList()
	if err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Chart handles GET /chart
func (h *ExpenseHandler) Chart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.Chart())
}

// AmountLabel handles GET /form/label with an optional editing={id} query
func (h *ExpenseHandler) AmountLabel(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var editing *entity.Expense
	if raw := r.URL.Query().Get("editing"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			sendErrorResponse(w, h.logger, "Invalid expense id", err.Error(), http.StatusBadRequest, requestID)
			return
		}
		e, err := h.tracker.GetExpense(id)
		if err != nil {
			sendDomainError(w, h.logger, err, requestID)
			return
		}
		editing = &e
	}

	label, err := h.views.AmountLabel(editing)
	if err != nil {
		sendDomainError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, AmountLabelResponse{Label: label})
}

// RegisterRoutes registers the expense handler routes
func (h *ExpenseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	router.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	router.HandleFunc("/expenses/{id:[0-9]+}", h.GetExpense).Methods(http.MethodGet)
	router.HandleFunc("/expenses/{id:[0-9]+}", h.UpdateExpense).Methods(http.MethodPut)
	router.HandleFunc("/expenses/{id:[0-9]+}", h.DeleteExpense).Methods(http.MethodDelete)
	router.HandleFunc("/chart", h.Chart).Methods(http.MethodGet)
	router.HandleFunc("/form/label", h.AmountLabel).Methods(http.MethodGet)

	h.logger.Debug("Expense routes registered", map[string]interface{}{
		"routes": []string{
			"GET /expenses",
			"POST /expenses",
			"GET /expenses/{id}",
			"PUT /expenses/{id}",
			"DELETE /expenses/{id}",
			"GET /chart",
			"GET /form/label",
		},
	})
}
