package handler

import (
	"net/http"

	"github.com/damon-houk/expense-tracker/internal/application/service"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires every handler and the middleware chain
func NewRouter(tracker *service.TrackerService, views *service.ViewService, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.Recovery(log), middleware.Logging(log))

	NewExpenseHandler(tracker, views, log).RegisterRoutes(router)
	NewCurrencyHandler(tracker, log).RegisterRoutes(router)

	return router
}
