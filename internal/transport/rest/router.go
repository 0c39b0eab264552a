package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/spendwise-server/internal/analytics"
	"github.com/frahmantamala/spendwise-server/internal/auth"
	"github.com/frahmantamala/spendwise-server/internal/budget"
	"github.com/frahmantamala/spendwise-server/internal/category"
	"github.com/frahmantamala/spendwise-server/internal/expense"
	"github.com/frahmantamala/spendwise-server/internal/transport/middleware"
	"github.com/frahmantamala/spendwise-server/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires every handler onto the router. authHandler may be
// nil, in which case the API runs in open mode and no routes require a token.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, authHandler *auth.Handler, categoryHandler *category.Handler, expenseHandler *expense.Handler, budgetHandler *budget.Handler, analyticsHandler *analytics.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/token", authHandler.Token)
				sr.Post("/refresh", authHandler.RefreshToken)
			})
		}

		// Public categories route (no auth required)
		r.Get("/categories", categoryHandler.GetCategories)

		// Everything below requires a token when auth is configured.
		r.Group(func(pr chi.Router) {
			if authHandler != nil {
				pr.Use(authHandler.AuthMiddleware)
			}

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/", expenseHandler.ListExpenses)
				er.Get("/recent", expenseHandler.RecentExpenses)
				er.Get("/{id}", expenseHandler.GetExpense)
				er.Delete("/{id}", expenseHandler.DeleteExpense)
			})

			pr.Route("/budget", func(br chi.Router) {
				br.Get("/", budgetHandler.GetBudget)
				br.Put("/", budgetHandler.UpdateBudget)
			})

			pr.Route("/analytics", func(ar chi.Router) {
				ar.Get("/summary", analyticsHandler.MonthSummary)
				ar.Get("/months", analyticsHandler.TrailingMonths)
			})

			pr.Get("/dashboard", analyticsHandler.Dashboard)
		})
	})
}
