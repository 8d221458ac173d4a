// Package api wires the REST surface onto the ledger services.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kavidoi/re-solve/internal/api/handlers"
	"github.com/kavidoi/re-solve/internal/middleware"
	"github.com/kavidoi/re-solve/internal/service"
)

// Services bundles the service layer dependencies of the router.
type Services struct {
	Users    *service.UserService
	Groups   *service.GroupService
	Expenses *service.ExpenseService
	Balances *service.BalanceService
	Friends  *service.FriendService
}

// NewRouter creates and configures a new chi router exposing the full API
// surface.
func NewRouter(svcs Services, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	userHandler := handlers.NewUserHandler(svcs.Users)
	groupHandler := handlers.NewGroupHandler(svcs.Groups)
	expenseHandler := handlers.NewExpenseHandler(svcs.Expenses)
	balanceHandler := handlers.NewBalanceHandler(svcs.Balances)
	friendHandler := handlers.NewFriendHandler(svcs.Friends)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Get("/{userId}", userHandler.Get)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", expenseHandler.Create)
			r.Get("/user/{userId}", expenseHandler.GetByUser)
			r.Get("/user/{userId}/date-range", expenseHandler.GetByDateRange)
			r.Get("/group/{groupId}", expenseHandler.GetByGroup)
			r.Post("/{expenseId}/settle", expenseHandler.Settle)
			r.Delete("/{expenseId}", expenseHandler.Delete)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", groupHandler.Create)
			r.Get("/user/{userId}", groupHandler.GetByUser)
			r.Get("/search", groupHandler.Search)
			r.Put("/{id}", groupHandler.Update)
			r.Delete("/{id}", groupHandler.Delete)
			r.Post("/{groupId}/members/{userId}", groupHandler.AddMember)
			r.Delete("/{groupId}/members/{userId}", groupHandler.RemoveMember)
		})

		r.Route("/balances", func(r chi.Router) {
			r.Get("/user/{userId}", balanceHandler.GetUserSummary)
			r.Get("/group/{groupId}", balanceHandler.GetGroupBalances)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Post("/request", friendHandler.SendRequest)
			r.Post("/{friendshipId}/respond", friendHandler.Respond)
			r.Get("/user/{userId}", friendHandler.GetFriends)
			r.Get("/user/{userId}/pending", friendHandler.GetPendingRequests)
		})
	})

	return r
}
