package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Sabbir999/Team-budget/handlers"
	"github.com/Sabbir999/Team-budget/metrics"
	"github.com/Sabbir999/Team-budget/middleware"
)

// SetupRoutes mounts every endpoint on the router. Auth and WebSocket hang
// off the same JWT middleware; /healthz and /metrics stay open.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	expenseHandler *handlers.ExpenseHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
	sportHandler *handlers.SportHandler,
	preferenceHandler *handlers.PreferenceHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/signin", authHandler.SignIn)

	// The sport registry is static and public.
	router.Get("/sports", sportHandler.List)
	router.Get("/sports/{sportKey}", sportHandler.Get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", userHandler.GetMe)
			r.Put("/", userHandler.UpdateProfile)
			r.Put("/password", userHandler.ChangePassword)
			r.Put("/email", userHandler.ChangeEmail)
			r.Delete("/", userHandler.DeleteAccount)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Get("/{teamID}", teamHandler.Get)
			r.Put("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.List)
			r.Post("/", playerHandler.Create)
			r.Get("/{playerID}", playerHandler.Get)
			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Delete)
			r.Get("/{playerID}/balance", playerHandler.Balance)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", expenseHandler.List)
			r.Post("/", expenseHandler.Create)
			r.Get("/{expenseID}", expenseHandler.Get)
			r.Put("/{expenseID}", expenseHandler.Update)
			r.Delete("/{expenseID}", expenseHandler.Delete)
			r.Post("/{expenseID}/receipt", expenseHandler.UploadReceipt)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", paymentHandler.List)
			r.Post("/", paymentHandler.Create)
			r.Get("/{paymentID}", paymentHandler.Get)
			r.Put("/{paymentID}", paymentHandler.Update)
			r.Delete("/{paymentID}", paymentHandler.Delete)
		})

		r.Get("/dashboard", dashboardHandler.GetStats)

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", preferenceHandler.Get)
			r.Put("/", preferenceHandler.Update)
		})

		r.Get("/ws", webSocketHandler.ServeWs)
	})
}
