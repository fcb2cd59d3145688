package api

import (
	"net/http"
	"time"

	"fintrack/internal/api/handler"
	"fintrack/internal/api/middleware"
	"fintrack/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	authService *service.AuthService,
	sessionService *service.SessionService,
	userService *service.UserService,
	investmentService *service.InvestmentService,
	expenseService *service.ExpenseService,
	chatService *service.ChatService,
	staticDir string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Session resolution runs per protected route group, not globally, so
	// public reads stay tokenless.
	authn := middleware.Authenticator(sessionService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Login + profile (upstream paths, outside /api/v1)
	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r, authn)

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes(authn))

		investmentHandler := handler.NewInvestmentHandler(investmentService)
		v1.Route("/investments", func(pr chi.Router) {
			pr.Use(authn)
			investmentHandler.RegisterRoutes(pr)
		})

		expenseHandler := handler.NewExpenseHandler(expenseService)
		v1.Route("/expenses", func(pr chi.Router) {
			pr.Use(authn)
			expenseHandler.RegisterRoutes(pr)
		})

		chatHandler := handler.NewChatHandler(chatService)
		v1.Route("/chat", func(pr chi.Router) {
			pr.Use(authn)
			chatHandler.RegisterRoutes(pr)
		})
	})

	// Frontend assets
	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
