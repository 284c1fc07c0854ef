package api

import (
	"net/http"

	"github.com/avaldez/ecommerce-api/internal/api/handlers"
	"github.com/avaldez/ecommerce-api/internal/api/middleware"
	"github.com/avaldez/ecommerce-api/internal/config"
	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/avaldez/ecommerce-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	productHandler := handlers.NewProductHandler(services.Product)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// User management (admin only)
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Get("/", authHandler.ListUsers)
			r.Get("/{id}", authHandler.GetUser)
		})

		// Categories: reads are public, mutations are admin only
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetAll)
			r.Get("/{id}", categoryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Post("/", categoryHandler.Create)
				r.Patch("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})
		})

		// Products: reads are public, buy needs a session, mutations admin
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/search", productHandler.Search)
			r.Get("/{id}", productHandler.Get)
			r.Get("/category/{categoryId}", productHandler.GetByCategory)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/buy", productHandler.Buy)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Post("/", productHandler.Create)
				r.Patch("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return r
}
