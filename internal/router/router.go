package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kantin-pos/api/internal/config"
	"github.com/kantin-pos/api/internal/database"
	"github.com/kantin-pos/api/internal/enum"
	"github.com/kantin-pos/api/internal/handler"
	mw "github.com/kantin-pos/api/internal/middleware"
	"github.com/kantin-pos/api/internal/service"
	"github.com/kantin-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // Next.js dev server
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/sales", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Services share the pool for transactional work.
	saleService := service.NewSaleService(pool, func(db database.DBTX) service.SaleStore {
		return database.New(db)
	})
	collectionService := service.NewCollectionService(pool, func(db database.DBTX) service.CollectionStore {
		return database.New(db)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Menu (read-only for every role)
		menuHandler := handler.NewMenuHandler(queries)
		menuHandler.RegisterRoutes(r)

		// Sales
		saleHandler := handler.NewSaleHandler(saleService, queries, hub)
		saleHandler.RegisterRoutes(r)

		// Daily collections (cashier-facing)
		collectionHandler := handler.NewCollectionHandler(collectionService, queries)
		collectionHandler.RegisterRoutes(r)

		// Reports (role scoping handled inside the handler)
		reportsHandler := handler.NewReportsHandler(queries)
		reportsHandler.RegisterRoutes(r)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin))

			menuHandler.RegisterAdminRoutes(r)
			collectionHandler.RegisterAdminRoutes(r)
			reportsHandler.RegisterAdminRoutes(r)

			userHandler := handler.NewUserHandler(queries)
			userHandler.RegisterRoutes(r)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
