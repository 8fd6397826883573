package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nmehta6/shopassist/internal/api/handler"
	customMiddleware "github.com/nmehta6/shopassist/internal/api/middleware"
	"github.com/nmehta6/shopassist/internal/assistant"
	"github.com/nmehta6/shopassist/internal/bus"
	"github.com/nmehta6/shopassist/internal/config"
	"github.com/nmehta6/shopassist/internal/llm/gemini"
	"github.com/nmehta6/shopassist/internal/repository/mongo"
	"github.com/nmehta6/shopassist/internal/repository/redis"
	"github.com/nmehta6/shopassist/internal/security"
	"github.com/nmehta6/shopassist/internal/service"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongo.DB, redisClient *redis.Client, events bus.Bus) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := mongo.NewUserRepository(db)
	convRepo := mongo.NewConversationRepository(db)
	productRepo := mongo.NewProductRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	policyRepo := redis.NewCachedPolicyRepository(mongo.NewPolicyRepository(db), redisClient)

	// Per-user API rate limiter
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Assistant.APIRateLimit.RequestsPerMinute,
		cfg.Assistant.APIRateLimit.Burst,
	)

	// Model provider
	provider := gemini.NewProvider(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if !provider.IsConfigured() {
		log.Warn().Msg("Gemini API key is empty, open-ended questions get the fallback reply")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	policyService := service.NewPolicyService(policyRepo)
	chatService := service.NewChatService(
		convRepo,
		assistant.NewClassifier(),
		assistant.NewResponder(productRepo, orderRepo, policyRepo),
		assistant.NewWindowLimiter(cfg.Assistant.RateLimitMax, cfg.Assistant.RateLimitWindow),
		assistant.NewRetrier(cfg.Assistant.RetryAttempts, cfg.Assistant.RetryBaseDelay),
		provider,
		events,
		cfg.Assistant.HistoryLimit,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	productHandler := handler.NewProductHandler(productService)
	policyHandler := handler.NewPolicyHandler(policyService)
	wsHandler := handler.NewWSHandler(chatService, events)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db, redisClient))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)

			// Chat
			r.Post("/chat/messages", chatHandler.SendMessage)
			r.Get("/ws", wsHandler.Serve)

			// Conversations
			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", chatHandler.ListConversations)

				r.Route("/{conversationID}", func(r chi.Router) {
					r.Get("/", chatHandler.GetConversation)
					r.Delete("/", chatHandler.DeleteConversation)
					r.Post("/end", chatHandler.EndConversation)
					r.Post("/feedback", chatHandler.LeaveFeedback)
				})
			})

			// Catalog
			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Get("/{productID}", productHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireAdmin)
					r.Post("/", productHandler.Create)
					r.Put("/{productID}", productHandler.Update)
					r.Delete("/{productID}", productHandler.Delete)
				})
			})

			// Policies
			r.Route("/policies", func(r chi.Router) {
				r.Get("/", policyHandler.List)
				r.Get("/{policyType}", policyHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireAdmin)
					r.Put("/{policyType}", policyHandler.Upsert)
					r.Delete("/{policyType}", policyHandler.Delete)
				})
			})
		})
	})

	return r
}
