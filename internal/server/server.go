package server

import (
	"fmt"
	"net/http"
	"time"

	"otica-store/internal/cart"
	"otica-store/internal/catalog"
	"otica-store/internal/config"
	"otica-store/internal/fault"
	custommiddleware "otica-store/internal/middleware"
	"otica-store/internal/service"
	"otica-store/internal/storage"
	"otica-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.Recovery(logger))
	router.Use(custommiddleware.RequestLogging(logger))
	router.Use(custommiddleware.CORS(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Durable state backend for cart and auth session persistence.
	var (
		stateStore  storage.Store
		redisClient *redis.Client
	)
	if cfg.Storage.Backend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		stateStore = storage.NewRedisStore(redisClient, "otica")
	} else {
		fileStore, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create file storage: %w", err)
		}
		stateStore = fileStore
	}

	// Simulated transport. Each endpoint family carries its own latency and
	// failure profile; disabling faults zeroes all of them.
	injector := fault.NewInjector()
	productProfile := fault.Products
	storeProfile := fault.Stores
	categoryProfile := fault.Categories
	authProfile := fault.Auth
	engagementProfile := fault.Engagement
	if !cfg.Fault.Enabled {
		productProfile = fault.None
		storeProfile = fault.None
		categoryProfile = fault.None
		authProfile = fault.None
		engagementProfile = fault.None
	}

	// Initialize repositories over the seeded catalog
	productRepo := catalog.NewMemoryProductRepository(catalog.SeedProducts())
	storeRepo := catalog.NewMemoryStoreRepository(catalog.SeedStores())
	categoryRepo := catalog.NewMemoryCategoryRepository(catalog.SeedCategories())
	userRepo := catalog.NewMemoryUserRepository(catalog.SeedUsers())
	refreshTokenRepo := catalog.NewMemoryRefreshTokenRepository()
	engagementRepo := catalog.NewMemoryEngagementRepository()

	// Initialize services
	productService := service.NewProductService(productRepo, injector, productProfile, logger)
	storeService := service.NewStoreService(storeRepo, injector, storeProfile, logger)
	categoryService := service.NewCategoryService(categoryRepo, injector, categoryProfile, logger)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiry, injector, authProfile, logger)
	engagementService := service.NewEngagementService(engagementRepo, injector, engagementProfile, logger)
	cartManager := cart.NewManager(stateStore, logger)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)
	storeHandler := transport.NewStoreHandler(storeService, logger)
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	authHandler := transport.NewAuthHandler(authService, logger)
	engagementHandler := transport.NewEngagementHandler(engagementService, logger)
	cartHandler := transport.NewCartHandler(cartManager, productRepo, logger)

	// Public catalog and engagement routes
	productHandler.RegisterRoutes(router)
	storeHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	engagementHandler.RegisterRoutes(router)

	// Auth routes are rate limited when Redis is available.
	router.Group(func(r chi.Router) {
		if redisClient != nil {
			r.Use(custommiddleware.RateLimit(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
				Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
				KeyPrefix:         "ratelimit:auth",
			}, logger))
		}
		authHandler.RegisterRoutes(r)
	})

	// Cart routes require an authenticated session.
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.Auth(cfg.JWT.Secret, logger))
		cartHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
