// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"bloglist/internal/cache"
	"bloglist/internal/config"
	"bloglist/internal/middleware"
	"bloglist/internal/models"
	"bloglist/internal/observability"
	"bloglist/internal/repository"
	"bloglist/internal/service"
	"bloglist/internal/stats"
	"bloglist/internal/token"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

const serviceName = "bloglist-api"

type userService interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.UserWithBlogs, error)
	List(ctx context.Context) ([]models.UserWithBlogs, error)
	FindSummary(ctx context.Context, id string) (*models.UserSummary, error)
}

type authService interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
}

type blogService interface {
	Create(ctx context.Context, in service.CreateBlogInput) (*models.BlogWithOwner, error)
	List(ctx context.Context) ([]models.BlogWithOwner, error)
	UpdateLikes(ctx context.Context, id string, likes *int) (*models.BlogWithOwner, error)
	Delete(ctx context.Context, id, requesterID string) error
	Stats(ctx context.Context) (stats.Summary, error)
}

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	store           *repository.Store
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	tokens          middleware.TokenVerifier
	userService     userService
	authService     authService
	blogService     blogService
	tracingShutdown func(context.Context) error
}

// NewServer connects to the configured store and Redis and creates a server.
func NewServer(cfg *config.Config) (*Server, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	store, err := repository.Open(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.NewClient(cfg.RedisURL)

	server, err := NewServerWithDeps(cfg, store, redisClient)
	if err != nil {
		return nil, err
	}
	server.tracingShutdown = shutdownTracing
	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, store *repository.Store, redisClient *redis.Client) (*Server, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	tokens := token.NewService(cfg.JWTSecret)
	return &Server{
		config:         cfg,
		store:          store,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(serviceName),
		tokens:         tokens,
		userService:    service.NewUserService(store.Users, cache.New(redisClient), cfg.BcryptCost),
		authService:    service.NewAuthService(store.Users, tokens),
		blogService:    service.NewBlogService(store.Blogs, store.Users),
	}, nil
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Bloglist API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// errorHandler is the terminal handler for errors returned by handlers.
// StructuredLogger records the failure, so nothing is logged here.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := models.AsAppError(err); ok {
		return models.RespondWithError(c, appErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}

	return models.RespondWithError(c, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panics unwind past StructuredLogger, so recover logs them itself.
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			middleware.Logger.ErrorContext(c.UserContext(), "panic recovered",
				slog.String("path", c.Path()),
				slog.Any("panic", e),
				slog.String("stack", string(debug.Stack())),
			)
		},
	}))
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Propagates request and trace ids into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses
	// still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || !s.config.RateLimitEnabled()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "too many requests, please try again later",
			})
		},
	}))

	app.Use(middleware.TokenExtractor())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	limitsOn := s.config.RateLimitEnabled()
	loginLimit := s.config.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 10
	}
	api.Post("/login", middleware.RateLimit(s.redis, limitsOn, loginLimit, 5*time.Minute, "login"), s.Login)

	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", middleware.RateLimit(s.redis, limitsOn, 5, 10*time.Minute, "signup"), s.CreateUser)

	blogs := api.Group("/blogs")
	blogs.Get("/", s.GetBlogs)
	blogs.Get("/stats", s.GetBlogStats)
	blogs.Post("/", s.requireUser(), s.CreateBlog)
	blogs.Put("/:id", s.UpdateBlogLikes)
	blogs.Delete("/:id", s.requireUser(), s.DeleteBlog)

	app.Use(s.UnknownEndpoint)
}

// requireUser returns the route-level authentication stage.
func (s *Server) requireUser() fiber.Handler {
	return middleware.UserExtractor(s.tokens, s.userService)
}

// UnknownEndpoint answers every request that matched no route.
func (s *Server) UnknownEndpoint(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "unknown endpoint"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis only backs caching and rate limiting, so it does not gate readiness.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"backend":  s.store.Backend,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	if err := s.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return errors.Join(errs...)
}
