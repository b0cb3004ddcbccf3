package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/handler"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/middleware"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/service"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/config"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/database"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/jwtutil"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
	"github.com/Pushkaraj-Palli/NotesFlow/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting notes API...", zap.String("environment", cfg.Server.Env))

	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, &model.Tenant{}, &model.User{}, &model.Note{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	resolver := auth.NewResolver(db, jwtUtil)

	authHandler := handler.NewAuthHandler(service.NewAuthService(db, jwtUtil))
	noteHandler := handler.NewNoteHandler(service.NewNoteService(db))
	userHandler := handler.NewUserHandler(service.NewUserService(db))
	tenantHandler := handler.NewTenantHandler(service.NewTenantService(db))

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestID)
	e.Use(prometheus.Middleware())

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	})

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	api := e.Group("/api")
	api.Use(middleware.Authenticate(resolver))

	notes := api.Group("/notes")
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)
	notes.PATCH("/:id/pin", noteHandler.TogglePin)

	users := api.Group("/users")
	users.GET("", userHandler.List)
	users.POST("/invite", userHandler.Invite)

	tenant := api.Group("/tenant")
	tenant.GET("", tenantHandler.Get)
	tenant.GET("/usage", tenantHandler.Usage)
	tenant.POST("/upgrade", tenantHandler.UpgradePlan)

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
