package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"feedback-backend/internal/config"
	"feedback-backend/internal/domain"
	"feedback-backend/internal/handler"
	"feedback-backend/internal/middleware"
	"feedback-backend/internal/pkg/i18n"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service"
	"feedback-backend/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		zapLogger.Warn("Failed to connect to MinIO, attachment upload will not work", zap.Error(err))
	}

	if err := i18n.LoadTranslations(cfg.LocalePath); err != nil {
		zapLogger.Fatal("Failed to load translations", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	zapLogger.Info("Server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/facebook", h.Auth.FacebookLogin)
	authGroup.Post("/google", h.Auth.GoogleLogin)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Post("/me/picture", h.User.UploadPicture)

	feedback := protected.Group("/feedback")
	feedback.Post("/", h.Feedback.Create)
	feedback.Get("/", h.Feedback.List)
	feedback.Get("/:id", h.Feedback.Get)
	feedback.Post("/:id/attachments", h.Feedback.AddAttachment)
	feedback.Patch("/:id/status", middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff), h.Feedback.UpdateStatus)
	feedback.Post("/:id/responses", middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff), h.Feedback.Respond)
	feedback.Get("/:id/responses", h.Feedback.ListResponses)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)

	reports := protected.Group("/reports", middleware.RequireRole(domain.RoleAdmin))
	reports.Post("/", h.Report.Create)
	reports.Get("/", h.Report.List)
	reports.Get("/:id/export", h.Report.Export)
}
