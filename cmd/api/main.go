package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"kejani-backend/internal/config"
	"kejani-backend/internal/handler"
	"kejani-backend/internal/middleware"
	"kejani-backend/internal/repository"
	"kejani-backend/internal/service"
	"kejani-backend/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	feed := repository.NewRedisPropertyFeed(redis)
	services := service.NewServices(repos, redis, minioClient, feed, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
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

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Directory browsing and applications need no account.
	properties := v1.Group("/properties")
	properties.Get("/", h.Property.List)
	properties.Get("/search", h.Property.Search)
	properties.Get("/featured", h.Property.Featured)

	applications := v1.Group("/applications")
	applications.Post("/", h.Application.Submit)

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)
	protected.Post("/users/:id/role", middleware.RequireRole("admin"), h.Auth.AssignRole)

	mine := protected.Group("/properties")
	mine.Get("/mine", h.Property.ListMine)
	mine.Post("/", h.Property.Create)
	mine.Post("/featured", middleware.RequireRole("admin"), h.Property.CreateFeatured)
	mine.Patch("/:id", h.Property.Update)
	mine.Delete("/:id", h.Property.Delete)
	mine.Get("/:id/owner-contact", h.Property.GetOwnerContact)
	mine.Get("/:id/media", h.Media.ListByProperty)

	// Detail route registers after the static segments so "/mine",
	// "/search" and "/featured" do not bind as IDs.
	properties.Get("/:id", h.Property.GetByID)

	verification := protected.Group("/verification", middleware.RequireRole("agent"))
	verification.Get("/pending", h.Verification.Pending)
	verification.Post("/:id/verify", h.Verification.Verify)
	verification.Post("/:id/reject", h.Verification.Reject)

	media := protected.Group("/media")
	media.Post("/", h.Media.Upload)
	media.Delete("/:id", h.Media.Delete)

	notifications := protected.Group("/notifications", middleware.RequireRole("agent"))
	notifications.Get("/counts", h.Notification.Counts)

	pendingApplications := protected.Group("/applications", middleware.RequireRole("agent"))
	pendingApplications.Get("/pending", h.Application.ListPending)
	pendingApplications.Post("/:id/approve", middleware.RequireRole("admin"), h.Application.Approve)
	pendingApplications.Post("/:id/reject", middleware.RequireRole("admin"), h.Application.Reject)

	maintenance := protected.Group("/maintenance")
	maintenance.Post("/", h.Intake.ReportMaintenance)
	maintenance.Get("/open", middleware.RequireRole("agent"), h.Intake.OpenMaintenance)
	maintenance.Patch("/:id", middleware.RequireRole("agent"), h.Intake.SetMaintenanceStatus)

	payments := protected.Group("/payments")
	payments.Post("/", h.Intake.RecordPayment)
	payments.Get("/outstanding", middleware.RequireRole("agent"), h.Intake.OutstandingPayments)
	payments.Patch("/:id", middleware.RequireRole("agent"), h.Intake.SetPaymentStatus)

	reports := protected.Group("/reports")
	reports.Post("/", h.Intake.FileReport)
	reports.Get("/open", middleware.RequireRole("agent"), h.Intake.OpenReports)
	reports.Post("/:id/resolve", middleware.RequireRole("agent"), h.Intake.ResolveReport)
}
