package routes

import (
	"eduforge/backend/config"
	"eduforge/backend/controllers"
	"eduforge/backend/middleware"
	"eduforge/backend/storage"
	"eduforge/backend/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// resource is a controller exposing the standard CRUD handlers.
type resource interface {
	List(c *fiber.Ctx) error
	Retrieve(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func register(router fiber.Router, ctrl resource) {
	router.Get("/", ctrl.List)
	router.Post("/", ctrl.Create)
	router.Get("/:id", ctrl.Retrieve)
	router.Put("/:id", ctrl.Update)
	router.Patch("/:id", ctrl.Update)
	router.Delete("/:id", ctrl.Delete)
}

// NewApp builds the fiber app with its middleware stack and every route.
func NewApp(db *gorm.DB, cfg *config.Config, store storage.FileStore, logger *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		// decoding stays on encoding/json so type errors can be mapped per field
		JSONEncoder:           sonic.Marshal,
		ErrorHandler:          utils.ErrorHandler(logger),
		DisableStartupMessage: true,
		BodyLimit:             32 * 1024 * 1024,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middleware.LoggingMiddleware(logger))

	SetupRoutes(app, db, cfg, store, logger)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, store storage.FileStore, logger *utils.Logger) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("EduForge Backend is Running!")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	if local, ok := store.(*storage.LocalStore); ok {
		app.Static(cfg.MediaURL, local.Root)
	}

	api := app.Group("/api", middleware.AuthMiddleware(db, cfg))

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	// one limiter instance so all four routes share the per-IP budget
	var limit fiber.Handler
	if cfg.AuthRateLimit > 0 {
		limit = middleware.AuthRateLimiter(cfg.AuthRateLimit)
	}
	auth := func(h fiber.Handler) []fiber.Handler {
		if limit == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{limit, h}
	}
	api.Post("/auth/register", auth(authController.Register)...)
	api.Post("/auth/login", auth(authController.Login)...)
	api.Post("/register", auth(authController.Register)...)
	api.Post("/login", auth(authController.Login)...)

	userController := controllers.NewUserController(db)
	me := api.Group("/auth/me", middleware.RequireAuth())
	me.Get("/", userController.GetProfile)
	me.Put("/", userController.UpdateProfile)
	me.Patch("/", userController.UpdateProfile)

	register(api.Group("/courses"), controllers.NewCoursesController(db, store))
	register(api.Group("/lessons"), controllers.NewLessonsController(db, store))
	register(api.Group("/projects"), controllers.NewProjectsController(db))
	register(api.Group("/submissions"), controllers.NewSubmissionsController(db, store, logger))
	register(api.Group("/quizzes"), controllers.NewQuizzesController(db))
	register(api.Group("/questions"), controllers.NewQuestionsController(db))
	register(api.Group("/choices"), controllers.NewChoicesController(db))
	register(api.Group("/announcements"), controllers.NewAnnouncementsController(db))
	register(api.Group("/comments"), controllers.NewCommentsController(db))
	register(api.Group("/devices"), controllers.NewDevicesController(db))
	register(api.Group("/lesson-attachments"), controllers.NewAttachmentsController(db, store, logger))

	progressController := controllers.NewProgressController(db)
	enrollments := api.Group("/enrollments")
	enrollments.Post("/mark_complete", progressController.MarkComplete)
	register(enrollments, progressController)

	notificationsController := controllers.NewNotificationsController(db, logger)
	notifications := api.Group("/notifications")
	notifications.Post("/:id/mark_read", notificationsController.MarkRead)
	register(notifications, notificationsController)
}
