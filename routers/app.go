package routers

import (
	"campy/config"
	authController "campy/controllers/auth"
	courseController "campy/controllers/course"
	lessonController "campy/controllers/lesson"
	progressController "campy/controllers/progress"
	userController "campy/controllers/user"
	"campy/database"
	"campy/logger"
	"campy/metrics"
	"campy/middleware"
	"campy/routers/authRoutes"
	"campy/routers/courseRoutes"
	"campy/routers/lessonRoutes"
	"campy/routers/progressRoutes"
	"campy/routers/userRoutes"
	"campy/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

// Options tweak the app for tests.
type Options struct {
	// DisableAccessLog turns off the request log line.
	DisableAccessLog bool
}

// NewApp builds the HTTP application with every route and middleware.
func NewApp(cfg *config.Config, log *logger.Logger, db *gorm.DB, svc *services.Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Campy API",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(log, cfg.IsDevelopment()),
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	if !opts.DisableAccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	m := metrics.Get()
	app.Use(middleware.Metrics(m))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Campy API!",
			"version": apiVersion,
			"status":  "running",
		})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			log.Error("health check failed", "error", err)
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unavailable", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false,
				"Too many requests from this IP, please try again later.", nil)
		},
	}))

	api := app.Group("/api/v1")
	requireAuth := middleware.JWTMiddleware(svc.Auth.Tokens())

	users := userController.New(svc.Users)
	authRoutes.SetupAuthRoutes(api, authController.New(svc.Auth), requireAuth)
	userRoutes.SetupUserRoutes(api, users, requireAuth)
	courseRoutes.SetupCourseRoutes(api, courseController.New(svc.Catalog, svc.Enrollment), users, requireAuth)
	lessonRoutes.SetupLessonRoutes(api, lessonController.New(svc.Catalog), requireAuth)
	progressRoutes.SetupProgressRoutes(api, progressController.New(svc.Progress), requireAuth)

	app.Use(middleware.NotFound)

	return app
}
