package router

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"

	"visitor-management/config"
	"visitor-management/config/middleware"
	_ "visitor-management/docs"
	"visitor-management/handlers"
	"visitor-management/models"
	"visitor-management/pkg/metrics"
	"visitor-management/services"
)

// Dependencies are the services the HTTP layer exposes.
type Dependencies struct {
	Auth         *services.AuthService
	Visits       *services.VisitService
	PreApprovals *services.PreApprovalService
	Users        *services.UserService
	Tokens       middleware.TokenValidator
	Metrics      *metrics.Metrics
}

// NewApp builds the Fiber app with the error handler and the global
// middleware stack. accessLog receives one line per request.
func NewApp(cfg *config.AppConfig, log *slog.Logger, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Visitor Management API",
		ErrorHandler: handlers.ErrorHandler(log, cfg.IsProduction()),
		BodyLimit:    int(cfg.MaxPhotoBytes) + 64*1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	config.SetupCORS(app, cfg)
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${locals:requestid}\n",
		Output: accessLog,
	}))
	return app
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Auth)
	visitHandler := handlers.NewVisitHandler(deps.Visits)
	preApprovalHandler := handlers.NewPreApprovalHandler(deps.PreApprovals)
	userHandler := handlers.NewUserHandler(deps.Users)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Visitor Management API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api/v1")
	authenticated := middleware.AuthMiddleware(deps.Tokens, deps.Auth)

	api.Post("/setup/admin", authHandler.SetupAdmin)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authenticated, authHandler.Me)
	authGroup.Put("/me", authenticated, authHandler.UpdateMe)
	authGroup.Put("/password", authenticated, authHandler.ChangePassword)

	// Check-in and check-out are shared with the front desk; the service
	// restricts visitors to their own visits.
	visitorGroup := api.Group("/visitor", authenticated)
	visitorOnly := middleware.RoleMiddleware(models.RoleVisitor)
	desk := middleware.RoleMiddleware(models.RoleVisitor, models.RoleGuard, models.RoleReceptionist, models.RoleAdmin)
	visitorGroup.Post("/visit", visitorOnly, visitHandler.RequestVisit)
	visitorGroup.Get("/visits", visitorOnly, visitHandler.MyVisits)
	visitorGroup.Put("/visits/:id/cancel", visitorOnly, visitHandler.CancelVisit)
	visitorGroup.Post("/checkin", desk, visitHandler.CheckIn)
	visitorGroup.Put("/checkout/:id", desk, visitHandler.CheckOut)

	adminGroup := api.Group("/admin", authenticated, middleware.AdminMiddleware())
	adminGroup.Get("/visits", visitHandler.ListVisits)
	adminGroup.Get("/visits/status/:status", visitHandler.VisitsByStatus)
	adminGroup.Get("/visits/today", visitHandler.TodayVisits)
	adminGroup.Get("/visits/active", visitHandler.ActiveVisits)
	adminGroup.Put("/visits/:id", visitHandler.DecideVisit)
	adminGroup.Get("/stats", visitHandler.Stats)

	adminGroup.Post("/preapproval", preApprovalHandler.CreatePreApproval)
	adminGroup.Get("/preapproval", preApprovalHandler.ListPreApprovals)
	adminGroup.Post("/preapproval/expire", preApprovalHandler.ExpirePreApprovals)
	adminGroup.Put("/preapproval/:id", preApprovalHandler.UpdatePreApprovalStatus)

	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Put("/users/:id/role", userHandler.UpdateUserRole)
	adminGroup.Put("/users/:id/active", userHandler.UpdateUserActive)

	photoGroup := api.Group("/photo", authenticated)
	photoGroup.Post("/upload", userHandler.UploadPhoto)
	photoGroup.Get("/:userId", userHandler.GetPhoto)
}
