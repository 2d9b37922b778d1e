// Package server wires repositories, services and handlers into a Fiber app.
package server

import (
	"errors"
	"fmt"
	"time"

	"kayoemoeda/internal/handlers"
	"kayoemoeda/internal/middleware"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Options carries the settings the services and routes need.
type Options struct {
	JWTSecret      string
	JWTTTL         time.Duration
	ResetTokenTTL  time.Duration
	SnowflakeNode  int64
	LoginRateLimit int
	AccessLog      bool
}

// Services is the set of business services behind the HTTP API.
type Services struct {
	Store    *repositories.Store
	Auth     *services.AuthService
	Accounts *services.AccountService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	// Stock adjusts an order's stock directly. Status changes reach the
	// same logic through Orders.
	Stock        *services.StockService
	Insights     *services.InsightService
	CustomOrders *services.CustomOrderService
	Reservations *services.ReservationService
}

// NewServices builds every service on top of store. events may be nil.
func NewServices(store *repositories.Store, events services.EventPublisher, opts Options) (*Services, error) {
	codes, err := services.NewSnowflakeCodeGenerator(opts.SnowflakeNode)
	if err != nil {
		return nil, err
	}
	auth := services.NewAuthService(store.Users, opts.JWTSecret,
		services.WithTokenTTL(opts.JWTTTL),
		services.WithPasswordReset(store, events, opts.ResetTokenTTL),
	)
	return &Services{
		Store:        store,
		Auth:         auth,
		Accounts:     services.NewAccountService(auth, store.Users),
		Products:     services.NewProductService(store.Products),
		Carts:        services.NewCartService(store.Carts, store.Products),
		Orders:       services.NewOrderService(store, codes, events),
		Stock:        services.NewStockService(store),
		Insights:     services.NewInsightService(store.Orders),
		CustomOrders: services.NewCustomOrderService(store.CustomOrders, events),
		Reservations: services.NewReservationService(store.Reservations, events),
	}, nil
}

// New builds the Fiber app with every route under /api/v1.
func New(svc *Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "kayoemoeda",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	authHandler := handlers.NewAuthHandler(svc.Auth, opts.LoginRateLimit)
	productHandler := handlers.NewProductHandler(svc.Products)
	cartHandler := handlers.NewCartHandler(svc.Carts)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	customOrderHandler := handlers.NewCustomOrderHandler(svc.CustomOrders)
	reservationHandler := handlers.NewReservationHandler(svc.Reservations)
	insightHandler := handlers.NewInsightHandler(svc.Insights)
	reportHandler := handlers.NewReportHandler(svc.Insights)
	accountHandler := handlers.NewAccountHandler(svc.Accounts)

	api := app.Group("/api/v1")
	api.Get("/health", healthCheck(svc.Store))

	// Public routes must be registered before the authenticated group, whose
	// middleware applies to every path under the prefix it shares.
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(svc.Auth))
	authHandler.RegisterSessionRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	customOrderHandler.RegisterRoutes(protected)
	reservationHandler.RegisterRoutes(protected)

	admin := protected.Group("/admin", middleware.RequireCapability(models.CanManageOrders))
	orderHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	customOrderHandler.RegisterAdminRoutes(admin)
	reservationHandler.RegisterAdminRoutes(admin)
	insightHandler.RegisterAdminRoutes(admin)

	reports := protected.Group("/reports", middleware.RequireCapability(models.CanManageOrders))
	reportHandler.RegisterRoutes(reports)

	owner := protected.Group("/owner", middleware.RequireCapability(models.CanManageAdmins))
	insightHandler.RegisterOwnerRoutes(owner)
	accountHandler.RegisterRoutes(owner)

	return app
}

func healthCheck(store *repositories.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if err := ping(store); err != nil {
			zap.S().Warnf("health check: %v", err)
			status, code = "degraded", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func ping(store *repositories.Store) error {
	sqlDB, err := store.DB().DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.Ping()
}

// errorHandler renders errors that escape handlers, such as unknown routes
// and recovered panics, in the same {"message"} shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	} else {
		zap.S().Errorw("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}
