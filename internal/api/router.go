package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/manvaasam/platform/internal/api/handler"
	"github.com/manvaasam/platform/internal/api/middleware"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
	"github.com/manvaasam/platform/internal/core/service"
	"github.com/manvaasam/platform/internal/infrastructure/config"
	mongorepo "github.com/manvaasam/platform/internal/infrastructure/db/mongo"
	redisinfra "github.com/manvaasam/platform/internal/infrastructure/db/redis"
	"github.com/manvaasam/platform/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the delivery event dispatcher (started by the caller).
func NewRouter(cfg *config.Config, db *mongodriver.Database, rdb *goredis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	// The route guard runs before routing: it is a cheap cookie-presence
	// gate, never a verifier.
	e.Pre(middleware.RouteGuard())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("manvaasam"))

	// --- Repositories ---
	users := mongorepo.NewUserRepository(db)
	orders := mongorepo.NewOrderRepository(db)
	products := mongorepo.NewProductRepository(db)
	sessions := redisinfra.NewSessionStore(rdb)
	dedup := redisinfra.NewDedupChecker(rdb)

	// --- Services ---
	authService := service.NewAuthService(users, sessions, cfg.SessionSecret, cfg.SessionTTL)
	accountService := service.NewAccountService(users, log)
	orderService := service.NewOrderService(orders, log)
	deliveryService := service.NewDeliveryService(orders, dedup, log)
	dashboardService := service.NewDashboardService(orders, products)
	dispatcher := queue.NewDispatcher(0, deliveryService, log)

	verifier := selectVerifier(cfg, sessions, log)
	sessionAuth := middleware.SessionAuth(verifier, accountService)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Production())
	dashboardHandler := handler.NewDashboardHandler(accountService, dashboardService)
	orderHandler := handler.NewOrderHandler(orderService)
	deliveryHandler := handler.NewDeliveryHandler(dispatcher)
	inventoryHandler := handler.NewInventoryHandler(products, accountService)
	profileHandler := handler.NewProfileHandler(accountService)

	// --- Public entry ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Manvaasam: farm to table"})
	})

	// --- Auth routes ---
	e.POST("/api/v1/auth/register", authHandler.Register)
	e.POST("/api/v1/auth/login", authHandler.Login)
	e.POST("/api/v1/auth/logout", authHandler.Logout)

	// --- Dashboards (page routes, full pipeline) ---
	dash := e.Group("/dashboard", sessionAuth)
	dash.GET("", dashboardHandler.Dispatch)
	dash.GET("/farmer", dashboardHandler.RolePage, middleware.RBAC(domain.RoleFarmer))
	dash.GET("/customer", dashboardHandler.RolePage, middleware.RBAC(domain.RoleCustomer))
	dash.GET("/restaurant", dashboardHandler.RolePage, middleware.RBAC(domain.RoleRestaurant))
	dash.GET("/transport", dashboardHandler.RolePage, middleware.RBAC(domain.RoleTransport))
	dash.GET("/hub", dashboardHandler.HubPage, middleware.RBAC(domain.RoleHub))

	// --- Inventory search is public: buyers browse before signing in ---
	e.GET("/api/v1/hubs/:hub_id/inventory", inventoryHandler.List)

	// --- Authenticated API ---
	v1 := e.Group("/api/v1", sessionAuth)
	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile/language", profileHandler.UpdateLanguage, middleware.RequireWritable())

	v1.POST("/orders", orderHandler.Create,
		middleware.RBAC(domain.RoleCustomer, domain.RoleRestaurant), middleware.RequireWritable())
	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:order_number", orderHandler.Get)

	v1.POST("/delivery/events", deliveryHandler.Receive,
		middleware.RBAC(domain.RoleTransport), middleware.RequireWritable())
	v1.POST("/delivery/events/batch", deliveryHandler.ReceiveBatch,
		middleware.RBAC(domain.RoleTransport), middleware.RequireWritable())

	v1.PUT("/hubs/:hub_id/inventory", inventoryHandler.Upsert,
		middleware.RBAC(domain.RoleHub), middleware.RequireWritable())

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}

// selectVerifier picks the verifier strategy at startup. Demo mode is an
// explicit configuration choice, never a runtime fallback.
func selectVerifier(cfg *config.Config, sessions ports.SessionStore, log zerolog.Logger) ports.SessionVerifier {
	if cfg.AuthMode == "demo" {
		log.Warn().Msg("auth running in demo mode: read-only fixed identity")
		return service.NewDemoVerifier(cfg.DemoToken, "demo")
	}
	return service.NewLiveVerifier(sessions, cfg.SessionSecret, log)
}
