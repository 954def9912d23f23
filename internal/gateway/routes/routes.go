package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/config"
	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/health"
	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/middleware"
	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/proxy"
)

// RouteDefinition maps a path prefix onto a backend service
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:      "/product",
		ServiceName: "api",
		Description: "Product catalog",
	},
	{
		Prefix:      "/inventory",
		ServiceName: "api",
		Description: "Inventory and stock adjustment",
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream replicas)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "API Gateway",
			"routes":  Routes,
		})
	})

	cacheMiddleware := middleware.CacheMiddleware(redisClient, middleware.DefaultCacheConfig())

	for _, route := range Routes {
		registerServiceRoute(app, route, reverseProxy, cbManager, cacheMiddleware)
	}
}

func registerServiceRoute(app *fiber.App, route RouteDefinition, reverseProxy *proxy.ReverseProxy, cbManager *middleware.CircuitBreakerManager, cacheMiddleware fiber.Handler) {
	handler := func(c *fiber.Ctx) error {
		cb := cbManager.Get(route.ServiceName)
		return cb.Call(func() error {
			return reverseProxy.ProxyRequest(c, route.ServiceName)
		})
	}

	app.All(route.Prefix, cacheMiddleware, handler)
	app.All(route.Prefix+"/*", cacheMiddleware, handler)
}
