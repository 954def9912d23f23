package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/config"
	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/middleware"
	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/routes"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/logger"
)

func main() {
	logger.Init("api-gateway", os.Getenv("APP_ENV") != "production")

	cfg := config.LoadConfig()

	redisClient := initRedis()

	app := fiber.New(fiber.Config{
		AppName:      "API Gateway",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			logger.Logger.Error().
				Err(err).
				Str("path", c.Path()).
				Int("status", code).
				Msg("Request failed")
			return c.Status(code).JSON(fiber.Map{
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	rateLimiter := middleware.NewRateLimiter(redisClient, 100, time.Minute)
	app.Use(rateLimiter.Middleware())

	cbManager := middleware.NewCircuitBreakerManager()

	routes.SetupRoutes(app, cfg, cbManager, redisClient)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.Port).
			Msg("API Gateway listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Gateway failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down gateway")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Logger.Error().Err(err).Msg("Gateway shutdown error")
	}
	if redisClient != nil {
		redisClient.Close()
	}
}

// initRedis connects to Redis. The gateway degrades gracefully without it:
// caching and rate limiting turn into passthroughs.
func initRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("addr", addr).
			Msg("Redis unavailable, caching and rate limiting disabled")
		return nil
	}

	logger.Logger.Info().Str("addr", addr).Msg("Connected to Redis")
	return client
}
