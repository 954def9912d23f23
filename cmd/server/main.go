package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/CCP-Proyecto/ccp-experimento/docs"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory"
	inventoryHTTP "github.com/CCP-Proyecto/ccp-experimento/internal/inventory/delivery/http"
	inventoryDomain "github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/usecase/command"
	"github.com/CCP-Proyecto/ccp-experimento/internal/product"
	productHTTP "github.com/CCP-Proyecto/ccp-experimento/internal/product/delivery/http"
	productDomain "github.com/CCP-Proyecto/ccp-experimento/internal/product/domain"
	"github.com/CCP-Proyecto/ccp-experimento/kafka"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/database"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/logger"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/middleware"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "catalog-inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting catalog & inventory service")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inventorydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Dedicated raw connection for health pings, outside the gorm pool
	sqlDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&productDomain.Product{}, &inventoryDomain.Inventory{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Referential integrity lives in the store: product_id must reference an
	// existing product row. AutoMigrate does not know about the cross-module
	// association, so the constraint is added idempotently here.
	if err := db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_inventories_product') THEN
			ALTER TABLE inventories
				ADD CONSTRAINT fk_inventories_product
				FOREIGN KEY (product_id) REFERENCES products (id);
		END IF;
	END $$;`).Error; err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to add foreign key constraint")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka is optional; without brokers the service runs without eventing
	var publisher command.AdjustmentPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to connect to Kafka - eventing disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	productHandler, err := product.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}

	inventoryHandler, err := inventory.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	startHTTPServer(productHandler, inventoryHandler, sqlDB, httpPort)
}

func startHTTPServer(productHandler *productHTTP.ProductHandler, inventoryHandler *inventoryHTTP.InventoryHandler, db *sql.DB, port string) {
	router := mux.NewRouter()

	middleware.Register(router, middleware.DefaultConfig("catalog-inventory-http"))

	productHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router)
	inventoryHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
