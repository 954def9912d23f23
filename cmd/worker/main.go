package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CCP-Proyecto/ccp-experimento/kafka"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/logger"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/tracing"
)

var (
	adjustmentsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_adjustments_processed_total",
			Help: "Total number of inventory adjustment events consumed",
		},
		[]string{"operation"},
	)
	inventoryQuantity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_quantity",
			Help: "Last observed quantity per inventory record",
		},
		[]string{"inventory_id"},
	)
)

func init() {
	prometheus.MustRegister(adjustmentsConsumed)
	prometheus.MustRegister(inventoryQuantity)
}

func main() {
	logger.Init("inventory-audit-worker", os.Getenv("APP_ENV") != "production")

	tp, err := tracing.InitTracer("inventory-audit-worker")
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required")
	}

	consumer, err := kafka.NewConsumer(
		strings.Split(brokers, ","),
		"inventory-audit",
		[]string{kafka.TopicInventoryAdjusted},
		handleAdjustment,
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create consumer")
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "9090"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:    ":" + metricsPort,
		Handler: mux,
	}

	go func() {
		logger.Logger.Info().Str("port", metricsPort).Msg("Metrics endpoint listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down audit worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Metrics server shutdown error")
	}
}

func handleAdjustment(ctx context.Context, event kafka.InventoryAdjustedEvent) error {
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Uint("inventory_id", event.InventoryID).
		Uint("product_id", event.ProductID).
		Str("operation", event.Operation).
		Int("magnitude", event.Magnitude).
		Int("new_quantity", event.NewQuantity).
		Msg("Inventory adjusted")

	adjustmentsConsumed.WithLabelValues(event.Operation).Inc()
	inventoryQuantity.WithLabelValues(uintLabel(event.InventoryID)).Set(float64(event.NewQuantity))

	if event.NewQuantity < 0 {
		logger.Warn(ctx).
			Uint("inventory_id", event.InventoryID).
			Int("quantity", event.NewQuantity).
			Msg("Inventory oversold")
	}

	return nil
}

func uintLabel(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
