package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/usecase/command"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/usecase/query"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/logger"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_requests_total",
			Help: "Total number of requests to the inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	adjustmentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_adjustments_total",
			Help: "Total number of applied stock adjustments by operation",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestLatency, adjustmentCounter)
}

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	createHandler *command.CreateInventoryHandler
	adjustHandler *command.AdjustQuantityHandler
	getHandler    *query.GetInventoryHandler
	listHandler   *query.ListInventoryHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(repo domain.InventoryRepository, publisher command.AdjustmentPublisher) *InventoryHandler {
	return &InventoryHandler{
		createHandler: command.NewCreateInventoryHandler(repo),
		adjustHandler: command.NewAdjustQuantityHandler(repo, publisher),
		getHandler:    query.NewGetInventoryHandler(repo),
		listHandler:   query.NewListInventoryHandler(repo),
	}
}

type errorMessage struct {
	Message string `json:"message"`
}

// ListInventory handles GET /inventory
// @Summary List inventory
// @Description Get every inventory row
// @Tags Inventory
// @Produce json
// @Success 200 {array} domain.Inventory
// @Router /inventory [get]
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	inventories, err := h.listHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventories")
		h.respond(w, r, "/inventory", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to list inventories"})
		return
	}

	if inventories == nil {
		inventories = []domain.Inventory{}
	}
	h.respond(w, r, "/inventory", start, http.StatusOK, inventories)
}

// GetInventory handles GET /inventory/{id}.
// The path parameter is matched against the product id, not the inventory id,
// and the product columns are left-joined into the response.
// @Summary Get inventory by product id
// @Description Get an inventory row (joined with its product) by product id
// @Tags Inventory
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.InventoryWithProduct
// @Failure 404 {object} object{message=string}
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	productID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respond(w, r, "/inventory/{id}", start, http.StatusNotFound,
			errorMessage{Message: "Inventory not found"})
		return
	}

	result, err := h.getHandler.Handle(r.Context(), query.GetInventoryQuery{ProductID: uint(productID)})
	if errors.Is(err, domain.ErrNotFound) {
		h.respond(w, r, "/inventory/{id}", start, http.StatusNotFound,
			errorMessage{Message: "Inventory not found"})
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint64("product_id", productID).Msg("Failed to get inventory")
		h.respond(w, r, "/inventory/{id}", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to get inventory"})
		return
	}

	h.respond(w, r, "/inventory/{id}", start, http.StatusOK, result)
}

// CreateInventory handles POST /inventory
// @Summary Create inventory
// @Description Create a stock row for an existing product
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body object{productId=int,quantity=int} true "Inventory data"
// @Success 201 {object} domain.Inventory
// @Failure 400 {object} object{message=string}
// @Router /inventory [post]
func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req struct {
		ProductID *uint `json:"productId"`
		Quantity  *int  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.ProductID == nil || req.Quantity == nil {
		h.respond(w, r, "/inventory", start, http.StatusBadRequest,
			errorMessage{Message: "Invalid inventory data"})
		return
	}

	inventory, err := h.createHandler.Handle(r.Context(), command.CreateInventoryCommand{
		ProductID: *req.ProductID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		// Includes referential integrity rejections from the store
		logger.Error(r.Context()).Err(err).Msg("Failed to create inventory")
		h.respond(w, r, "/inventory", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to create inventory"})
		return
	}

	logger.Info(r.Context()).
		Uint("inventory_id", inventory.ID).
		Uint("product_id", inventory.ProductID).
		Int("quantity", inventory.Quantity).
		Msg("Inventory created")

	h.respond(w, r, "/inventory", start, http.StatusCreated, inventory)
}

// AdjustQuantity handles PUT /inventory/{id}. Validation runs strictly before
// any store access; the update itself is a single atomic statement.
// @Summary Adjust inventory quantity
// @Description Apply an add or sell adjustment to an inventory row
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Inventory ID"
// @Param request body object{quantity=int,operation=string} true "Adjustment"
// @Success 200 {object} domain.Inventory
// @Failure 400 {object} object{message=string}
// @Failure 404 {object} object{message=string}
// @Router /inventory/{id} [put]
func (h *InventoryHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req struct {
		Quantity  *int    `json:"quantity"`
		Operation *string `json:"operation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Quantity == nil || req.Operation == nil ||
		!domain.Operation(*req.Operation).Valid() {
		h.respond(w, r, "/inventory/{id}", start, http.StatusBadRequest,
			errorMessage{Message: "Invalid inventory data"})
		return
	}

	// A non-numeric id can never match a row, so it reads as not found
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respond(w, r, "/inventory/{id}", start, http.StatusNotFound,
			errorMessage{Message: "Inventory not found"})
		return
	}

	inventory, err := h.adjustHandler.Handle(r.Context(), command.AdjustQuantityCommand{
		InventoryID: uint(id),
		Operation:   domain.Operation(*req.Operation),
		Magnitude:   *req.Quantity,
	})
	if errors.Is(err, domain.ErrInvalidOperation) {
		h.respond(w, r, "/inventory/{id}", start, http.StatusBadRequest,
			errorMessage{Message: "Invalid operation"})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		h.respond(w, r, "/inventory/{id}", start, http.StatusNotFound,
			errorMessage{Message: "Inventory not found"})
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint64("inventory_id", id).Msg("Failed to adjust inventory")
		h.respond(w, r, "/inventory/{id}", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to adjust inventory"})
		return
	}

	adjustmentCounter.WithLabelValues(*req.Operation).Inc()
	logger.Info(r.Context()).
		Uint("inventory_id", inventory.ID).
		Str("operation", *req.Operation).
		Int("magnitude", *req.Quantity).
		Int("new_quantity", inventory.Quantity).
		Msg("Inventory adjusted")

	h.respond(w, r, "/inventory/{id}", start, http.StatusOK, inventory)
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/inventory", h.ListInventory).Methods("GET")
	router.HandleFunc("/inventory", h.CreateInventory).Methods("POST")
	router.HandleFunc("/inventory/{id}", h.GetInventory).Methods("GET")
	router.HandleFunc("/inventory/{id}", h.AdjustQuantity).Methods("PUT")
}

// RegisterHealthCheck registers the health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, errorMessage{Message: "Database unavailable"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")
}

func (h *InventoryHandler) respond(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time, status int, payload interface{}) {
	requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
	requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	respondJSON(w, status, payload)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
