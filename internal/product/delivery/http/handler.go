package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CCP-Proyecto/ccp-experimento/internal/product/domain"
	"github.com/CCP-Proyecto/ccp-experimento/internal/product/usecase/command"
	"github.com/CCP-Proyecto/ccp-experimento/internal/product/usecase/query"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/logger"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the product catalog",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of product catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestLatency)
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	getHandler    *query.GetProductHandler
	listHandler   *query.ListProductsHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	return &ProductHandler{
		createHandler: command.NewCreateProductHandler(repo),
		getHandler:    query.NewGetProductHandler(repo),
		listHandler:   query.NewListProductsHandler(repo),
	}
}

type errorMessage struct {
	Message string `json:"message"`
}

// ListProducts handles GET /product
// @Summary List products
// @Description Get every product in the catalog
// @Tags Product
// @Produce json
// @Success 200 {array} domain.Product
// @Router /product [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	products, err := h.listHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		h.respond(w, r, "/product", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to list products"})
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	h.respond(w, r, "/product", start, http.StatusOK, products)
}

// GetProduct handles GET /product/{id}
// @Summary Get product
// @Description Get a single product by id
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} object{message=string}
// @Router /product/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// A non-numeric id can never match a row, so it reads as not found
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respond(w, r, "/product/{id}", start, http.StatusNotFound,
			errorMessage{Message: "Product not found"})
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: uint(id)})
	if errors.Is(err, domain.ErrNotFound) {
		h.respond(w, r, "/product/{id}", start, http.StatusNotFound,
			errorMessage{Message: "Product not found"})
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint64("product_id", id).Msg("Failed to get product")
		h.respond(w, r, "/product/{id}", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to get product"})
		return
	}

	h.respond(w, r, "/product/{id}", start, http.StatusOK, product)
}

// CreateProduct handles POST /product
// @Summary Create product
// @Description Create a new catalog product
// @Tags Product
// @Accept json
// @Produce json
// @Param request body object{name=string,price=number} true "Product data"
// @Success 201 {object} domain.Product
// @Failure 400 {object} object{message=string}
// @Router /product [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req struct {
		Name  *string  `json:"name"`
		Price *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == nil || req.Price == nil || *req.Name == "" {
		h.respond(w, r, "/product", start, http.StatusBadRequest,
			errorMessage{Message: "Invalid product data"})
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:  *req.Name,
		Price: *req.Price,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		h.respond(w, r, "/product", start, http.StatusInternalServerError,
			errorMessage{Message: "Failed to create product"})
		return
	}

	logger.Info(r.Context()).
		Uint("product_id", product.ID).
		Str("name", product.Name).
		Msg("Product created")

	h.respond(w, r, "/product", start, http.StatusCreated, product)
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/product", h.ListProducts).Methods("GET")
	router.HandleFunc("/product", h.CreateProduct).Methods("POST")
	router.HandleFunc("/product/{id}", h.GetProduct).Methods("GET")
}

func (h *ProductHandler) respond(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time, status int, payload interface{}) {
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
