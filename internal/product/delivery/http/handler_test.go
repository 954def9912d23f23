package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/CCP-Proyecto/ccp-experimento/internal/product/domain"
)

type stubProductRepository struct {
	products  map[uint]*domain.Product
	createErr error
}

func newStubProductRepository() *stubProductRepository {
	return &stubProductRepository{products: make(map[uint]*domain.Product)}
}

func (s *stubProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if s.createErr != nil {
		return s.createErr
	}
	product.ID = uint(len(s.products) + 1)
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *stubProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *stubProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func newProductRouter(repo domain.ProductRepository) *mux.Router {
	router := mux.NewRouter()
	NewProductHandler(repo).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body.Message
}

func TestListProductsEmpty(t *testing.T) {
	router := newProductRouter(newStubProductRepository())

	rec := doRequest(t, router, http.MethodGet, "/product", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty array", got)
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newStubProductRepository()
	router := newProductRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/product", `{"name":"Widget","price":19.99}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var product domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if product.Name != "Widget" {
		t.Errorf("name = %q, want Widget", product.Name)
	}
	if product.Price != "19.99" {
		t.Errorf("price = %q, want the exact string 19.99", product.Price)
	}
	if product.ID == 0 {
		t.Error("created product has no id")
	}
}

func TestCreateProductInvalidBody(t *testing.T) {
	router := newProductRouter(newStubProductRepository())

	for _, body := range []string{
		`{}`,
		`{"name":"Widget"}`,
		`{"price":19.99}`,
		`{"name":"","price":19.99}`,
		`{"name":"Widget","price":"expensive"}`,
		`not json`,
	} {
		rec := doRequest(t, router, http.MethodPost, "/product", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
			continue
		}
		if msg := decodeMessage(t, rec); msg != "Invalid product data" {
			t.Errorf("body %q: message = %q", body, msg)
		}
	}
}

func TestGetProduct(t *testing.T) {
	repo := newStubProductRepository()
	repo.products[3] = &domain.Product{ID: 3, Name: "Widget", Price: "19.99"}
	router := newProductRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/product/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var product domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if product.ID != 3 || product.Name != "Widget" || product.Price != "19.99" {
		t.Errorf("product = %+v", product)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := newProductRouter(newStubProductRepository())

	for _, path := range []string{"/product/99", "/product/abc"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
			continue
		}
		if msg := decodeMessage(t, rec); msg != "Product not found" {
			t.Errorf("%s: message = %q", path, msg)
		}
	}
}
