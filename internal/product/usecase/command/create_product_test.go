package command

import (
	"context"
	"errors"
	"testing"

	"github.com/CCP-Proyecto/ccp-experimento/internal/product/domain"
)

type mockProductRepository struct {
	created   []domain.Product
	createErr error
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	product.ID = uint(len(m.created) + 1)
	m.created = append(m.created, *product)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func TestCreateProduct(t *testing.T) {
	repo := &mockProductRepository{}
	handler := NewCreateProductHandler(repo)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "Widget",
		Price: 19.99,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if product.Name != "Widget" {
		t.Errorf("name = %q, want Widget", product.Name)
	}
	if product.Price != "19.99" {
		t.Errorf("price = %q, want 19.99", product.Price)
	}
}

func TestCreateProductPriceFormatting(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{19.99, "19.99"},
		{100, "100"},
		{0, "0"},
		{0.1, "0.1"},
		{1234.5, "1234.5"},
	}

	for _, tt := range tests {
		repo := &mockProductRepository{}
		handler := NewCreateProductHandler(repo)

		product, err := handler.Handle(context.Background(), CreateProductCommand{
			Name:  "Widget",
			Price: tt.price,
		})
		if err != nil {
			t.Fatalf("Handle(%v) error = %v", tt.price, err)
		}
		if product.Price != tt.want {
			t.Errorf("price %v formatted as %q, want %q", tt.price, product.Price, tt.want)
		}
	}
}

func TestCreateProductEmptyName(t *testing.T) {
	repo := &mockProductRepository{}
	handler := NewCreateProductHandler(repo)

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "",
		Price: 10,
	})
	if err == nil {
		t.Fatal("Handle() succeeded with an empty name")
	}
	if len(repo.created) != 0 {
		t.Errorf("store was touched for an invalid product")
	}
}

func TestCreateProductStoreError(t *testing.T) {
	repo := &mockProductRepository{createErr: errors.New("connection refused")}
	handler := NewCreateProductHandler(repo)

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "Widget",
		Price: 10,
	})
	if err == nil {
		t.Fatal("Handle() swallowed the store error")
	}
}
