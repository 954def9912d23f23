package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no product matches the given identifier
var ErrNotFound = errors.New("product not found")

// Product represents a sellable catalog item.
// Price is kept as an exact-precision numeric string; formatting happens
// once on create so no float ever round-trips through the database.
type Product struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Price string `json:"price" gorm:"type:numeric;not null"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
}
