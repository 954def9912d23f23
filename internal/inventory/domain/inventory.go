package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no inventory row matches the given identifier
	ErrNotFound = errors.New("inventory not found")

	// ErrInvalidOperation is returned for operations outside the add/sell set
	ErrInvalidOperation = errors.New("invalid operation")
)

// Operation is an adjustment operation tag
type Operation string

const (
	OperationAdd  Operation = "add"
	OperationSell Operation = "sell"
)

// Valid reports whether the operation is one of the enumerated values
func (op Operation) Valid() bool {
	return op == OperationAdd || op == OperationSell
}

// ResolveDelta maps an operation and a magnitude to a signed delta.
// The magnitude's sign is not re-validated here; callers own input validation.
func ResolveDelta(op Operation, magnitude int) (int, error) {
	switch op {
	case OperationAdd:
		return magnitude, nil
	case OperationSell:
		return -magnitude, nil
	default:
		return 0, ErrInvalidOperation
	}
}

// Inventory represents a stock count for a product
type Inventory struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProductID uint `json:"productId" gorm:"column:product_id;not null;index"`
	Quantity  int  `json:"quantity" gorm:"not null;default:0"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventories"
}

// ProductSummary carries the product columns of a joined inventory read
type ProductSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// InventoryWithProduct is the projection returned by the joined read.
// Product is nil when the referenced product row no longer exists.
type InventoryWithProduct struct {
	InventoryID uint            `json:"inventoryId"`
	ProductID   uint            `json:"productId"`
	Quantity    int             `json:"quantity"`
	Product     *ProductSummary `json:"product"`
}

// InventoryRepository defines the contract for inventory data access.
// AdjustQuantity is the only mutation allowed on Quantity after creation and
// must execute as a single atomic statement against the store.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *Inventory) error
	FindAll(ctx context.Context) ([]Inventory, error)
	FindByProductID(ctx context.Context, productID uint) (*InventoryWithProduct, error)
	AdjustQuantity(ctx context.Context, id uint, delta int) (*Inventory, error)
}
