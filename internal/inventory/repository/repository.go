package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Inventory{})
}

func (r *GormInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	return r.db.WithContext(ctx).Create(inventory).Error
}

func (r *GormInventoryRepository) FindAll(ctx context.Context) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	err := r.db.WithContext(ctx).Find(&inventories).Error
	return inventories, err
}

// joinedRow is the scan target for the LEFT JOIN projection
type joinedRow struct {
	InventoryID  uint
	ProductID    uint
	Quantity     int
	ProductRowID *uint
	ProductName  *string
	ProductPrice *string
}

// FindByProductID resolves an inventory row by its product id and joins the
// product columns. The product side is nullable: a missing product row still
// yields the inventory fields.
func (r *GormInventoryRepository) FindByProductID(ctx context.Context, productID uint) (*domain.InventoryWithProduct, error) {
	var row joinedRow
	err := r.db.WithContext(ctx).
		Table("inventories").
		Select("inventories.id AS inventory_id, inventories.product_id, inventories.quantity, " +
			"products.id AS product_row_id, products.name AS product_name, products.price AS product_price").
		Joins("LEFT JOIN products ON products.id = inventories.product_id").
		Where("inventories.product_id = ?", productID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	result := &domain.InventoryWithProduct{
		InventoryID: row.InventoryID,
		ProductID:   row.ProductID,
		Quantity:    row.Quantity,
	}
	if row.ProductRowID != nil {
		result.Product = &domain.ProductSummary{
			ID:    *row.ProductRowID,
			Name:  derefString(row.ProductName),
			Price: derefString(row.ProductPrice),
		}
	}
	return result, nil
}

// AdjustQuantity applies a signed delta to the quantity of one inventory row
// as a single UPDATE ... SET quantity = quantity + ? ... RETURNING statement.
// The read and the write never leave the database, so concurrent adjustments
// against the same row serialize on row-level locking and no update is lost.
func (r *GormInventoryRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Inventory, error) {
	var inventory domain.Inventory
	result := r.db.WithContext(ctx).
		Model(&inventory).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return &inventory, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
