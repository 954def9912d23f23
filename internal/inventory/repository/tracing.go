package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormInventoryRepositoryWithTracing wraps GormInventoryRepository with tracing
type GormInventoryRepositoryWithTracing struct {
	*GormInventoryRepository
}

// NewGormInventoryRepositoryWithTracing creates a new repository with tracing
func NewGormInventoryRepositoryWithTracing(db *gorm.DB) *GormInventoryRepositoryWithTracing {
	return &GormInventoryRepositoryWithTracing{
		GormInventoryRepository: NewGormInventoryRepository(db),
	}
}

func (r *GormInventoryRepositoryWithTracing) Create(ctx context.Context, inventory *domain.Inventory) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("inventory.product_id", int(inventory.ProductID)),
			attribute.Int("inventory.quantity", inventory.Quantity),
		),
	)
	defer span.End()

	err := r.GormInventoryRepository.Create(ctx, inventory)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("inventory.id", int(inventory.ID)))
	return nil
}

func (r *GormInventoryRepositoryWithTracing) FindAll(ctx context.Context) ([]domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	inventories, err := r.GormInventoryRepository.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(inventories)))
	return inventories, nil
}

func (r *GormInventoryRepositoryWithTracing) FindByProductID(ctx context.Context, productID uint) (*domain.InventoryWithProduct, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByProductID",
		trace.WithAttributes(
			attribute.Int("inventory.product_id", int(productID)),
		),
	)
	defer span.End()

	result, err := r.GormInventoryRepository.FindByProductID(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("inventory.id", int(result.InventoryID)),
		attribute.Int("inventory.quantity", result.Quantity),
	)
	return result, nil
}

func (r *GormInventoryRepositoryWithTracing) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.AdjustQuantity",
		trace.WithAttributes(
			attribute.Int("inventory.id", int(id)),
			attribute.Int("quantity.delta", delta),
		),
	)
	defer span.End()

	inventory, err := r.GormInventoryRepository.AdjustQuantity(ctx, id, delta)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("quantity.new_value", inventory.Quantity))
	return inventory, nil
}
