package query

import (
	"context"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
)

// GetInventoryQuery represents the query for the joined inventory read.
// The lookup key is the product id, matching the public API's behavior.
type GetInventoryQuery struct {
	ProductID uint
}

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the joined inventory read
func (h *GetInventoryHandler) Handle(ctx context.Context, query GetInventoryQuery) (*domain.InventoryWithProduct, error) {
	return h.repo.FindByProductID(ctx, query.ProductID)
}
