package query

import (
	"context"
	"fmt"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
)

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle returns every inventory row in storage-native order
func (h *ListInventoryHandler) Handle(ctx context.Context) ([]domain.Inventory, error) {
	inventories, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}
	return inventories, nil
}
