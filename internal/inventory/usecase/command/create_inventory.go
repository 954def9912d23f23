package command

import (
	"context"
	"fmt"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
)

// CreateInventoryCommand represents the command to create an inventory row
type CreateInventoryCommand struct {
	ProductID uint
	Quantity  int
}

// CreateInventoryHandler handles create inventory command
type CreateInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewCreateInventoryHandler creates a new create inventory handler
func NewCreateInventoryHandler(repo domain.InventoryRepository) *CreateInventoryHandler {
	return &CreateInventoryHandler{repo: repo}
}

// Handle executes the create inventory command. Referential integrity of
// ProductID is the store's job; a violation surfaces as the store's error.
func (h *CreateInventoryHandler) Handle(ctx context.Context, cmd CreateInventoryCommand) (*domain.Inventory, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("productId is required")
	}

	inventory := &domain.Inventory{
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
	}

	if err := h.repo.Create(ctx, inventory); err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	return inventory, nil
}
