package command

import (
	"context"
	"time"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
	"github.com/CCP-Proyecto/ccp-experimento/kafka"
	"github.com/CCP-Proyecto/ccp-experimento/pkg/logger"
)

// AdjustmentPublisher publishes inventory adjusted events
type AdjustmentPublisher interface {
	PublishInventoryAdjusted(ctx context.Context, event kafka.InventoryAdjustedEvent) error
}

// AdjustQuantityCommand represents the command to adjust inventory quantity.
// Magnitude is the raw request value; the operation decides its sign.
type AdjustQuantityCommand struct {
	InventoryID uint
	Operation   domain.Operation
	Magnitude   int
}

// AdjustQuantityHandler handles adjust quantity commands
type AdjustQuantityHandler struct {
	repo      domain.InventoryRepository
	publisher AdjustmentPublisher
}

// NewAdjustQuantityHandler creates a new adjust quantity handler
func NewAdjustQuantityHandler(repo domain.InventoryRepository, publisher AdjustmentPublisher) *AdjustQuantityHandler {
	return &AdjustQuantityHandler{repo: repo, publisher: publisher}
}

// Handle resolves the signed delta and applies it through the repository's
// atomic adjustment. There is no floor on the result: overselling drives the
// quantity negative. Event publishing is best effort and never fails the
// adjustment once the store has committed.
func (h *AdjustQuantityHandler) Handle(ctx context.Context, cmd AdjustQuantityCommand) (*domain.Inventory, error) {
	delta, err := domain.ResolveDelta(cmd.Operation, cmd.Magnitude)
	if err != nil {
		return nil, err
	}

	inventory, err := h.repo.AdjustQuantity(ctx, cmd.InventoryID, delta)
	if err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.InventoryAdjustedEvent{
			InventoryID: inventory.ID,
			ProductID:   inventory.ProductID,
			Operation:   string(cmd.Operation),
			Magnitude:   cmd.Magnitude,
			Delta:       delta,
			NewQuantity: inventory.Quantity,
			Timestamp:   time.Now(),
		}
		if err := h.publisher.PublishInventoryAdjusted(ctx, event); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("inventory_id", inventory.ID).
				Msg("Failed to publish inventory adjusted event")
		}
	}

	return inventory, nil
}
