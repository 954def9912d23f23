package kafka

import "time"

// InventoryAdjustedEvent is emitted after a stock adjustment committed
type InventoryAdjustedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	InventoryID uint      `json:"inventory_id"`
	ProductID   uint      `json:"product_id"`
	Operation   string    `json:"operation"`
	Magnitude   int       `json:"magnitude"`
	Delta       int       `json:"delta"`
	NewQuantity int       `json:"new_quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeInventoryAdjusted = "inventory.adjusted"
)

// Kafka topics
const (
	TopicInventoryAdjusted = "inventory-adjusted"
)
