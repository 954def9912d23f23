package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
	"github.com/CCP-Proyecto/ccp-experimento/kafka"
)

// mockInventoryRepository applies adjustments under a mutex so the
// concurrency test exercises the same all-or-nothing semantics as the
// single-statement database update.
type mockInventoryRepository struct {
	mu          sync.Mutex
	inventories map[uint]*domain.Inventory
	adjustCalls int
}

func newMockInventoryRepository(seed ...domain.Inventory) *mockInventoryRepository {
	repo := &mockInventoryRepository{inventories: make(map[uint]*domain.Inventory)}
	for i := range seed {
		inv := seed[i]
		repo.inventories[inv.ID] = &inv
	}
	return repo
}

func (m *mockInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inventory.ID = uint(len(m.inventories) + 1)
	copied := *inventory
	m.inventories[inventory.ID] = &copied
	return nil
}

func (m *mockInventoryRepository) FindAll(ctx context.Context) ([]domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Inventory, 0, len(m.inventories))
	for _, inv := range m.inventories {
		out = append(out, *inv)
	}
	return out, nil
}

func (m *mockInventoryRepository) FindByProductID(ctx context.Context, productID uint) (*domain.InventoryWithProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.inventories {
		if inv.ProductID == productID {
			return &domain.InventoryWithProduct{
				InventoryID: inv.ID,
				ProductID:   inv.ProductID,
				Quantity:    inv.Quantity,
			}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockInventoryRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustCalls++
	inv, ok := m.inventories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv.Quantity += delta
	copied := *inv
	return &copied, nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []kafka.InventoryAdjustedEvent
	err    error
}

func (p *mockPublisher) PublishInventoryAdjusted(ctx context.Context, event kafka.InventoryAdjustedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func TestAdjustQuantityAdd(t *testing.T) {
	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: 100})
	handler := NewAdjustQuantityHandler(repo, nil)

	inv, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 1,
		Operation:   domain.OperationAdd,
		Magnitude:   25,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if inv.Quantity != 125 {
		t.Errorf("Quantity = %d, want 125", inv.Quantity)
	}
}

func TestAdjustQuantitySell(t *testing.T) {
	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: 100})
	handler := NewAdjustQuantityHandler(repo, nil)

	inv, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 1,
		Operation:   domain.OperationSell,
		Magnitude:   30,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if inv.Quantity != 70 {
		t.Errorf("Quantity = %d, want 70", inv.Quantity)
	}
}

func TestAdjustQuantityOversellGoesNegative(t *testing.T) {
	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: 5})
	handler := NewAdjustQuantityHandler(repo, nil)

	inv, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 1,
		Operation:   domain.OperationSell,
		Magnitude:   20,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if inv.Quantity != -15 {
		t.Errorf("Quantity = %d, want -15", inv.Quantity)
	}
}

func TestAdjustQuantityInvalidOperation(t *testing.T) {
	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: 100})
	handler := NewAdjustQuantityHandler(repo, nil)

	_, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 1,
		Operation:   domain.Operation("transfer"),
		Magnitude:   5,
	})
	if !errors.Is(err, domain.ErrInvalidOperation) {
		t.Fatalf("Handle() error = %v, want ErrInvalidOperation", err)
	}
	if repo.adjustCalls != 0 {
		t.Errorf("store was touched %d times for an invalid operation", repo.adjustCalls)
	}
}

func TestAdjustQuantityNotFound(t *testing.T) {
	repo := newMockInventoryRepository()
	handler := NewAdjustQuantityHandler(repo, nil)

	_, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 99,
		Operation:   domain.OperationAdd,
		Magnitude:   5,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Handle() error = %v, want ErrNotFound", err)
	}
}

func TestAdjustQuantityPublishesEvent(t *testing.T) {
	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: 100})
	publisher := &mockPublisher{}
	handler := NewAdjustQuantityHandler(repo, publisher)

	_, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 1,
		Operation:   domain.OperationSell,
		Magnitude:   10,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	event := publisher.events[0]
	if event.InventoryID != 1 || event.ProductID != 10 {
		t.Errorf("event identifiers = (%d, %d), want (1, 10)", event.InventoryID, event.ProductID)
	}
	if event.Operation != "sell" || event.Magnitude != 10 || event.Delta != -10 {
		t.Errorf("event adjustment = (%s, %d, %d), want (sell, 10, -10)", event.Operation, event.Magnitude, event.Delta)
	}
	if event.NewQuantity != 90 {
		t.Errorf("event NewQuantity = %d, want 90", event.NewQuantity)
	}
	if event.Timestamp.IsZero() {
		t.Error("event Timestamp is the zero time")
	}
}

func TestAdjustQuantityPublishFailureDoesNotFailAdjustment(t *testing.T) {
	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: 100})
	publisher := &mockPublisher{err: errors.New("broker down")}
	handler := NewAdjustQuantityHandler(repo, publisher)

	inv, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		InventoryID: 1,
		Operation:   domain.OperationAdd,
		Magnitude:   1,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v, adjustment must not fail on publish error", err)
	}
	if inv.Quantity != 101 {
		t.Errorf("Quantity = %d, want 101", inv.Quantity)
	}
}

func TestAdjustQuantityConcurrent(t *testing.T) {
	const (
		initial    = 1000
		goroutines = 50
		perWorker  = 20
	)

	repo := newMockInventoryRepository(domain.Inventory{ID: 1, ProductID: 10, Quantity: initial})
	handler := NewAdjustQuantityHandler(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		op := domain.OperationAdd
		if i%2 == 1 {
			op = domain.OperationSell
		}
		go func(op domain.Operation) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := handler.Handle(context.Background(), AdjustQuantityCommand{
					InventoryID: 1,
					Operation:   op,
					Magnitude:   1,
				}); err != nil {
					t.Errorf("Handle() error = %v", err)
					return
				}
			}
		}(op)
	}
	wg.Wait()

	// Equal add and sell workers, so all deltas cancel out
	inv, err := repo.AdjustQuantity(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("final read error = %v", err)
	}
	if inv.Quantity != initial {
		t.Errorf("final quantity = %d, want %d (no adjustment may be lost)", inv.Quantity, initial)
	}
}
