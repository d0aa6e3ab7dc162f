// Package cart holds the client-side shopping cart: line items keyed by
// product ID plus derived aggregates. State is loaded from durable storage
// once at construction and written back after every mutation, so a cart
// survives a restart.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"otica-store/internal/domain"
	"otica-store/internal/storage"
)

// DefaultNamespace is the storage key the cart persists under.
const DefaultNamespace = "otica-cart-storage"

// State is the persisted shape of a cart: the lines and the three
// aggregates, nothing volatile.
type State struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}

// Store owns one cart. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	storage   storage.Store
	namespace string
	logger    *zap.Logger
	state     State
}

// New loads the cart persisted under namespace, or starts empty when nothing
// is stored yet.
func New(ctx context.Context, st storage.Store, namespace string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		storage:   st,
		namespace: namespace,
		logger:    logger,
	}

	err := st.Load(ctx, namespace, &s.state)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}
	if s.state.Items == nil {
		s.state.Items = []domain.CartItem{}
	}
	return s, nil
}

// ItemFromProduct snapshots a catalog product into a cart line with
// quantity one. The line keeps no reference to the live product, so later
// price changes do not affect it.
func ItemFromProduct(p *domain.Product) domain.CartItem {
	item := domain.CartItem{
		ID:       p.ID,
		Model:    p.Model,
		Brand:    p.Brand,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	}
	if p.PromotionalPrice != nil {
		promo := *p.PromotionalPrice
		item.PromotionalPrice = &promo
	}
	return item
}

// AddItem merges into an existing line (incrementing its quantity by one)
// or appends a new line with quantity one.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.state.Items {
		if s.state.Items[i].ID == item.ID {
			s.state.Items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = 1
		s.state.Items = append(s.state.Items, item)
	}

	s.recalculate()
	return s.persist(ctx)
}

// RemoveItem deletes the matching line entirely. A missing ID is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Items[:0]
	for _, item := range s.state.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.state.Items = kept

	s.recalculate()
	return s.persist(ctx)
}

// UpdateQuantity sets a line's quantity to exactly quantity. Zero or
// negative removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			s.state.Items[i].Quantity = quantity
			break
		}
	}

	s.recalculate()
	return s.persist(ctx)
}

// Clear empties the cart and zeroes the aggregates directly.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{
		Items:      []domain.CartItem{},
		TotalItems: 0,
		Subtotal:   decimal.Zero,
		TotalPrice: decimal.Zero,
	}
	return s.persist(ctx)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.state.Items))
	copy(out, s.state.Items)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems
}

// Subtotal is the sum over lines of effective price times quantity.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Subtotal
}

// TotalPrice aliases Subtotal.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalPrice
}

// Snapshot returns the full persisted state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Items = make([]domain.CartItem, len(s.state.Items))
	copy(out.Items, s.state.Items)
	return out
}

// ComputeTotals re-derives the aggregates from a line list. Pure,
// order-independent, and the single source of truth for what the stored
// aggregates must equal.
func ComputeTotals(items []domain.CartItem) (totalItems int, subtotal decimal.Decimal) {
	subtotal = decimal.Zero
	for i := range items {
		totalItems += items[i].Quantity
		subtotal = subtotal.Add(items[i].LineTotal())
	}
	return totalItems, subtotal
}

// recalculate refreshes the aggregates from the lines. Callers hold s.mu.
func (s *Store) recalculate() {
	totalItems, subtotal := ComputeTotals(s.state.Items)
	s.state.TotalItems = totalItems
	s.state.Subtotal = subtotal
	s.state.TotalPrice = subtotal
}

// persist writes the state through the storage boundary. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.namespace, &s.state); err != nil {
		s.logger.Error("failed to persist cart", zap.Error(err), zap.String("namespace", s.namespace))
		return err
	}
	return nil
}
