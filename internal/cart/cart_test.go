package cart

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"otica-store/internal/domain"
	"otica-store/internal/storage"
)

// In-memory storage for testing
type mockStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Load(ctx context.Context, namespace string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[namespace]
	if !ok {
		return storage.ErrNotFound
	}
	return json.Unmarshal(raw, v)
}

func (m *mockStore) Save(ctx context.Context, namespace string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace] = raw
	return nil
}

func (m *mockStore) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}

func testItem(id string, priceStr string, promoStr string) domain.CartItem {
	item := domain.CartItem{
		ID:       id,
		Model:    "Model " + id,
		Brand:    "Brand",
		Price:    decimal.RequireFromString(priceStr),
		Image:    "/produtos/" + id + ".png",
		Quantity: 1,
	}
	if promoStr != "" {
		promo := decimal.RequireFromString(promoStr)
		item.PromotionalPrice = &promo
	}
	return item
}

func newTestCart(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), newMockStore(), DefaultNamespace, zap.NewNop())
	if err != nil {
		t.Fatalf("New cart: %v", err)
	}
	return s
}

func TestAddItemMergesExistingLine(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	item := testItem("1", "450.00", "379.90")
	if err := c.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", items[0].Quantity)
	}
	if c.TotalItems() != 2 {
		t.Errorf("expected totalItems 2, got %d", c.TotalItems())
	}

	// Promotional price, not base price, drives the subtotal.
	want := decimal.RequireFromString("759.80")
	if !c.Subtotal().Equal(want) {
		t.Errorf("expected subtotal %s, got %s", want, c.Subtotal())
	}
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	if err := c.AddItem(ctx, testItem("1", "100.00", "")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(ctx, testItem("1", "100.00", "")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := c.UpdateQuantity(ctx, "1", 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Errorf("expected quantity 5 after absolute set, got %d", got)
	}
}

func TestUpdateQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	ctx := context.Background()

	for _, quantity := range []int{0, -1, -10} {
		c := newTestCart(t)
		if err := c.AddItem(ctx, testItem("1", "100.00", "")); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		if err := c.UpdateQuantity(ctx, "1", quantity); err != nil {
			t.Fatalf("UpdateQuantity(%d): %v", quantity, err)
		}
		if len(c.Items()) != 0 {
			t.Errorf("quantity %d should remove the line", quantity)
		}
		if !c.Subtotal().IsZero() {
			t.Errorf("quantity %d should zero the subtotal, got %s", quantity, c.Subtotal())
		}
	}
}

func TestRemoveMissingItemIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	if err := c.AddItem(ctx, testItem("1", "100.00", "")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	before := c.Snapshot()

	if err := c.RemoveItem(ctx, "nope"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	after := c.Snapshot()
	if len(after.Items) != len(before.Items) || after.TotalItems != before.TotalItems || !after.Subtotal.Equal(before.Subtotal) {
		t.Errorf("removing an absent ID must not change the cart: before %+v, after %+v", before, after)
	}
}

func TestClearEmptiesEverything(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	if err := c.AddItem(ctx, testItem("1", "100.00", "")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(ctx, testItem("2", "200.00", "150.00")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if len(c.Items()) != 0 || c.TotalItems() != 0 || !c.Subtotal().IsZero() || !c.TotalPrice().IsZero() {
		t.Errorf("Clear must zero lines and aggregates, got %+v", c.Snapshot())
	}
}

func TestCartSurvivesReload(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()

	c, err := New(ctx, st, DefaultNamespace, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.AddItem(ctx, testItem("1", "450.00", "379.90")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(ctx, testItem("2", "520.00", "")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.UpdateQuantity(ctx, "2", 3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}

	reloaded, err := New(ctx, st, DefaultNamespace, zap.NewNop())
	if err != nil {
		t.Fatalf("New after reload: %v", err)
	}

	want := c.Snapshot()
	got := reloaded.Snapshot()
	if len(got.Items) != len(want.Items) || got.TotalItems != want.TotalItems || !got.Subtotal.Equal(want.Subtotal) {
		t.Errorf("reloaded cart differs: want %+v, got %+v", want, got)
	}
}

// cartOp is one step of a random mutation sequence.
type cartOp struct {
	kind     int // 0 add, 1 remove, 2 update, 3 clear
	id       string
	quantity int
}

func genCartOp() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 3),
		gen.OneConstOf("1", "2", "3", "4", "5"),
		gen.IntRange(-2, 6),
	).Map(func(values []interface{}) cartOp {
		return cartOp{
			kind:     values[0].(int),
			id:       values[1].(string),
			quantity: values[2].(int),
		}
	})
}

// The stored aggregates must equal what ComputeTotals re-derives from the
// lines, no matter what sequence of mutations produced them.
func TestProperty_AggregatesMatchLines(t *testing.T) {
	catalog := map[string]domain.CartItem{
		"1": testItem("1", "450.00", "379.90"),
		"2": testItem("2", "520.00", ""),
		"3": testItem("3", "480.00", "399.00"),
		"4": testItem("4", "380.00", ""),
		"5": testItem("5", "410.00", ""),
	}

	properties := gopter.NewProperties(nil)

	properties.Property("aggregates equal ComputeTotals over the lines", prop.ForAll(
		func(ops []cartOp) bool {
			ctx := context.Background()
			c, err := New(ctx, newMockStore(), DefaultNamespace, zap.NewNop())
			if err != nil {
				t.Logf("FAIL: New: %v", err)
				return false
			}

			for _, op := range ops {
				switch op.kind {
				case 0:
					err = c.AddItem(ctx, catalog[op.id])
				case 1:
					err = c.RemoveItem(ctx, op.id)
				case 2:
					err = c.UpdateQuantity(ctx, op.id, op.quantity)
				case 3:
					err = c.Clear(ctx)
				}
				if err != nil {
					t.Logf("FAIL: op %+v: %v", op, err)
					return false
				}

				snapshot := c.Snapshot()
				totalItems, subtotal := ComputeTotals(snapshot.Items)
				if snapshot.TotalItems != totalItems {
					t.Logf("FAIL: totalItems %d, expected %d", snapshot.TotalItems, totalItems)
					return false
				}
				if !snapshot.Subtotal.Equal(subtotal) {
					t.Logf("FAIL: subtotal %s, expected %s", snapshot.Subtotal, subtotal)
					return false
				}
				if !snapshot.TotalPrice.Equal(snapshot.Subtotal) {
					t.Logf("FAIL: totalPrice %s diverged from subtotal %s", snapshot.TotalPrice, snapshot.Subtotal)
					return false
				}

				for _, item := range snapshot.Items {
					if item.Quantity < 1 {
						t.Logf("FAIL: line %s has quantity %d", item.ID, item.Quantity)
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(genCartOp()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Every mutation persists: a reload mid-sequence reconstructs the same state.
func TestProperty_PersistedStateMatchesMemory(t *testing.T) {
	item := testItem("1", "450.00", "379.90")

	properties := gopter.NewProperties(nil)

	properties.Property("reload reconstructs the in-memory cart", prop.ForAll(
		func(adds int, setQuantity int) bool {
			ctx := context.Background()
			st := newMockStore()
			c, err := New(ctx, st, DefaultNamespace, zap.NewNop())
			if err != nil {
				t.Logf("FAIL: New: %v", err)
				return false
			}

			for i := 0; i < adds; i++ {
				if err := c.AddItem(ctx, item); err != nil {
					t.Logf("FAIL: AddItem: %v", err)
					return false
				}
			}
			if err := c.UpdateQuantity(ctx, item.ID, setQuantity); err != nil {
				t.Logf("FAIL: UpdateQuantity: %v", err)
				return false
			}

			reloaded, err := New(ctx, st, DefaultNamespace, zap.NewNop())
			if err != nil {
				t.Logf("FAIL: reload: %v", err)
				return false
			}

			want := c.Snapshot()
			got := reloaded.Snapshot()
			if len(got.Items) != len(want.Items) || got.TotalItems != want.TotalItems ||
				!got.Subtotal.Equal(want.Subtotal) || !got.TotalPrice.Equal(want.TotalPrice) {
				t.Logf("FAIL: reloaded %+v, expected %+v", got, want)
				return false
			}
			return true
		},
		gen.IntRange(1, 5),
		gen.IntRange(-1, 8),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
