package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"kloth-be/internal/product"
)

// CartKey is the durable entry holding the JSON-encoded cart.
const CartKey = "cart"

// Cart is the shopper's cart. Add is its only mutation.
type Cart struct {
	kv KV

	mu      sync.RWMutex
	entries []*product.Product
}

// LoadCart initializes the cart from storage. A read or decode failure
// returns an empty usable cart together with an ErrPersistence error.
func LoadCart(ctx context.Context, kv KV) (*Cart, error) {
	c := &Cart{kv: kv, entries: []*product.Product{}}

	data, ok, err := kv.Get(ctx, CartKey)
	if err != nil {
		return c, fmt.Errorf("%w: read cart: %v", ErrPersistence, err)
	}
	if !ok || len(data) == 0 {
		return c, nil
	}

	var entries []*product.Product
	if err := json.Unmarshal(data, &entries); err != nil {
		return c, fmt.Errorf("%w: decode cart: %v", ErrPersistence, err)
	}
	if entries != nil {
		c.entries = entries
	}
	return c, nil
}

// Add appends a snapshot of p; the same product added twice yields two entries.
// The in-memory append stands even when the durable write fails.
func (c *Cart) Add(ctx context.Context, p *product.Product) error {
	snapshot := *p

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, &snapshot)

	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %v", ErrPersistence, err)
	}
	if err := c.kv.Set(ctx, CartKey, data); err != nil {
		return fmt.Errorf("%w: write cart: %v", ErrPersistence, err)
	}
	return nil
}

// Entries returns a copy of the cart contents.
func (c *Cart) Entries() []*product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
