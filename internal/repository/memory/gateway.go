package memory

import (
	"context"
	"sync"
)

// Gateway keeps snapshots in process memory. Used for ephemeral runs and tests.
type Gateway struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewGateway creates an empty in-memory gateway
func NewGateway() *Gateway {
	return &Gateway{data: make(map[string][]byte)}
}

// Load returns a copy of the payload for key, or nil
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	data, ok := g.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key
func (g *Gateway) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.data[key] = append([]byte(nil), data...)
	return nil
}

// Keys returns the number of stored keys
func (g *Gateway) Keys() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.data)
}

// Purge forgets every key
func (g *Gateway) Purge(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.data)
	return nil
}
