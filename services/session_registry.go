package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"stylesyncapi/wardrobe"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// Sessions that stay idle this long are disposed together with their
// wardrobe; the wardrobe is in-memory state for one session, nothing more.
const sessionTTL = 12 * time.Hour

type WardrobeRegistryProvider interface {
	GetStore(ctx context.Context, sessionID string) (*wardrobe.Store, error)
	ResetStore(ctx context.Context, sessionID string) (*wardrobe.Store, error)
	ReplaceStore(ctx context.Context, sessionID string, st *wardrobe.Store) error
}

// WardrobeRegistry maps session ids to their wardrobe store, backed by a
// TTL'd ristretto cache through gocache. Creation and replacement are
// serialized; ristretto applies buffered writes asynchronously, so the
// registry waits them out to keep reads-after-write consistent.
type WardrobeRegistry struct {
	mu      sync.Mutex
	cache   *cache.Cache[*wardrobe.Store]
	backing *ristretto.Cache
}

func NewWardrobeRegistry() (*WardrobeRegistry, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 16, // sessions are cheap, cost 1 each
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)
	fmt.Println("Initialized WardrobeRegistry with Ristretto cache!")
	return &WardrobeRegistry{
		cache:   cache.New[*wardrobe.Store](ristrettoStore),
		backing: ristrettoCache,
	}, nil
}

// GetStore returns the session's wardrobe, materializing a fresh empty one
// on first use.
func (r *WardrobeRegistry) GetStore(ctx context.Context, sessionID string) (*wardrobe.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, err := r.cache.Get(ctx, sessionID); err == nil && st != nil {
		return st, nil
	}

	log.Printf("[Registry] New wardrobe store for session %s", sessionID)
	st := wardrobe.NewStore()
	if err := r.set(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ResetStore swaps in a brand-new store for the session. This is the path
// that restarts ids at 1, unlike an in-place Clear.
func (r *WardrobeRegistry) ResetStore(ctx context.Context, sessionID string) (*wardrobe.Store, error) {
	st := wardrobe.NewStore()
	if err := r.ReplaceStore(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ReplaceStore installs an externally built store (import path).
func (r *WardrobeRegistry) ReplaceStore(ctx context.Context, sessionID string, st *wardrobe.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set(ctx, sessionID, st)
}

func (r *WardrobeRegistry) set(ctx context.Context, sessionID string, st *wardrobe.Store) error {
	err := r.cache.Set(ctx, sessionID, st, store.WithCost(1), store.WithExpiration(sessionTTL))
	if err != nil {
		return fmt.Errorf("failed to register wardrobe store: %w", err)
	}
	// flush ristretto's write buffer so the next Get sees the store
	r.backing.Wait()
	return nil
}
