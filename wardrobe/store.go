package wardrobe

import (
	"encoding/json"
	"fmt"
	"sync"

	"stylesyncapi/models"
)

// Store is an ordered, id-indexed in-memory wardrobe. Each session owns
// exactly one instance, passed around explicitly; there are no ambient
// globals. Ids are 1-based, sequential and never reused: Clear empties the
// collection but keeps the counter running, only a brand-new Store (session
// reset or import) restarts ids at 1.
type Store struct {
	mu       sync.RWMutex
	items    []models.ClothingItem
	index    map[uint]int
	assigned uint // ids ever handed out, survives Clear
}

func NewStore() *Store {
	return &Store{index: make(map[uint]int)}
}

// Add assigns the next id, appends the item and returns the new id.
// Id assignment and append happen under one lock so concurrent handlers
// cannot race on the same id.
func (s *Store) Add(item models.ClothingItem) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assigned++
	item.ID = s.assigned
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item)
	return item.ID
}

// Get looks an item up by id. The reference is normalized first, so Get(3)
// and Get("3") return the same item.
func (s *Store) Get(ref any) (models.ClothingItem, bool) {
	id, err := models.NormalizeItemID(ref)
	if err != nil {
		return models.ClothingItem{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[id]
	if !ok {
		return models.ClothingItem{}, false
	}
	return s.items[pos], true
}

// List returns all items in insertion order.
func (s *Store) List() []models.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClothingItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear discards every item in place. The id counter is intentionally left
// alone: ids keep increasing across clears, only a fresh Store starts over.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[uint]int)
}

// Summary returns category -> count, computed on demand.
func (s *Store) Summary() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := make(map[string]int)
	for _, item := range s.items {
		summary[item.Category]++
	}
	return summary
}

// ExportJSON renders the wardrobe as an ordered JSON array with all item
// fields including ids. This is the layout external tools consume and the
// same document ImportStoreJSON accepts back.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.items
	if items == nil {
		items = []models.ClothingItem{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// Snapshot is the deterministic serialized wardrobe embedded into the
// recommendation prompt. Field order is fixed by the struct tags.
func (s *Store) Snapshot() ([]byte, error) {
	return s.ExportJSON()
}

// ImportStoreJSON rebuilds a fresh Store from an exported document,
// preserving item order and ids. The id counter resumes past the highest
// imported id so future adds never collide.
func ImportStoreJSON(data []byte) (*Store, error) {
	var items []models.ClothingItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &models.SchemaError{Subject: "wardrobe export", Reason: "document is not an item array"}
	}

	store := NewStore()
	for i, item := range items {
		if item.ID == 0 {
			return nil, &models.SchemaError{Subject: "wardrobe export", Reason: fmt.Sprintf("item at position %d has no id", i)}
		}
		if _, exists := store.index[item.ID]; exists {
			return nil, &models.SchemaError{Subject: "wardrobe export", Reason: fmt.Sprintf("duplicate item id %d", item.ID)}
		}
		store.index[item.ID] = len(store.items)
		store.items = append(store.items, item)
		if item.ID > store.assigned {
			store.assigned = item.ID
		}
	}
	return store, nil
}
