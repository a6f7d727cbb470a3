package wardrobe

import (
	"log"

	"stylesyncapi/models"
)

// Outfit is a recommendation whose item references have been resolved
// against the wardrobe, safe for the display layer to dereference.
type Outfit struct {
	Items     []models.ClothingItem `json:"items"`
	Reasoning string                `json:"reasoning"`
	StyleTips []string              `json:"style_tips"`
}

// ResolveRecommendation cross-checks a raw recommendation against the
// store. Unknown or duplicate ids are dropped (the id constraint sent to
// the stylist is advisory, not a guarantee); when nothing resolves the
// whole recommendation fails with ErrNoValidItems.
func (s *Store) ResolveRecommendation(rec *models.OutfitRecommendation) (*Outfit, error) {
	var items []models.ClothingItem
	seen := make(map[uint]bool)

	for _, ref := range rec.RecommendedItems {
		id, err := models.NormalizeItemID(ref)
		if err != nil {
			log.Printf("[Wardrobe] Dropping malformed item reference %v: %v", ref, err)
			continue
		}
		if seen[id] {
			continue
		}
		item, ok := s.Get(id)
		if !ok {
			log.Printf("[Wardrobe] Dropping recommended item %d: not in wardrobe", id)
			continue
		}
		seen[id] = true
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, models.ErrNoValidItems
	}

	tips := rec.StyleTips
	if tips == nil {
		tips = []string{}
	}
	return &Outfit{Items: items, Reasoning: rec.Reasoning, StyleTips: tips}, nil
}
