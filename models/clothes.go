package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// ClothingItem is the structured result of analyzing a single clothing
// photo. ID is assigned by the wardrobe store at insertion time, never by
// the remote service.
type ClothingItem struct {
	ID           uint     `json:"id"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Color        []string `json:"color"`
	Gender       string   `json:"gender"` // Unisex, Male, Female
	Fabric       string   `json:"fabric"`
	Pattern      string   `json:"pattern"`
	Fit          string   `json:"fit"`
	SleeveLength string   `json:"sleeve_length"`
	NeckType     string   `json:"neck_type"`
	Occasion     []string `json:"occasion"`
	Season       []string `json:"season"`
	Features     []string `json:"features"`
}

// OutfitRecommendation is the raw structured reply of the recommendation
// call. Item references arrive as strings or numbers depending on the model
// mood, so they stay untyped until the wardrobe resolves them. The value is
// transient and never stored.
type OutfitRecommendation struct {
	RecommendedItems []any    `json:"recommended_items"`
	Reasoning        string   `json:"reasoning"`
	StyleTips        []string `json:"style_tips"`
}

// required fields of a clothing item payload
var clothingItemFields = []string{
	"category", "description", "color", "gender", "fabric", "pattern",
	"fit", "sleeve_length", "neck_type", "occasion", "season", "features",
}

var outfitFields = []string{"recommended_items", "reasoning", "style_tips"}

// DecodeClothingItem validates and coerces a raw adapter payload into a
// ClothingItem. It fails loudly when a required field is absent or has an
// incompatible shape, and collapses duplicates in the set-typed fields.
func DecodeClothingItem(data []byte) (*ClothingItem, error) {
	if err := requireFields("clothing item", data, clothingItemFields); err != nil {
		return nil, err
	}

	var item ClothingItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, &SchemaError{Subject: "clothing item", Reason: shapeReason(err)}
	}
	if len(item.Color) == 0 {
		return nil, &SchemaError{Subject: "clothing item", Reason: "color must be a non-empty list"}
	}
	if len(item.Occasion) == 0 {
		return nil, &SchemaError{Subject: "clothing item", Reason: "occasion must be a non-empty list"}
	}
	if len(item.Season) == 0 {
		return nil, &SchemaError{Subject: "clothing item", Reason: "season must be a non-empty list"}
	}

	item.ID = 0 // identity belongs to the store
	item.Occasion = dedupeStrings(item.Occasion)
	item.Season = dedupeStrings(item.Season)
	item.Features = dedupeStrings(item.Features)
	return &item, nil
}

// DecodeOutfitRecommendation validates the shape of a raw recommendation
// payload. Item references are kept as-received (string or number); the
// wardrobe store normalizes them during resolution.
func DecodeOutfitRecommendation(data []byte) (*OutfitRecommendation, error) {
	if err := requireFields("outfit recommendation", data, outfitFields); err != nil {
		return nil, err
	}

	var rec OutfitRecommendation
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&rec); err != nil {
		return nil, &SchemaError{Subject: "outfit recommendation", Reason: shapeReason(err)}
	}
	for _, ref := range rec.RecommendedItems {
		switch ref.(type) {
		case string, json.Number:
		default:
			return nil, &SchemaError{
				Subject: "outfit recommendation",
				Reason:  fmt.Sprintf("recommended_items entries must be ids, got %T", ref),
			}
		}
	}
	return &rec, nil
}

// NormalizeItemID converts any reasonable id representation (uint, int,
// string, json.Number) to the canonical store id. Ids are 1-based, so zero
// is rejected along with garbage.
func NormalizeItemID(ref any) (uint, error) {
	id, err := cast.ToUint64E(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %v: %w", ref, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid item id %v: ids are 1-based", ref)
	}
	return uint(id), nil
}

func requireFields(subject string, data []byte, fields []string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SchemaError{Subject: subject, Reason: "payload is not a JSON object"}
	}
	for _, field := range fields {
		value, ok := raw[field]
		if !ok || string(value) == "null" {
			return &SchemaError{Subject: subject, Reason: fmt.Sprintf("missing required field %q", field)}
		}
	}
	return nil
}

func shapeReason(err error) string {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("field %q has incompatible shape (got %s)", typeErr.Field, typeErr.Value)
	}
	return err.Error()
}

// dedupeStrings collapses duplicates while preserving first-seen order.
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
