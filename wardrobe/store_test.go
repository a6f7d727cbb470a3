package wardrobe

import (
	"fmt"
	"testing"

	"stylesyncapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(category string) models.ClothingItem {
	return models.ClothingItem{
		Category:     category,
		Description:  "test item",
		Color:        []string{"Red"},
		Gender:       "Unisex",
		Fabric:       "Cotton",
		Pattern:      "Solid",
		Fit:          "Regular Fit",
		SleeveLength: "Short",
		NeckType:     "Round",
		Occasion:     []string{"Casual"},
		Season:       []string{"Summer"},
		Features:     []string{"Breathable"},
	}
}

func TestAddAssignsSequentialIds(t *testing.T) {
	store := NewStore()
	for i := 1; i <= 5; i++ {
		id := store.Add(testItem("T-Shirt"))
		assert.Equal(t, uint(i), id)
	}

	items := store.List()
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, uint(i+1), item.ID)
	}
}

func TestGetToleratesStringIds(t *testing.T) {
	store := NewStore()
	id := store.Add(testItem("Dress"))

	byNumber, ok := store.Get(id)
	require.True(t, ok)
	byString, ok := store.Get(fmt.Sprintf("%d", id))
	require.True(t, ok)
	assert.Equal(t, byNumber, byString)

	_, ok = store.Get("99")
	assert.False(t, ok)
	_, ok = store.Get("not-an-id")
	assert.False(t, ok)
}

func TestClearKeepsCounterRunning(t *testing.T) {
	store := NewStore()
	store.Add(testItem("T-Shirt"))
	store.Add(testItem("Dress"))

	store.Clear()
	assert.Empty(t, store.List())
	assert.Equal(t, 0, store.Len())

	// ids are never reused, even after a clear
	id := store.Add(testItem("Jacket"))
	assert.Equal(t, uint(3), id)

	_, ok := store.Get(1)
	assert.False(t, ok)
}

func TestSummaryCountsByCategory(t *testing.T) {
	store := NewStore()
	store.Add(testItem("T-Shirt"))
	store.Add(testItem("Dress"))
	store.Add(testItem("T-Shirt"))

	assert.Equal(t, map[string]int{"T-Shirt": 2, "Dress": 1}, store.Summary())
}

func TestExportImportRoundTrip(t *testing.T) {
	store := NewStore()
	store.Add(testItem("T-Shirt"))
	store.Add(testItem("Dress"))
	store.Add(testItem("Shorts"))

	document, err := store.ExportJSON()
	require.NoError(t, err)

	imported, err := ImportStoreJSON(document)
	require.NoError(t, err)
	assert.Equal(t, store.List(), imported.List())

	// the counter resumes past the highest imported id
	id := imported.Add(testItem("Jacket"))
	assert.Equal(t, uint(4), id)
}

func TestImportRejectsBadDocuments(t *testing.T) {
	_, err := ImportStoreJSON([]byte(`{"not": "an array"}`))
	require.Error(t, err)

	_, err = ImportStoreJSON([]byte(`[{"category": "T-Shirt"}]`))
	require.Error(t, err)

	_, err = ImportStoreJSON([]byte(`[{"id": 1, "category": "A"}, {"id": 1, "category": "B"}]`))
	require.Error(t, err)
}

func TestResolveRecommendationDropsUnknownIds(t *testing.T) {
	store := NewStore()
	store.Add(testItem("T-Shirt"))

	rec := &models.OutfitRecommendation{
		RecommendedItems: []any{"1", "99"},
		Reasoning:        "only one of these exists",
		StyleTips:        []string{"tuck it in"},
	}

	outfit, err := store.ResolveRecommendation(rec)
	require.NoError(t, err)
	require.Len(t, outfit.Items, 1)
	assert.Equal(t, uint(1), outfit.Items[0].ID)
	assert.Equal(t, rec.Reasoning, outfit.Reasoning)
	assert.Equal(t, rec.StyleTips, outfit.StyleTips)
}

func TestResolveRecommendationFailsWhenNothingResolves(t *testing.T) {
	store := NewStore()
	store.Add(testItem("T-Shirt"))

	rec := &models.OutfitRecommendation{RecommendedItems: []any{"99"}, Reasoning: "ghost item"}
	_, err := store.ResolveRecommendation(rec)
	assert.ErrorIs(t, err, models.ErrNoValidItems)
}

func TestResolveRecommendationDedupesReferences(t *testing.T) {
	store := NewStore()
	store.Add(testItem("T-Shirt"))
	store.Add(testItem("Shorts"))

	rec := &models.OutfitRecommendation{RecommendedItems: []any{"2", 2, "1"}}
	outfit, err := store.ResolveRecommendation(rec)
	require.NoError(t, err)
	require.Len(t, outfit.Items, 2)
	assert.Equal(t, uint(2), outfit.Items[0].ID)
	assert.Equal(t, uint(1), outfit.Items[1].ID)
}
