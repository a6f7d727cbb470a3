package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stylesyncapi/models"
	"stylesyncapi/services"
	"stylesyncapi/test"
	"stylesyncapi/wardrobe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationJSON(ids []any) []byte {
	payload := map[string]any{
		"recommended_items": ids,
		"reasoning":         "the colors work together",
		"style_tips":        []string{"add white sneakers"},
	}
	data, _ := json.Marshal(payload)
	return data
}

func seedWardrobe(t *testing.T, registry *services.WardrobeRegistry, sessionID string, categories ...string) {
	store, err := registry.GetStore(context.Background(), sessionID)
	require.NoError(t, err)
	for _, category := range categories {
		item, err := models.DecodeClothingItem(test.ClothingJSON(category))
		require.NoError(t, err)
		store.Add(*item)
	}
}

func TestRecommendEmptyWardrobeSkipsAdapter(t *testing.T) {
	mock := &test.StylistMock{RecommendPayload: recommendationJSON([]any{"1"})}
	e, _, sessionID := newStylistServer(t, mock)

	req := test.NewJSONAuthRequest("POST", "/wardrobe/recommendations", sessionID, models.PreferenceBundle{Occasion: "Casual"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, mock.RecommendCalls, "adapter must not be called for an empty wardrobe")
}

func TestRecommendOk(t *testing.T) {
	mock := &test.StylistMock{RecommendPayload: recommendationJSON([]any{"1"})}
	e, registry, sessionID := newStylistServer(t, mock)
	seedWardrobe(t, registry, sessionID, "T-Shirt")

	req := test.NewJSONAuthRequest("POST", "/wardrobe/recommendations", sessionID, models.PreferenceBundle{Occasion: "Casual", Season: "Summer"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var outfit wardrobe.Outfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outfit))
	require.Len(t, outfit.Items, 1)
	assert.Equal(t, uint(1), outfit.Items[0].ID)
	assert.Equal(t, "T-Shirt", outfit.Items[0].Category)
	assert.Equal(t, "the colors work together", outfit.Reasoning)
	assert.Equal(t, []string{"add white sneakers"}, outfit.StyleTips)

	// the adapter saw the serialized wardrobe and the preference bundle
	assert.Equal(t, 1, mock.RecommendCalls)
	assert.Contains(t, string(mock.LastWardrobeJSON), `"category": "T-Shirt"`)
	assert.Equal(t, "Casual", mock.LastPrefs.Occasion)
}

func TestRecommendDropsUnknownIds(t *testing.T) {
	mock := &test.StylistMock{RecommendPayload: recommendationJSON([]any{1, 99})}
	e, registry, sessionID := newStylistServer(t, mock)
	seedWardrobe(t, registry, sessionID, "T-Shirt")

	req := test.NewJSONAuthRequest("POST", "/wardrobe/recommendations", sessionID, models.PreferenceBundle{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var outfit wardrobe.Outfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outfit))
	require.Len(t, outfit.Items, 1)
	assert.Equal(t, uint(1), outfit.Items[0].ID)
}

func TestRecommendNoValidItems(t *testing.T) {
	mock := &test.StylistMock{RecommendPayload: recommendationJSON([]any{"99"})}
	e, registry, sessionID := newStylistServer(t, mock)
	seedWardrobe(t, registry, sessionID, "T-Shirt")

	req := test.NewJSONAuthRequest("POST", "/wardrobe/recommendations", sessionID, models.PreferenceBundle{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "No valid items recommended")
}

func TestRecommendMalformedPayload(t *testing.T) {
	mock := &test.StylistMock{RecommendPayload: []byte(`{"reasoning": "missing items"}`)}
	e, registry, sessionID := newStylistServer(t, mock)
	seedWardrobe(t, registry, sessionID, "T-Shirt")

	req := test.NewJSONAuthRequest("POST", "/wardrobe/recommendations", sessionID, models.PreferenceBundle{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRecommendInvalidPreferences(t *testing.T) {
	mock := &test.StylistMock{RecommendPayload: recommendationJSON([]any{"1"})}
	e, registry, sessionID := newStylistServer(t, mock)
	seedWardrobe(t, registry, sessionID, "T-Shirt")

	req := test.NewJSONAuthRequest("POST", "/wardrobe/recommendations", sessionID, models.PreferenceBundle{MaxOutfits: 99})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, mock.RecommendCalls)
}
