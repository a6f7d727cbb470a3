package controllers

import (
	"fmt"
	"io"
	"net/http"

	"stylesyncapi/models"
	"stylesyncapi/services"
	"stylesyncapi/wardrobe"

	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 10 << 20 // per-file cap on clothing photos

type WardrobeController struct {
	Stylist services.StylistProvider
}

// Response structs
type ItemCreatedResponse struct {
	Item models.ClothingItem `json:"item"`
	// preview for the UI; images are never stored server-side
	PreviewDataURI string `json:"preview_data_uri"`
}

type ItemsListResponse struct {
	Items []models.ClothingItem `json:"items"`
	Count int                   `json:"count"`
}

type SummaryResponse struct {
	Categories map[string]int `json:"categories"`
	Total      int            `json:"total"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/items", controller.AnalyzeItem)
	g.GET("/items", controller.ListItems)
	g.GET("/items/:itemId", controller.GetItem)
	g.GET("/summary", controller.Summary)
	g.DELETE("/items", controller.ClearItems)
	g.POST("/reset", controller.ResetWardrobe)
	g.GET("/export", controller.ExportWardrobe)
	g.POST("/import", controller.ImportWardrobe)
}

// AnalyzeItem accepts a clothing photo, has the stylist extract structured
// attributes and inserts the validated item. Nothing is inserted on any
// failure along the way.
func (controller *WardrobeController) AnalyzeItem(c echo.Context) error {
	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "An image file is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Image is too large, maximum is 10MB"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read the uploaded image"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read the uploaded image"})
	}

	prepared, mimeType, err := services.PrepareClothingImage(data)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	raw, err := controller.Stylist.AnalyzeClothing(c.Request().Context(), prepared, mimeType)
	if err != nil {
		return stylistFailureResponse(c, "analyze the clothing image", err)
	}

	item, err := models.DecodeClothingItem(raw)
	if err != nil {
		return stylistFailureResponse(c, "analyze the clothing image", err)
	}

	item.ID = store.Add(*item)
	fmt.Println("[Wardrobe] Added item", item.ID, item.Category)

	return c.JSON(http.StatusCreated, ItemCreatedResponse{
		Item:           *item,
		PreviewDataURI: services.ImageDataURI(mimeType, prepared),
	})
}

func (controller *WardrobeController) ListItems(c echo.Context) error {
	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	items := store.List()
	return c.JSON(http.StatusOK, ItemsListResponse{Items: items, Count: len(items)})
}

func (controller *WardrobeController) GetItem(c echo.Context) error {
	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	item, found := store.Get(c.Param("itemId"))
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No such item in your wardrobe"})
	}
	return c.JSON(http.StatusOK, item)
}

func (controller *WardrobeController) Summary(c echo.Context) error {
	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	return c.JSON(http.StatusOK, SummaryResponse{Categories: store.Summary(), Total: store.Len()})
}

// ClearItems empties the wardrobe in place. Item ids keep increasing
// afterwards; use reset for a wardrobe whose ids restart at 1.
func (controller *WardrobeController) ClearItems(c echo.Context) error {
	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	store.Clear()
	return c.JSON(http.StatusOK, map[string]string{"message": "Wardrobe cleared"})
}

// ResetWardrobe discards the whole store and replaces it with a new one.
func (controller *WardrobeController) ResetWardrobe(c echo.Context) error {
	registry, ok := c.Get("__registry").(services.WardrobeRegistryProvider)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	sessionID, _ := c.Get("sessionID").(string)
	if _, err := registry.ResetStore(c.Request().Context(), sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reset wardrobe, please try again"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Wardrobe reset"})
}

func (controller *WardrobeController) ExportWardrobe(c echo.Context) error {
	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	document, err := store.ExportJSON()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export wardrobe"})
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, document)
}

// ImportWardrobe rebuilds the session wardrobe from a previously exported
// document, preserving item order and ids.
func (controller *WardrobeController) ImportWardrobe(c echo.Context) error {
	registry, ok := c.Get("__registry").(services.WardrobeRegistryProvider)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}
	sessionID, _ := c.Get("sessionID").(string)

	document, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read import document"})
	}
	imported, err := wardrobe.ImportStoreJSON(document)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := registry.ReplaceStore(c.Request().Context(), sessionID, imported); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to import wardrobe, please try again"})
	}
	return c.JSON(http.StatusOK, ImportResponse{Imported: imported.Len()})
}
