package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"stylesyncapi/models"
	"stylesyncapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type RecommendController struct {
	Stylist services.StylistProvider
}

func (controller *RecommendController) RecommendRoutes(g *echo.Group) {
	g.POST("/recommendations", controller.RecommendOutfit)
}

// RecommendOutfit builds an outfit recommendation from the current wardrobe
// and the user's free-text preferences. The empty-wardrobe precondition is
// checked before the stylist is ever invoked, and every returned item id is
// resolved against the store before anything reaches the caller.
func (controller *RecommendController) RecommendOutfit(c echo.Context) error {
	var req models.PreferenceBundle
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	store, ok := currentStore(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Wardrobe is not available"})
	}

	if store.Len() == 0 {
		c.Logger().Warnf("recommendation rejected before adapter call: %v", models.ErrEmptyWardrobe)
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "Your wardrobe is empty, add some clothing items first"})
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to prepare wardrobe data"})
	}

	raw, err := controller.Stylist.RecommendOutfit(c.Request().Context(), snapshot, req)
	if err != nil {
		return stylistFailureResponse(c, "get outfit recommendations", err)
	}

	rec, err := models.DecodeOutfitRecommendation(raw)
	if err != nil {
		return stylistFailureResponse(c, "get outfit recommendations", err)
	}

	outfit, err := store.ResolveRecommendation(rec)
	if err != nil {
		if errors.Is(err, models.ErrNoValidItems) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "No valid items recommended, please try different preferences"})
		}
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get outfit recommendations, please try again"})
	}

	return c.JSON(http.StatusOK, outfit)
}
