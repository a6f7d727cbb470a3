package controllers

import (
	"log"

	"stylesyncapi/services"
	"stylesyncapi/wardrobe"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the wardrobe store of the session named in the
// JWT subject and hangs it on the request context. Stores are materialized
// lazily, so a fresh token simply starts with an empty wardrobe.
func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		registry, ok := c.Get("__registry").(services.WardrobeRegistryProvider)
		if !ok {
			return echo.ErrInternalServerError
		}

		tokenRaw := c.Get("user")
		if tokenRaw == nil {
			return echo.ErrUnauthorized
		}
		token := tokenRaw.(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		sessionID, _ := claims["sub"].(string)
		if sessionID == "" {
			log.Println("Error while getting the token information!")
			return echo.ErrUnauthorized
		}

		store, err := registry.GetStore(c.Request().Context(), sessionID)
		if err != nil {
			log.Printf("Failed to resolve wardrobe for session %s: %v", sessionID, err)
			return echo.ErrInternalServerError
		}

		c.Set("sessionID", sessionID)
		c.Set("currentStore", store)
		return next(c)
	}
}

func currentStore(c echo.Context) (*wardrobe.Store, bool) {
	store, ok := c.Get("currentStore").(*wardrobe.Store)
	return store, ok
}
