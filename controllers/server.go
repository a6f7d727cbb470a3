package controllers

import (
	"net/http"
	"os"

	"stylesyncapi/services"

	"github.com/go-playground/validator"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	registry services.WardrobeRegistryProvider,
	stylist services.StylistProvider,
) *echo.Echo {

	e := echo.New()
	v := validator.New()
	e.Validator = &CustomValidator{validator: v}

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__registry", registry)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	sessionController := SessionController{}
	e.POST("/sessions", sessionController.CreateSession)

	wardrobeGroup := e.Group("/wardrobe", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)

	wardrobeController := WardrobeController{Stylist: stylist}
	wardrobeController.WardrobeRoutes(wardrobeGroup)

	recommendController := RecommendController{Stylist: stylist}
	recommendController.RecommendRoutes(wardrobeGroup)

	return e
}
