package controllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"stylesyncapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

func BoolPointer(b bool) *bool {
	return &b
}

func StrPointer(b string) *string {
	return &b
}

func GenerateSessionToken(sessionID string, c echo.Context) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.Logger().Errorf("Error when signing session token for %s. Error %s ", sessionID, err)
	}
	return t
}

// stylistFailureResponse maps adapter failures to user-visible responses.
// Transport exhaustion and malformed payloads stay local to this request;
// the wardrobe is untouched either way.
func stylistFailureResponse(c echo.Context, op string, err error) error {
	var transportErr *models.TransportError
	var schemaErr *models.SchemaError
	switch {
	case errors.As(err, &transportErr):
		return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "The styling service is unreachable right now, please try again"})
	case errors.As(err, &schemaErr):
		sentry.CaptureException(err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to " + op + ", please try again"})
	}
}
