package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SessionController struct{}

type SessionCreatedResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// CreateSession mints a new wardrobe session. The wardrobe itself is
// materialized lazily on first authenticated request.
func (controller *SessionController) CreateSession(c echo.Context) error {
	sessionID := uuid.NewString()
	token := GenerateSessionToken(sessionID, c)

	return c.JSON(http.StatusCreated, SessionCreatedResponse{
		SessionID: sessionID,
		Token:     token,
	})
}
