package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"stylesyncapi/models"

	"github.com/golang-jwt/jwt/v4"
)

// SetupTestEnv puts the secrets the server setup reads into the process
// environment. Call it before SetupServer in every test.
func SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret")
}

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func GenerateSessionToken(sessionID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing session token for %s. Error %s ", sessionID, err)
	}
	return t
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func NewJSONAuthRequest(method string, target string, sessionID string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateSessionToken(sessionID)))
	return req
}

func NewAuthRequest(method string, target string, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateSessionToken(sessionID)))
	return req
}

func NewRawAuthRequest(method string, target string, sessionID string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateSessionToken(sessionID)))
	return req
}

// NewImageUploadRequest builds the multipart upload the analyze endpoint
// expects.
func NewImageUploadRequest(target string, sessionID string, fileName string, imageBytes []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		log.Fatalf("Error building multipart request: %s", err)
	}
	part.Write(imageBytes)
	writer.Close()

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Add("Content-Type", writer.FormDataContentType())
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateSessionToken(sessionID)))
	return req
}

// TestPNG renders a solid-color PNG of the given size.
func TestPNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("Error encoding test png: %s", err)
	}
	return buf.Bytes()
}

// ClothingJSON is a valid clothing-analysis payload as the stylist would
// return it.
func ClothingJSON(category string) []byte {
	payload := map[string]any{
		"category":      category,
		"description":   "A " + strings.ToLower(category) + " in good condition",
		"color":         []string{"Red"},
		"gender":        "Unisex",
		"fabric":        "Cotton",
		"pattern":       "Solid",
		"fit":           "Regular Fit",
		"sleeve_length": "Short",
		"neck_type":     "Round",
		"occasion":      []string{"Casual"},
		"season":        []string{"Summer"},
		"features":      []string{"Breathable"},
	}
	data, _ := json.Marshal(payload)
	return data
}

// StylistMock records calls and plays back canned payloads so tests can
// drive the whole pipeline without Gemini.
type StylistMock struct {
	AnalyzePayload   []byte
	AnalyzeErr       error
	AnalyzeCalls     int
	LastImageMIME    string
	RecommendPayload []byte
	RecommendErr     error
	RecommendCalls   int
	LastWardrobeJSON []byte
	LastPrefs        models.PreferenceBundle
}

func (m *StylistMock) AnalyzeClothing(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	m.AnalyzeCalls++
	m.LastImageMIME = mimeType
	if m.AnalyzeErr != nil {
		return nil, m.AnalyzeErr
	}
	return m.AnalyzePayload, nil
}

func (m *StylistMock) RecommendOutfit(ctx context.Context, wardrobeJSON []byte, prefs models.PreferenceBundle) ([]byte, error) {
	m.RecommendCalls++
	m.LastWardrobeJSON = wardrobeJSON
	m.LastPrefs = prefs
	if m.RecommendErr != nil {
		return nil, m.RecommendErr
	}
	return m.RecommendPayload, nil
}
