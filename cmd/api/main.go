package main

import (
	"log"
	"os"
	"time"

	"stylesyncapi/controllers"
	"stylesyncapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	godotenv.Load()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET environment variable is not set!")
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("SENTRY_DSN"),
		Environment: services.GetEnv("ENV", "local"),
		Release:     "stylesyncapi@1.0.0",
		Debug:       false,
		// Set TracesSampleRate to 1.0 to capture 100%
		// of transactions for performance monitoring.
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	apiKey, source, err := services.ResolveGeminiAPIKey(os.Stdin)
	if err != nil {
		log.Fatalf("Cannot start without a Gemini API key: %v", err)
	}
	log.Printf("Gemini API key loaded from %s", source)

	registry, err := services.NewWardrobeRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize wardrobe registry: %v", err)
	}

	stylist := services.GoogleStylistService{APIKey: apiKey, Model: services.Flash20}

	e := controllers.SetupServer(registry, stylist)
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(3)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	e.Logger.Fatal(e.Start(":8083"))
}
