package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"stroke-risk-service/internal/adapters/sessions"
	"stroke-risk-service/internal/api"
	"stroke-risk-service/internal/app"
	"stroke-risk-service/internal/config"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the classifier, geocoder and hospital finder behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(a.Pipeline, sessions.NewMemoryStore(cfg.SessionTTL, cfg.SessionMax), api.Options{
		DisplayLimit:   cfg.DisplayLimit,
		SortByDistance: cfg.SortByDistance,
	})

	// Write timeout covers a cold geocode plus a full hospital search.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.GeocoderTimeout + cfg.OverpassTimeout + cfg.MLTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	waitForShutdown(srv, serveErr, stop)

	if err := a.Close(); err != nil {
		log.Printf("close resources failed: %v", err)
	}
}

// waitForShutdown blocks until a stop signal or a listener failure, then
// drains in-flight requests.
func waitForShutdown(srv *http.Server, serveErr <-chan error, stop <-chan os.Signal) {
	select {
	case <-stop:
	case err, ok := <-serveErr:
		if ok {
			log.Printf("server error: %v", err)
		}
		return
	}

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
