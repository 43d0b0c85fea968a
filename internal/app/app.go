package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"stroke-risk-service/internal/adapters/cache"
	"stroke-risk-service/internal/adapters/classifier"
	"stroke-risk-service/internal/adapters/geocode"
	"stroke-risk-service/internal/adapters/hospitals"
	"stroke-risk-service/internal/config"
	"stroke-risk-service/internal/platform/db"
	"stroke-risk-service/internal/ports"
	"stroke-risk-service/internal/services"

	"github.com/redis/go-redis/v9"
)

// App holds the wired pipeline and whatever must be closed on shutdown.
type App struct {
	Pipeline *services.Pipeline
	closers  []func() error
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// New wires concrete adapters behind ports according to cfg.
// A missing or invalid model artifact is an error; callers treat it as fatal.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	clf, err := newClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	nominatim, err := geocode.NewNominatimGeocoder(geocode.NominatimConfig{
		BaseURL:       cfg.NominatimURL,
		UserAgent:     cfg.GeocoderAgent,
		Timeout:       cfg.GeocoderTimeout,
		RatePerSecond: cfg.GeocoderRate,
	})
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	gc, err := a.newGeocodeCache(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build app: %w", err)
	}

	var geocoder ports.Geocoder = nominatim
	if gc != nil {
		geocoder = geocode.NewCachingGeocoder(nominatim, gc)
	}

	finder, err := hospitals.NewOverpassFinder(hospitals.OverpassConfig{
		Endpoint: cfg.OverpassURL,
		Timeout:  cfg.OverpassTimeout,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build app: %w", err)
	}

	a.Pipeline = &services.Pipeline{
		Classifier:   clf,
		Geocoder:     geocoder,
		Finder:       finder,
		Country:      cfg.GeocoderCountry,
		RadiusMeters: cfg.SearchRadius,
	}
	return a, nil
}

func newClassifier(cfg config.Config) (ports.Classifier, error) {
	if cfg.Classifier == "remote" {
		return classifier.NewRemoteClassifier(cfg.MLServiceURL, cfg.MLTimeout)
	}

	path := cfg.ModelPath
	if path == "" {
		p, err := classifier.DefaultModelPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	m, err := classifier.LoadLinearModel(path)
	if err != nil {
		return nil, err
	}
	log.Printf("classifier loaded path=%s", path)
	return m, nil
}

func (a *App) newGeocodeCache(ctx context.Context, cfg config.Config) (ports.GeocodeCache, error) {
	switch cfg.GeocodeCache {
	case "sqlite":
		if dir := filepath.Dir(cfg.DBPath); dir != "." && cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := a.initSchema(ctx, conn); err != nil {
			return nil, err
		}
		return cache.NewSqliteGeocodeCache(conn), nil

	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := a.initSchema(ctx, conn); err != nil {
			return nil, err
		}
		return cache.NewSQLGeocodeCache(conn), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), nil
	}

	log.Println("geocode cache disabled")
	return nil, nil
}

func (a *App) initSchema(ctx context.Context, conn *sql.DB) error {
	a.closers = append(a.closers, conn.Close)
	return cache.InitSchema(ctx, conn)
}
