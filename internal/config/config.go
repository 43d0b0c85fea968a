package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// Settings shared by the server and the CLI.
type Config struct {
	Port string

	Classifier   string // file | remote
	ModelPath    string
	MLServiceURL string
	MLTimeout    time.Duration

	NominatimURL    string
	GeocoderCountry string
	GeocoderAgent   string
	GeocoderTimeout time.Duration
	GeocoderRate    float64
	GeocodeCache    string // sqlite | postgres | redis | none
	GeocodeCacheTTL time.Duration
	DBPath          string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	OverpassURL     string
	OverpassTimeout time.Duration
	SearchRadius    int
	DisplayLimit    int
	SortByDistance  bool
	SessionTTL      time.Duration
	SessionMax      int
}

// Load reads every setting from the environment and validates the choices
// that would otherwise fail late.
func Load() (Config, error) {
	c := Config{
		Port: Get("PORT", "8080"),

		Classifier:   strings.ToLower(Get("CLASSIFIER", "file")),
		ModelPath:    Get("MODEL_PATH", ""),
		MLServiceURL: Get("ML_SERVICE_URL", ""),
		MLTimeout:    GetDuration("ML_TIMEOUT", 10*time.Second),

		NominatimURL:    Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		GeocoderCountry: Get("GEOCODER_COUNTRY", "India"),
		GeocoderAgent:   Get("GEOCODER_USER_AGENT", "HeartStrokePrediction/1.0"),
		GeocoderTimeout: GetDuration("GEOCODER_TIMEOUT", 10*time.Second),
		GeocoderRate:    GetFloat("GEOCODER_RATE_PER_SEC", 1),
		GeocodeCache:    strings.ToLower(Get("GEOCODE_CACHE", "sqlite")),
		GeocodeCacheTTL: GetDuration("GEOCODE_CACHE_TTL", 30*24*time.Hour),
		DBPath:          Get("DB_PATH", "data/app.db"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisAddr:       Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         GetInt("REDIS_DB", 0),
		OverpassURL:     Get("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OverpassTimeout: GetDuration("OVERPASS_TIMEOUT", 30*time.Second),
		SearchRadius:    GetInt("SEARCH_RADIUS_METERS", 5000),
		DisplayLimit:    GetInt("DISPLAY_LIMIT", 5),
		SortByDistance:  GetBool("SORT_BY_DISTANCE", false),
		SessionTTL:      GetDuration("SESSION_TTL", time.Hour),
		SessionMax:      GetInt("SESSION_MAX_ENTRIES", 10000),
	}

	switch c.Classifier {
	case "file":
	case "remote":
		if c.MLServiceURL == "" {
			return Config{}, fmt.Errorf("load config: ML_SERVICE_URL is required when CLASSIFIER=remote")
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown CLASSIFIER %q (want file or remote)", c.Classifier)
	}

	switch c.GeocodeCache {
	case "sqlite", "redis", "none":
	case "postgres":
		if c.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required when GEOCODE_CACHE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown GEOCODE_CACHE %q", c.GeocodeCache)
	}

	if c.DisplayLimit < 1 {
		return Config{}, fmt.Errorf("load config: DISPLAY_LIMIT must be positive, got %d", c.DisplayLimit)
	}

	if c.SessionTTL <= 0 || c.SessionMax < 1 {
		return Config{}, fmt.Errorf("load config: SESSION_TTL and SESSION_MAX_ENTRIES must be positive")
	}

	return c, nil
}
