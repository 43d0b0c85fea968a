package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHelpers(t *testing.T) {
	t.Setenv("STROKE_TEST_STR", "  value ")
	t.Setenv("STROKE_TEST_INT", "42")
	t.Setenv("STROKE_TEST_BAD_INT", "forty")
	t.Setenv("STROKE_TEST_BOOL", "true")
	t.Setenv("STROKE_TEST_DUR", "1500ms")

	assert.Equal(t, "value", Get("STROKE_TEST_STR", "x"))
	assert.Equal(t, "x", Get("STROKE_TEST_UNSET", "x"))
	assert.Equal(t, 42, GetInt("STROKE_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("STROKE_TEST_BAD_INT", 1))
	assert.True(t, GetBool("STROKE_TEST_BOOL", false))
	assert.Equal(t, 1500*time.Millisecond, GetDuration("STROKE_TEST_DUR", time.Second))
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"CLASSIFIER", "GEOCODE_CACHE", "GEOCODER_COUNTRY", "GEOCODER_TIMEOUT",
		"OVERPASS_TIMEOUT", "SEARCH_RADIUS_METERS", "DISPLAY_LIMIT", "SORT_BY_DISTANCE",
		"SESSION_TTL", "SESSION_MAX_ENTRIES"} {
		t.Setenv(k, "")
	}

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", c.Classifier)
	assert.Equal(t, "India", c.GeocoderCountry)
	assert.Equal(t, 10*time.Second, c.GeocoderTimeout)
	assert.Equal(t, 30*time.Second, c.OverpassTimeout)
	assert.Equal(t, 5000, c.SearchRadius)
	assert.Equal(t, 5, c.DisplayLimit)
	assert.False(t, c.SortByDistance)
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.Equal(t, 10000, c.SessionMax)
}

func TestLoadRejectsInconsistentChoices(t *testing.T) {
	t.Run("remote without url", func(t *testing.T) {
		t.Setenv("CLASSIFIER", "remote")
		t.Setenv("ML_SERVICE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("GEOCODE_CACHE", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero session bound", func(t *testing.T) {
		t.Setenv("SESSION_MAX_ENTRIES", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown cache", func(t *testing.T) {
		t.Setenv("GEOCODE_CACHE", "memcached")
		_, err := Load()
		assert.Error(t, err)
	})
}
