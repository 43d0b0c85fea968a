package geocode

import (
	"context"
	"log"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/obs"
	"stroke-risk-service/internal/ports"
	"strings"

	"golang.org/x/sync/singleflight"
)

// CachingGeocoder wraps a Geocoder with a persistent cache of resolved lookups.
//
// Cache failures never fail a lookup: reads fall through to the upstream
// geocoder and write errors are only logged. Unresolved lookups are not
// cached, so a pincode that failed once is retried on the next prediction.
// Concurrent misses for the same key share one upstream call; each caller
// still returns as soon as its own context is done.
type CachingGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
	group singleflight.Group
}

func NewCachingGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachingGeocoder {
	return &CachingGeocoder{next: next, cache: cache}
}

// CacheKey normalizes a lookup into "COUNTRY|postalcode" with whitespace collapsed.
func CacheKey(postalCode, country string) string {
	pc := strings.Join(strings.Fields(postalCode), " ")
	cc := strings.ToUpper(strings.Join(strings.Fields(country), " "))
	return cc + "|" + pc
}

func (g *CachingGeocoder) Resolve(ctx context.Context, postalCode string, country string) (domain.Coordinates, error) {
	key := CacheKey(postalCode, country)

	if g.cache != nil {
		c, ok, err := g.cache.Get(ctx, key)
		switch {
		case err != nil:
			obs.GeocodeCacheLookups.WithLabelValues("error").Inc()
			log.Printf("req_id=%s geocode cache read failed key=%q: %v", obs.RequestID(ctx), key, err)
		case ok:
			obs.GeocodeCacheLookups.WithLabelValues("hit").Inc()
			return c, nil
		default:
			obs.GeocodeCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	// The shared lookup ignores any one caller's cancellation; the upstream
	// client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (any, error) {
		c, err := g.next.Resolve(shared, postalCode, country)
		if err != nil {
			return domain.Coordinates{}, err
		}

		if g.cache != nil {
			if err := g.cache.Put(shared, key, c); err != nil {
				log.Printf("req_id=%s geocode cache write failed key=%q: %v", obs.RequestID(ctx), key, err)
			}
		}
		return c, nil
	})

	select {
	case <-ctx.Done():
		return domain.Coordinates{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return domain.Coordinates{}, r.Err
		}
		return r.Val.(domain.Coordinates), nil
	}
}
