// Package geo resolves street addresses to coordinates and supplies the
// device's "current location". Both are best effort: failures degrade to
// the zero coordinate and are never returned to the caller of Resolve.
package geo

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.GeoPoint, error)
}

// Resolve geocodes address, logging any failure at WARN and returning the
// zero coordinate in its place.
func Resolve(ctx context.Context, g Geocoder, log logging.Logger, address string) models.GeoPoint {
	if g == nil {
		return models.GeoPoint{}
	}
	p, err := g.Geocode(ctx, address)
	if err != nil {
		log.Warn(ctx, "geocoding failed, using zero coordinate", "address", address, "error", err)
		return models.GeoPoint{}
	}
	return p
}

// Locator reports where the user currently is. ok is false when no fix is
// available.
type Locator interface {
	Current(ctx context.Context) (p models.GeoPoint, ok bool)
}

// FixedLocator always reports the same point. The zero point means no fix.
type FixedLocator struct {
	Point models.GeoPoint
}

func (l FixedLocator) Current(context.Context) (models.GeoPoint, bool) {
	return l.Point, !l.Point.IsZero()
}

// Label formats the location stored on a new moment.
func Label(p models.GeoPoint, ok bool) string {
	if !ok {
		return common.DefaultLocation
	}
	return fmt.Sprintf("%s (%.4f, %.4f)", common.DefaultLocation, p.Lat, p.Lon)
}
