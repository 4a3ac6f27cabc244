package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/netx"
)

var ErrNoResult = errors.New("address not found")

// NominatimGeocoder queries an OpenStreetMap Nominatim compatible
// /search endpoint.
type NominatimGeocoder struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewNominatimGeocoder(baseURL string, timeout time.Duration) *NominatimGeocoder {
	return &NominatimGeocoder{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: "baconnect/1.0",
		Client:    &http.Client{Timeout: timeout},
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (models.GeoPoint, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	var places []nominatimPlace
	header := http.Header{"User-Agent": {g.UserAgent}}
	if err := netx.GetJSON(ctx, g.Client, g.BaseURL+"/search?"+q.Encode(), header, &places); err != nil {
		return models.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(places) == 0 {
		return models.GeoPoint{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("bad latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("bad longitude %q: %w", places[0].Lon, err)
	}
	return models.GeoPoint{Lat: lat, Lon: lon}, nil
}
