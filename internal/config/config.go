// Package config assembles runtime settings for the connect client and the
// feed server: defaults first, then an optional JSON file, then flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/baconnect/internal/models"
)

// Config holds runtime settings shared by both binaries.
//
// Fields:
//   - DatabaseDSN: "postgres://..." selects Postgres, anything else is a
//     SQLite path (":memory:" for a throwaway store).
//   - MatchMode: "insensitive" (default) or "sensitive" substring search.
//   - SeedsEnabled: merge the built-in community moments into feeds.
//   - GeocoderURL / GeocoderTimeout: Nominatim-style lookup for event
//     venues. An empty URL disables geocoding.
//   - HomeLat / HomeLon: the device position used to label new moments.
//     Both zero means no position is available.
//   - S3*: object storage for uploaded moment images. An empty bucket keeps
//     image references as given.
//   - EndpointAddrGRPC / MetricsAddr: feed server listeners.
//   - SecretKey / AccessTokenValidityDuration: feed server JWT settings.
type Config struct {
	DatabaseDSN     string
	LogLevel        string
	MatchMode       string
	SeedsEnabled    bool
	Author          string
	GeocoderURL     string
	GeocoderTimeout time.Duration
	HomeLat         float64
	HomeLon         float64

	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3PresignTTL   time.Duration

	EndpointAddrGRPC            string
	MetricsAddr                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
}

// LoadDefaults populates c with development defaults. SecretKey must be
// overridden outside of local runs.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "connect.db"
	c.LogLevel = "info"
	c.MatchMode = models.MatchInsensitive.String()
	c.SeedsEnabled = true
	c.Author = ""
	c.GeocoderURL = "https://nominatim.openstreetmap.org"
	c.GeocoderTimeout = 5 * time.Second
	c.HomeLat = 0
	c.HomeLon = 0

	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3PresignTTL = 15 * time.Minute

	c.EndpointAddrGRPC = ":50051"
	c.MetricsAddr = ":9090"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
}

// Mode returns the parsed MatchMode.
func (c *Config) Mode() models.MatchMode {
	return models.ParseMatchMode(c.MatchMode)
}

// HasHome reports whether a device position is configured.
func (c *Config) HasHome() bool {
	return c.HomeLat != 0 || c.HomeLon != 0
}

// Load builds a Config from defaults, the JSON file named by -c/-config in
// args, and the flags in args, later sources winning.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
