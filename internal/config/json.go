package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/baconnect/internal/flagx"
	"github.com/dmitrijs2005/baconnect/internal/timex"
)

// jsonConfig mirrors Config for file decoding; durations accept "1.2s"
// style strings or integer nanoseconds.
type jsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	LogLevel        string         `json:"log_level"`
	MatchMode       string         `json:"match_mode"`
	SeedsEnabled    bool           `json:"seeds_enabled"`
	Author          string         `json:"author"`
	GeocoderURL     string         `json:"geocoder_url"`
	GeocoderTimeout timex.Duration `json:"geocoder_timeout"`
	HomeLat         float64        `json:"home_lat"`
	HomeLon         float64        `json:"home_lon"`

	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3PresignTTL   timex.Duration `json:"s3_presign_ttl"`

	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 string         `json:"metrics_addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
}

// parseJSON overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current value.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := toJSON(config)
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	fromJSON(c, config)
	return nil
}

func toJSON(c *Config) *jsonConfig {
	return &jsonConfig{
		DatabaseDSN:                 c.DatabaseDSN,
		LogLevel:                    c.LogLevel,
		MatchMode:                   c.MatchMode,
		SeedsEnabled:                c.SeedsEnabled,
		Author:                      c.Author,
		GeocoderURL:                 c.GeocoderURL,
		GeocoderTimeout:             timex.Duration{Duration: c.GeocoderTimeout},
		HomeLat:                     c.HomeLat,
		HomeLon:                     c.HomeLon,
		S3AccessKey:                 c.S3AccessKey,
		S3SecretKey:                 c.S3SecretKey,
		S3Bucket:                    c.S3Bucket,
		S3Region:                    c.S3Region,
		S3BaseEndpoint:              c.S3BaseEndpoint,
		S3PresignTTL:                timex.Duration{Duration: c.S3PresignTTL},
		EndpointAddrGRPC:            c.EndpointAddrGRPC,
		MetricsAddr:                 c.MetricsAddr,
		SecretKey:                   c.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
	}
}

func fromJSON(j *jsonConfig, c *Config) {
	c.DatabaseDSN = j.DatabaseDSN
	c.LogLevel = j.LogLevel
	c.MatchMode = j.MatchMode
	c.SeedsEnabled = j.SeedsEnabled
	c.Author = j.Author
	c.GeocoderURL = j.GeocoderURL
	c.GeocoderTimeout = j.GeocoderTimeout.Duration
	c.HomeLat = j.HomeLat
	c.HomeLon = j.HomeLon
	c.S3AccessKey = j.S3AccessKey
	c.S3SecretKey = j.S3SecretKey
	c.S3Bucket = j.S3Bucket
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.S3PresignTTL = j.S3PresignTTL.Duration
	c.EndpointAddrGRPC = j.EndpointAddrGRPC
	c.MetricsAddr = j.MetricsAddr
	c.SecretKey = j.SecretKey
	c.AccessTokenValidityDuration = j.AccessTokenValidityDuration.Duration
}
