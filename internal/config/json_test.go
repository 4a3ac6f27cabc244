package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJSON(t *testing.T) {
	full := writeTempJSON(t, map[string]any{
		"database_dsn":                   "postgres://u:p@db:5432/connect",
		"seeds_enabled":                  false,
		"author":                         "Lucía",
		"geocoder_url":                   "",
		"geocoder_timeout":               "2s",
		"home_lat":                       -34.6,
		"home_lon":                       -58.38,
		"s3_bucket":                      "moments",
		"s3_presign_ttl":                 "1h",
		"endpoint_addr_grpc":             "0.0.0.0:7000",
		"metrics_addr":                   "",
		"secret_key":                     "k",
		"access_token_validity_duration": 60000000000,
	})

	t.Run("loads from json", func(t *testing.T) {
		var c Config
		c.LoadDefaults()
		require.NoError(t, parseJSON(&c, []string{"-config", full}))

		assert.Equal(t, "postgres://u:p@db:5432/connect", c.DatabaseDSN)
		assert.False(t, c.SeedsEnabled)
		assert.Equal(t, "Lucía", c.Author)
		assert.Empty(t, c.GeocoderURL)
		assert.Equal(t, 2*time.Second, c.GeocoderTimeout)
		assert.InDelta(t, -34.6, c.HomeLat, 1e-9)
		assert.Equal(t, "moments", c.S3Bucket)
		assert.Equal(t, time.Hour, c.S3PresignTTL)
		assert.Equal(t, "0.0.0.0:7000", c.EndpointAddrGRPC)
		assert.Empty(t, c.MetricsAddr)
		assert.Equal(t, time.Minute, c.AccessTokenValidityDuration)
		assert.Equal(t, "us-east-1", c.S3Region, "absent keys keep their value")
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		c := Config{DatabaseDSN: "keep.db", GeocoderTimeout: time.Second}
		require.NoError(t, parseJSON(&c, []string{"-d", "other.db"}))
		assert.Equal(t, Config{DatabaseDSN: "keep.db", GeocoderTimeout: time.Second}, c)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad := writeTempJSON(t, map[string]any{"geocoder_timeout": "soon"})
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})
}
