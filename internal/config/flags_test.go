package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-d", "db", "-l", "warn", "-m", "sensitive", "-seeds=false", "-n", "Tomás",
				"-geo", "http://geo", "-geo-timeout", "3", "-lat", "-34.5", "-lon", "-58.4",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "sa-east-1", "-e", "http://endpoint",
				"-a", "127.0.0.1:9090", "-metrics", ":9100", "-s", "secret", "-t", "1",
			},
			want: &Config{
				DatabaseDSN:                 "db",
				LogLevel:                    "warn",
				MatchMode:                   "sensitive",
				SeedsEnabled:                false,
				Author:                      "Tomás",
				GeocoderURL:                 "http://geo",
				GeocoderTimeout:             3 * time.Second,
				HomeLat:                     -34.5,
				HomeLon:                     -58.4,
				S3AccessKey:                 "user",
				S3SecretKey:                 "password",
				S3Bucket:                    "bucket",
				S3Region:                    "sa-east-1",
				S3BaseEndpoint:              "http://endpoint",
				EndpointAddrGRPC:            "127.0.0.1:9090",
				MetricsAddr:                 ":9100",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: time.Minute,
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-d", "only.db"},
			want: &Config{DatabaseDSN: "only.db"},
		},
		{
			name:    "bad number",
			args:    []string{"-geo-timeout", "forever"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := parseFlags(c, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, c))
		})
	}
}
