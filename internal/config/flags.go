package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/flagx"
)

var ownFlags = []string{
	"-d", "-l", "-m", "-seeds", "-n", "-geo", "-geo-timeout", "-lat", "-lon",
	"-u", "-p", "-b", "-g", "-e",
	"-a", "-metrics", "-s", "-t",
}

// parseFlags overlays command-line flags onto config.
//
//	-d string        database DSN
//	-l string        log level (debug, info, warn, error)
//	-m string        match mode (insensitive, sensitive)
//	-seeds bool      merge community moments into feeds
//	-n string        author name on local comments and chat
//	-geo string      geocoder base URL, empty disables lookups
//	-geo-timeout int geocoder timeout, seconds
//	-lat, -lon float device position
//	-u, -p string    S3 access key and secret
//	-b string        S3 bucket, empty disables uploads
//	-g string        S3 region
//	-e string        S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-a string        gRPC bind address
//	-metrics string  metrics bind address, empty disables the listener
//	-s string        JWT HMAC secret
//	-t int           access token validity, minutes
//
// Only the flags above are picked out of args, so both binaries can share
// one command line shape.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("connect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.MatchMode, "m", config.MatchMode, "match mode")
	fs.BoolVar(&config.SeedsEnabled, "seeds", config.SeedsEnabled, "merge community moments")
	fs.StringVar(&config.Author, "n", config.Author, "author name")
	fs.StringVar(&config.GeocoderURL, "geo", config.GeocoderURL, "geocoder base URL")
	geoTimeout := fs.Int("geo-timeout", int(config.GeocoderTimeout.Seconds()), "geocoder timeout (in seconds)")
	fs.Float64Var(&config.HomeLat, "lat", config.HomeLat, "device latitude")
	fs.Float64Var(&config.HomeLon, "lon", config.HomeLon, "device longitude")

	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&config.MetricsAddr, "metrics", config.MetricsAddr, "metrics address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.GeocoderTimeout = time.Duration(*geoTimeout) * time.Second
	config.AccessTokenValidityDuration = time.Duration(*tokenTTL) * time.Minute
	return nil
}
