package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/baconnect/internal/buildinfo"
	"github.com/dmitrijs2005/baconnect/internal/cli"
	"github.com/dmitrijs2005/baconnect/internal/config"
	"github.com/dmitrijs2005/baconnect/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
