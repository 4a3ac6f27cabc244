package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/baconnect/internal/buildinfo"
	"github.com/dmitrijs2005/baconnect/internal/config"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/server"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
