package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lei/anc-web-api/pkg/server"
)

const defaultConfigFile = "configs/config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	// Load .env file (ignore error if file doesn't exist - env vars might be set externally)
	_ = godotenv.Load()

	// An explicitly named config file must exist; the default one may be absent
	configFile := os.Getenv("CONFIG_FILE")
	allowMissing := configFile == ""
	if allowMissing {
		configFile = defaultConfigFile
	}

	srv, err := server.NewFromFile(configFile, allowMissing)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Blocks until shutdown
	return srv.Start(ctx)
}
