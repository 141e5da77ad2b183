package main

import (
	"flag"
	"log"
	"os"

	"LiquiDash/internal/di"
	"LiquiDash/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load .env if present, then config with env overrides
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s source=%s", cfg.Environment, cfg.HKMA.URL)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("clickhouse: connected and schema ready - db: %s", cfg.ClickHouse.Database)

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
