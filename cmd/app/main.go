package main

import (
	"flag"
	"log"
	"os"

	"TradeLens/internal/di"
	"TradeLens/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s sheets=%d kafka=%v clickhouse=%v",
		cfg.Environment, len(cfg.Sheets.SheetIDs), cfg.Kafka.Enabled, cfg.ClickHouse.Enabled)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
