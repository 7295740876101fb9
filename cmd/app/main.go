package main

import (
	"context"
	"flag"
	"log"
	"os"

	"BetaPulse/internal/di"
	"BetaPulse/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", "serve", "run mode: serve, once, or status")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s backend=%s symbols=%d benchmark=%s",
		cfg.Environment, cfg.PriceStore.Backend, len(cfg.Analytics.Symbols), cfg.Analytics.Benchmark)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	switch *mode {
	case "serve":
		if err := app.Run(); err != nil {
			log.Printf("app error: %v", err)
			os.Exit(1)
		}
	case "once":
		if err := app.RunOnce(context.Background()); err != nil {
			log.Printf("tick error: %v", err)
			os.Exit(1)
		}
	case "status":
		if err := app.PrintStatus(context.Background()); err != nil {
			log.Printf("status error: %v", err)
			os.Exit(1)
		}
	default:
		log.Fatalf("unknown mode: %s (want serve, once, or status)", *mode)
	}
}
