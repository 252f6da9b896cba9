package main

import (
	"log"

	"inspector/internal/config"
	"inspector/internal/logging"
	"inspector/internal/ui"
)

func main() {
	cfg := config.Load(config.DefaultConfigPath)

	if err := logging.Init(cfg.LogMode); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logging.Sync()

	app := ui.CreateApp(cfg)

	app.Run()
}
