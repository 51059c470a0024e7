// Package main runs the Arc Raiders damage tracker web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
	"github.com/ramonehamilton/arc-damage-tracker/internal/config"
	"github.com/ramonehamilton/arc-damage-tracker/internal/version"
	"github.com/ramonehamilton/arc-damage-tracker/internal/web"
)

var (
	configPath = flag.String("config", "arc-tracker.toml", "Path to the TOML config file")
	port       = flag.Int("port", 0, "Listen port (overrides config)")
	dataPath   = flag.String("data", "", "Path to the arcs JSON document (overrides config)")
	loadMode   = flag.String("mode", "", `Data load mode: "eager" or "lazy" (overrides config)`)
)

func main() {
	flag.Parse()

	fmt.Println("Arc Raiders Damage Tracker")
	fmt.Println("==========================")
	fmt.Printf("Version: %s\n", version.GetVersion())
	fmt.Println()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flag overrides
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataPath != "" {
		cfg.Data.FilePath = *dataPath
	}
	if *loadMode != "" {
		cfg.Data.LoadMode = *loadMode
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	fmt.Printf("Data file: %s (%s load)\n", cfg.Data.FilePath, cfg.Data.LoadMode)

	// Eager mode refuses to start without a readable dataset; lazy mode
	// defers load errors to the affected requests.
	var store arcdata.Store
	switch cfg.Data.LoadMode {
	case config.LoadLazy:
		store = arcdata.NewFileStore(cfg.Data.FilePath)
	default:
		cached, err := arcdata.NewCachedStore(cfg.Data.FilePath)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		store = cached
		warnFindings(cached)
	}

	server, err := web.NewServer(cfg, store)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println()
	fmt.Printf("Tracker running at http://localhost:%d\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("Tracker stopped.")
}

// warnFindings logs data-quality problems at startup without refusing to
// serve; run arccheck for the same report offline.
func warnFindings(store *arcdata.CachedStore) {
	doc, err := store.Document()
	if err != nil {
		return
	}
	for _, finding := range arcdata.Validate(doc) {
		log.Printf("[Data] Warning: %s", finding)
	}
}
