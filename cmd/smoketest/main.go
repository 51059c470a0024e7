package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ramonehamilton/arc-damage-tracker/internal/smoke"
	"github.com/ramonehamilton/arc-damage-tracker/internal/version"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "Base URL of the running tracker")
	otlpEndpoint := flag.String("otlp-endpoint", "localhost:4317", "OTLP gRPC collector endpoint (host:port)")
	headless := flag.Bool("headless", true, "Run Chromium without a visible window")
	environment := flag.String("environment", "development", "Deployment environment reported in traces")
	flag.Parse()

	fmt.Println("Arc Raiders Damage Tracker - Smoke Suite")
	fmt.Printf("Version: %s\n", version.GetVersion())
	fmt.Printf("Target: %s\n", *baseURL)

	ctx := context.Background()

	exporter, err := smoke.NewOTLPExporter(ctx, *otlpEndpoint)
	if err != nil {
		log.Fatalf("[Smoke] Failed to create OTLP exporter: %v", err)
	}

	shutdown, err := smoke.InitProvider(ctx, smoke.ProviderConfig{
		ServiceVersion: version.GetVersion(),
		Environment:    *environment,
		Exporter:       exporter,
	})
	if err != nil {
		log.Fatalf("[Smoke] Failed to initialise tracing: %v", err)
	}

	suite := smoke.NewSuite(smoke.Config{
		BaseURL:     *baseURL,
		Headless:    *headless,
		Environment: *environment,
	})

	summary, runErr := suite.Run(ctx)

	// Flush buffered spans before deciding the exit code. os.Exit skips
	// deferred calls, so the shutdown happens inline.
	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(flushCtx); err != nil {
		log.Printf("[Smoke] Trace export shutdown error: %v", err)
	}

	if runErr != nil {
		log.Fatalf("[Smoke] Suite did not run: %v", runErr)
	}

	fmt.Println()
	for _, c := range summary.Cases {
		if c.Err != nil {
			fmt.Printf("  FAIL %s: %v\n", c.Name, c.Err)
			continue
		}
		fmt.Printf("  PASS %s\n", c.Name)
	}
	fmt.Printf("\n%d of %d passed (%s)\n", summary.Passed(), summary.Total(), summary.Result())

	if summary.Failed() > 0 {
		os.Exit(1)
	}
}
