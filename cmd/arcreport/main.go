// Package main renders a strategy-coverage report for the arcs dataset:
// how many ARCs per threat level have documented and verified strategies,
// as an interactive bar chart in a standalone HTML file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
	"github.com/ramonehamilton/arc-damage-tracker/internal/viewmodel"
)

var (
	dataPath = flag.String("data", "data/arcs.json", "Path to the arcs JSON document")
	outPath  = flag.String("out", "coverage.html", "Output HTML file")
)

func main() {
	flag.Parse()

	doc, err := arcdata.Load(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	if err := renderCoverage(viewmodel.BuildListing(doc), *outPath); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	fmt.Printf("Coverage report written to %s\n", *outPath)
}

// renderCoverage writes a per-threat-level bar chart of how much of the
// roster has documented and verified strategies.
func renderCoverage(listing *viewmodel.Listing, outputPath string) error {
	bar := charts.NewBar()

	// Set global options
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "500px",
			Theme:  "light",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "ARC Strategy Coverage",
			Subtitle: "Documented and verified strategies per threat level",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	// One bar group per threat level
	xLabels := make([]string, len(listing.Order))
	documented := make([]opts.BarData, len(listing.Order))
	verified := make([]opts.BarData, len(listing.Order))
	needsData := make([]opts.BarData, len(listing.Order))

	for i, level := range listing.Order {
		xLabels[i] = level.Label()

		var docN, verN, missN int
		for _, row := range listing.Groups[level] {
			if !row.HasData {
				missN++
				continue
			}
			docN++
			if row.HasVerified {
				verN++
			}
		}
		documented[i] = opts.BarData{Value: docN}
		verified[i] = opts.BarData{Value: verN}
		needsData[i] = opts.BarData{Value: missN}
	}

	// Add data to chart
	bar.SetXAxis(xLabels).
		AddSeries("Documented", documented).
		AddSeries("Verified", verified).
		AddSeries("Needs data", needsData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	// Create output file
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}
