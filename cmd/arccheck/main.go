// Package main checks the arcs dataset for data-quality problems: more
// than one best strategy per ARC, empty item lists, bad type tags,
// descending ranges, roster gaps. The site tolerates all of these at
// render time; this tool exists so they get fixed at the source.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
)

var (
	dataPath = flag.String("data", "data/arcs.json", "Path to the arcs JSON document")
	watch    = flag.Bool("watch", false, "Re-check on every save of the data file")
)

func main() {
	flag.Parse()

	ok := check(*dataPath)
	if !*watch {
		if !ok {
			os.Exit(1)
		}
		return
	}

	if err := watchLoop(*dataPath); err != nil {
		log.Fatalf("Watch failed: %v", err)
	}
}

// check loads and validates the dataset, printing every problem. Returns
// false when the file cannot be loaded or any finding exists.
func check(path string) bool {
	doc, err := arcdata.Load(path)
	if err != nil {
		fmt.Printf("FAIL %v\n", err)
		return false
	}

	findings := arcdata.Validate(doc)
	if len(findings) == 0 {
		fmt.Printf("OK   %s: %d arcs with data, %d roster entries, no findings\n",
			path, len(doc.Arcs), len(doc.ArcList))
		return true
	}

	for _, f := range findings {
		fmt.Printf("WARN %s\n", f)
	}
	fmt.Printf("FAIL %s: %d findings\n", path, len(findings))
	return false
}

// watchLoop re-checks the dataset whenever the file changes. The parent
// directory is watched because editors usually replace the file on save
// instead of writing it in place.
func watchLoop(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", path)
	target := filepath.Clean(path)

	for {
		select {
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Println()
			check(path)
		case err := <-watcher.Errors:
			fmt.Printf("[WARN] File watcher error: %v\n", err)
		}
	}
}
