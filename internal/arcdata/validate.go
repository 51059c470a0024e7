package arcdata

import "fmt"

// Finding is one data-quality problem in the dataset. Findings never stop
// the site from rendering; they exist so contributors can fix the source
// document.
type Finding struct {
	Slug    string // the ARC the problem belongs to, empty for document-level problems
	Message string
}

func (f Finding) String() string {
	if f.Slug == "" {
		return f.Message
	}
	return f.Slug + ": " + f.Message
}

// Validate runs the offline data-quality checks and returns every
// violation found. Request handling never calls this; the rendering path
// tolerates all of these conditions (first best wins, unknown levels group
// under their own heading) so a bad edit degrades the page instead of
// breaking it.
func Validate(doc *Document) []Finding {
	var findings []Finding
	add := func(slug, format string, args ...any) {
		findings = append(findings, Finding{Slug: slug, Message: fmt.Sprintf(format, args...)})
	}

	roster := make(map[string]bool, len(doc.ArcList))
	for _, entry := range doc.ArcList {
		if entry.Slug == "" {
			add("", "arc_list entry %q has no slug", entry.Name)
			continue
		}
		if roster[entry.Slug] {
			add(entry.Slug, "duplicate arc_list entry")
		}
		roster[entry.Slug] = true
		if !entry.ThreatLevel.Known() {
			add(entry.Slug, "unknown threat level %q", entry.ThreatLevel)
		}
	}

	seen := make(map[string]bool, len(doc.Arcs))
	for _, arc := range doc.Arcs {
		if arc.Slug == "" {
			add("", "arcs entry %q has no slug", arc.Name)
			continue
		}
		if seen[arc.Slug] {
			add(arc.Slug, "duplicate arcs entry")
		}
		seen[arc.Slug] = true

		if !roster[arc.Slug] {
			add(arc.Slug, "missing from the arc_list roster")
		}
		if !arc.ThreatLevel.Known() {
			add(arc.Slug, "unknown threat level %q", arc.ThreatLevel)
		}

		best := 0
		for i, strat := range arc.Strategies {
			if strat.Best {
				best++
			}
			if len(strat.Items) == 0 {
				add(arc.Slug, "strategy %d has no items", i+1)
			}
			for _, item := range strat.Items {
				if !item.Type.Valid() {
					add(arc.Slug, "strategy %d: invalid item type %q", i+1, item.Type)
				}
				if item.Name == "" {
					add(arc.Slug, "strategy %d: item has no name", i+1)
				}
				if err := item.Units.Check(); err != nil {
					add(arc.Slug, "strategy %d: %v", i+1, err)
				}
			}
		}
		if best > 1 {
			add(arc.Slug, "%d strategies flagged best, want at most 1", best)
		}
	}

	return findings
}
