// Package viewmodel derives the display-ready projections the pages
// render: the threat-grouped listing and the per-ARC detail view. Every
// display decision (grouping, best-strategy selection, unit formatting,
// summary fallback) is resolved here; templates only range over the
// results.
package viewmodel

import (
	"strings"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
)

// Row is one ARC line in the listing view.
type Row struct {
	Slug        string              `json:"slug"`
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	ThreatLevel arcdata.ThreatLevel `json:"threat_level"`
	XP          int                 `json:"xp"`
	Scrap       int                 `json:"scrap"`
	HasData     bool                `json:"has_data"`
	HasVerified bool                `json:"has_verified"`
	BestSummary *string             `json:"best_summary"`
}

// Listing groups every ARC by threat level. Order always starts with the
// five fixed tiers, most dangerous first; a level nothing maps to still
// appears with an empty group. Unknown levels found in the data are
// appended after the fixed five rather than dropped.
type Listing struct {
	Order  []arcdata.ThreatLevel         `json:"order"`
	Groups map[arcdata.ThreatLevel][]Row `json:"groups"`
}

// BuildListing projects the document into the listing view. Roster order
// is preserved within each group; ARCs that have strategy data but are
// missing from the roster follow in document order. The result is a pure
// function of the document: same input, same output.
func BuildListing(doc *arcdata.Document) *Listing {
	l := &Listing{
		Order:  arcdata.ThreatOrder(),
		Groups: make(map[arcdata.ThreatLevel][]Row, 8),
	}
	for _, level := range l.Order {
		l.Groups[level] = []Row{}
	}

	inRoster := make(map[string]bool, len(doc.ArcList))
	for _, entry := range doc.ArcList {
		inRoster[entry.Slug] = true
		if arc := doc.FindArc(entry.Slug); arc != nil {
			l.add(rowFromArc(arc))
			continue
		}
		l.add(Row{
			Slug:        entry.Slug,
			Name:        entry.Name,
			Category:    entry.Category,
			ThreatLevel: entry.ThreatLevel,
			XP:          entry.XP,
			Scrap:       entry.Scrap,
		})
	}

	for i := range doc.Arcs {
		if !inRoster[doc.Arcs[i].Slug] {
			l.add(rowFromArc(&doc.Arcs[i]))
		}
	}
	return l
}

func (l *Listing) add(row Row) {
	if _, ok := l.Groups[row.ThreatLevel]; !ok {
		l.Order = append(l.Order, row.ThreatLevel)
	}
	l.Groups[row.ThreatLevel] = append(l.Groups[row.ThreatLevel], row)
}

func rowFromArc(arc *arcdata.Arc) Row {
	row := Row{
		Slug:        arc.Slug,
		Name:        arc.Name,
		Category:    arc.Category,
		ThreatLevel: arc.ThreatLevel,
		XP:          arc.XP,
		Scrap:       arc.Scrap,
		HasData:     len(arc.Strategies) > 0,
	}
	for i := range arc.Strategies {
		if arc.Strategies[i].Verified.IsVerified() {
			row.HasVerified = true
			break
		}
	}
	if best := bestStrategy(arc); best != nil {
		if summary := SummarizeItems(best.Items); summary != "" {
			row.BestSummary = &summary
		}
	}
	return row
}

// bestStrategy returns the first strategy flagged best in document order,
// or nil. More than one best flag is a data-quality finding; rendering
// takes the first so the page stays deterministic.
func bestStrategy(arc *arcdata.Arc) *arcdata.Strategy {
	for i := range arc.Strategies {
		if arc.Strategies[i].Best {
			return &arc.Strategies[i]
		}
	}
	return nil
}

// ItemLabel renders one item usage the way pages display it:
// "3x Trailblazer" or "1-2x Frag Grenade".
func ItemLabel(item arcdata.ItemUsage) string {
	return item.Units.String() + "x " + item.Name
}

// SummarizeItems renders a strategy's items as the one-line callout shown
// on the listing page, joining multiple items with " + ".
func SummarizeItems(items []arcdata.ItemUsage) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = ItemLabel(item)
	}
	return strings.Join(parts, " + ")
}
