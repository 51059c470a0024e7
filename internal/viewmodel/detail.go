package viewmodel

import (
	"errors"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
)

// ErrArcNotFound reports a slug present in neither the strategy data nor
// the roster. The HTTP layer translates it to a 404.
var ErrArcNotFound = errors.New("arc not found")

// ItemView is one item usage with its display strings resolved.
type ItemView struct {
	Type  arcdata.ItemType `json:"type"`
	Name  string           `json:"name"`
	Units string           `json:"units"`
	Label string           `json:"label"`
}

// StrategyView is one strategy ready for the detail page.
type StrategyView struct {
	Best       bool       `json:"best"`
	Verified   string     `json:"verified"`
	IsVerified bool       `json:"is_verified"`
	Notes      string     `json:"notes,omitempty"`
	Items      []ItemView `json:"items"`
}

// Detail is the full view model for one ARC's page. A roster-only ARC has
// an empty Strategies slice and HasData false; that page renders fine, it
// just has nothing to list yet.
type Detail struct {
	Slug        string              `json:"slug"`
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	ThreatLevel arcdata.ThreatLevel `json:"threat_level"`
	XP          int                 `json:"xp"`
	Scrap       int                 `json:"scrap"`
	Health      *int                `json:"health,omitempty"`
	HasData     bool                `json:"has_data"`
	Strategies  []StrategyView      `json:"strategies"`
}

// BuildDetail resolves slug against the document. Exactly three outcomes
// exist: a full record, a roster-backed record with no strategies, or
// ErrArcNotFound. Matching is exact and case-sensitive.
func BuildDetail(doc *arcdata.Document, slug string) (*Detail, error) {
	if arc := doc.FindArc(slug); arc != nil {
		return detailFromArc(arc), nil
	}
	if entry := doc.FindSummary(slug); entry != nil {
		return &Detail{
			Slug:        entry.Slug,
			Name:        entry.Name,
			Category:    entry.Category,
			ThreatLevel: entry.ThreatLevel,
			XP:          entry.XP,
			Scrap:       entry.Scrap,
			Strategies:  []StrategyView{},
		}, nil
	}
	return nil, ErrArcNotFound
}

func detailFromArc(arc *arcdata.Arc) *Detail {
	d := &Detail{
		Slug:        arc.Slug,
		Name:        arc.Name,
		Category:    arc.Category,
		ThreatLevel: arc.ThreatLevel,
		XP:          arc.XP,
		Scrap:       arc.Scrap,
		Health:      arc.Health,
		HasData:     len(arc.Strategies) > 0,
		Strategies:  make([]StrategyView, 0, len(arc.Strategies)),
	}
	for _, strat := range arc.Strategies {
		view := StrategyView{
			Best:       strat.Best,
			Verified:   strat.Verified.String(),
			IsVerified: strat.Verified.IsVerified(),
			Notes:      strat.Notes,
			Items:      make([]ItemView, 0, len(strat.Items)),
		}
		for _, item := range strat.Items {
			view.Items = append(view.Items, ItemView{
				Type:  item.Type,
				Name:  item.Name,
				Units: item.Units.String(),
				Label: ItemLabel(item),
			})
		}
		d.Strategies = append(d.Strategies, view)
	}
	return d
}
