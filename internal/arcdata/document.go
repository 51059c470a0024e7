// Package arcdata loads and models the community damage dataset: one JSON
// document describing every ARC, the strategies known to kill it, and the
// weapon/explosive reference catalogs.
package arcdata

// ThreatLevel is the severity tier an ARC is grouped and styled by.
type ThreatLevel string

const (
	ThreatExtreme  ThreatLevel = "extreme"
	ThreatCritical ThreatLevel = "critical"
	ThreatHigh     ThreatLevel = "high"
	ThreatModerate ThreatLevel = "moderate"
	ThreatLow      ThreatLevel = "low"
)

// ThreatOrder returns the display order of threat levels, most dangerous
// first. The slice is freshly allocated on each call.
func ThreatOrder() []ThreatLevel {
	return []ThreatLevel{ThreatExtreme, ThreatCritical, ThreatHigh, ThreatModerate, ThreatLow}
}

// Known reports whether t is one of the five defined tiers.
func (t ThreatLevel) Known() bool {
	switch t {
	case ThreatExtreme, ThreatCritical, ThreatHigh, ThreatModerate, ThreatLow:
		return true
	}
	return false
}

// Label returns the human-readable form used in page headings.
func (t ThreatLevel) Label() string {
	switch t {
	case ThreatExtreme:
		return "Extreme"
	case ThreatCritical:
		return "Critical"
	case ThreatHigh:
		return "High"
	case ThreatModerate:
		return "Moderate"
	case ThreatLow:
		return "Low"
	}
	return string(t)
}

// ItemType tags an item usage as drawing from the weapon or the explosive
// catalog.
type ItemType string

const (
	ItemWeapon    ItemType = "weapon"
	ItemExplosive ItemType = "explosive"
)

// Valid reports whether t is one of the two allowed tags.
func (t ItemType) Valid() bool {
	return t == ItemWeapon || t == ItemExplosive
}

// Arc is one enemy type with its full strategy data.
type Arc struct {
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	ThreatLevel ThreatLevel `json:"threat_level"`
	Category    string      `json:"category"`
	XP          int         `json:"xp"`
	Scrap       int         `json:"scrap"`
	Health      *int        `json:"health,omitempty"`
	Strategies  []Strategy  `json:"strategies"`
}

// ArcSummary is the reduced roster entry used when an ARC has no strategy
// data yet. The roster is the canonical list of every ARC in the game.
type ArcSummary struct {
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	ThreatLevel ThreatLevel `json:"threat_level"`
	Category    string      `json:"category"`
	XP          int         `json:"xp"`
	Scrap       int         `json:"scrap"`
}

// Strategy is one documented approach to taking an ARC down.
type Strategy struct {
	Best     bool         `json:"best"`
	Verified VerifiedMark `json:"verified"`
	Notes    string       `json:"notes,omitempty"`
	Items    []ItemUsage  `json:"items"`
}

// ItemUsage is a quantity of one weapon or explosive within a Strategy.
// Names are free text and are not checked against the catalogs.
type ItemUsage struct {
	Type  ItemType `json:"type"`
	Name  string   `json:"name"`
	Units Quantity `json:"units"`
}

// Weapon is a catalog entry, informational only.
type Weapon struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Ammo  string `json:"ammo"`
}

// Explosive is a catalog entry, informational only.
type Explosive struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Document is the parsed dataset. It is immutable after Load returns;
// every consumer shares the same value read-only.
type Document struct {
	Arcs       []Arc        `json:"arcs"`
	ArcList    []ArcSummary `json:"arc_list"`
	Weapons    []Weapon     `json:"weapons"`
	Explosives []Explosive  `json:"explosives"`
	Notes      []string     `json:"notes"`
}

// FindArc returns the full record for slug, or nil. Matching is exact and
// case-sensitive.
func (d *Document) FindArc(slug string) *Arc {
	for i := range d.Arcs {
		if d.Arcs[i].Slug == slug {
			return &d.Arcs[i]
		}
	}
	return nil
}

// FindSummary returns the roster entry for slug, or nil.
func (d *Document) FindSummary(slug string) *ArcSummary {
	for i := range d.ArcList {
		if d.ArcList[i].Slug == slug {
			return &d.ArcList[i]
		}
	}
	return nil
}
