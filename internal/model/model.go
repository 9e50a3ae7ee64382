package model

import (
	"fmt"
	"strings"
)

type Mode string

const (
	ModeDraft    Mode = "draft"
	ModeClassify Mode = "classify"
	ModeBuild    Mode = "build"
)

// Modes lists the modes in tab order.
func Modes() []Mode {
	return []Mode{ModeDraft, ModeClassify, ModeBuild}
}

func (m Mode) Valid() bool {
	switch m {
	case ModeDraft, ModeClassify, ModeBuild:
		return true
	default:
		return false
	}
}

// Title is the tab label shown for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeDraft:
		return "Draft Sort"
	case ModeClassify:
		return "Classify"
	case ModeBuild:
		return "Build Deck"
	default:
		return string(m)
	}
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode: %q (expected draft|classify|build)", s)
	}
	return m, nil
}

type CatalogCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Cost      string `json:"cost"`
	Power     string `json:"power,omitempty"`
	Toughness string `json:"toughness,omitempty"`
	Rarity    string `json:"rarity"`
	// Owned is how many copies the library holds.
	Owned int `json:"owned"`
}

func (c CatalogCard) HasStats() bool {
	return c.Power != "" || c.Toughness != ""
}

// MaxCopies caps the quantity of a single card in a deck.
const MaxCopies = 4

// DeckTarget is the deck size shown as the goal in the build view.
const DeckTarget = 60

type DeckEntry struct {
	Card     CatalogCard `json:"card"`
	Quantity int         `json:"quantity"`
}

type ScannedCard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Cost   string `json:"cost"`
	Rarity string `json:"rarity"`
	Set    string `json:"set"`
}

type Category string

const (
	CategoryCreature Category = "creature"
	CategorySpell    Category = "spell"
	CategoryLand     Category = "land"
	CategoryArtifact Category = "artifact"
)

// Classify buckets a type line. Artifact creatures count as creatures and
// anything that is not a creature, land or artifact counts as a spell.
func Classify(typeLine string) Category {
	t := strings.ToLower(typeLine)
	switch {
	case strings.Contains(t, "creature"):
		return CategoryCreature
	case strings.Contains(t, "land"):
		return CategoryLand
	case strings.Contains(t, "artifact"):
		return CategoryArtifact
	default:
		return CategorySpell
	}
}

// LibraryStats counts the library by category. The total is always derived
// from the categories so it can never drift from them.
type LibraryStats struct {
	Creatures int `json:"creatures"`
	Spells    int `json:"spells"`
	Lands     int `json:"lands"`
	Artifacts int `json:"artifacts"`
}

func (s LibraryStats) Total() int {
	return s.Creatures + s.Spells + s.Lands + s.Artifacts
}

// Add returns the stats with every card in cards counted once.
func (s LibraryStats) Add(cards []ScannedCard) LibraryStats {
	for _, c := range cards {
		switch Classify(c.Type) {
		case CategoryCreature:
			s.Creatures++
		case CategoryLand:
			s.Lands++
		case CategoryArtifact:
			s.Artifacts++
		default:
			s.Spells++
		}
	}
	return s
}

type Pile struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	// DisplayCount is cosmetic; the sorter does not actually count cards per pile.
	DisplayCount int `json:"displayCount"`
}

type DeckIdea struct {
	Name         string   `json:"name"`
	Theme        string   `json:"theme"`
	Colors       []string `json:"colors"`
	MatchPercent int      `json:"matchPercent"`
	Description  string   `json:"description"`
}

type CardRecommendation struct {
	Name    string `json:"name"`
	Reason  string `json:"reason"`
	Synergy string `json:"synergy"`
}
