// Package catalog holds the built-in reference data: the searchable card
// library, the card batch a simulated scan produces, the sorter's pile labels
// and the static suggestion panels.
//
// All accessors return copies; the reference slices are never handed out.
package catalog

import (
	"iter"
	"slices"
	"strings"

	"deckdex/internal/model"
)

var library = []model.CatalogCard{
	{ID: "1", Name: "Lightning Bolt", Type: "Instant", Cost: "R", Rarity: "Common", Owned: 4},
	{ID: "2", Name: "Serra Angel", Type: "Creature", Cost: "3WW", Power: "4", Toughness: "4", Rarity: "Uncommon", Owned: 2},
	{ID: "3", Name: "Counterspell", Type: "Instant", Cost: "UU", Rarity: "Common", Owned: 3},
	{ID: "4", Name: "Sol Ring", Type: "Artifact", Cost: "1", Rarity: "Uncommon", Owned: 1},
	{ID: "5", Name: "Opt", Type: "Instant", Cost: "U", Rarity: "Common", Owned: 4},
	{ID: "6", Name: "Goblin Guide", Type: "Creature", Cost: "R", Power: "2", Toughness: "2", Rarity: "Rare", Owned: 2},
}

var scanBatch = []model.ScannedCard{
	{ID: "1", Name: "Lightning Bolt", Type: "Instant", Cost: "R", Rarity: "Common", Set: "M21"},
	{ID: "2", Name: "Serra Angel", Type: "Creature - Angel", Cost: "3WW", Rarity: "Uncommon", Set: "M21"},
	{ID: "3", Name: "Counterspell", Type: "Instant", Cost: "UU", Rarity: "Common", Set: "TSR"},
	{ID: "4", Name: "Sol Ring", Type: "Artifact", Cost: "1", Rarity: "Uncommon", Set: "CMR"},
	{ID: "5", Name: "Forest", Type: "Basic Land", Cost: "", Rarity: "Common", Set: "M21"},
}

var pileLabels = []string{"Creatures", "Spells", "Lands", "Artifacts", "Others"}

// baselineStats is what the library held before this session scanned anything.
var baselineStats = model.LibraryStats{Creatures: 189, Spells: 156, Lands: 98, Artifacts: 44}

var deckIdeas = []model.DeckIdea{
	{
		Name:         "Burn Aggro",
		Theme:        "Fast damage",
		Colors:       []string{"Red"},
		MatchPercent: 85,
		Description:  "Lightning-fast deck focused on dealing direct damage",
	},
	{
		Name:         "Control",
		Theme:        "Counter & Control",
		Colors:       []string{"Blue", "White"},
		MatchPercent: 72,
		Description:  "Control the game with counterspells and powerful finishers",
	},
	{
		Name:         "Artifacts",
		Theme:        "Artifact synergy",
		Colors:       []string{"Colorless"},
		MatchPercent: 45,
		Description:  "Utilize powerful artifacts and colorless spells",
	},
}

var recommendations = []model.CardRecommendation{
	{Name: "Shock", Reason: "Perfect complement to Lightning Bolt", Synergy: "High"},
	{Name: "Monastery Swiftspear", Reason: "Great aggressive creature for burn", Synergy: "High"},
	{Name: "Brainstorm", Reason: "Synergizes with Counterspell strategy", Synergy: "Medium"},
}

func Library() []model.CatalogCard { return slices.Clone(library) }

// ScanBatch is the fixed set of cards every simulated scan "finds".
func ScanBatch() []model.ScannedCard { return slices.Clone(scanBatch) }

func PileLabels() []string { return slices.Clone(pileLabels) }

func BaselineStats() model.LibraryStats { return baselineStats }

func DeckIdeas() []model.DeckIdea {
	out := make([]model.DeckIdea, 0, len(deckIdeas))
	for _, d := range deckIdeas {
		d.Colors = slices.Clone(d.Colors)
		out = append(out, d)
	}
	return out
}

func Recommendations() []model.CardRecommendation { return slices.Clone(recommendations) }

// Lookup finds a library card by id.
func Lookup(id string) (model.CatalogCard, bool) {
	id = strings.TrimSpace(id)
	for _, c := range library {
		if c.ID == id {
			return c, true
		}
	}
	return model.CatalogCard{}, false
}

// Matches yields the cards whose name or type contains term, ignoring case.
// An empty term matches everything.
func Matches(cards []model.CatalogCard, term string) iter.Seq[model.CatalogCard] {
	needle := strings.ToLower(term)
	return func(yield func(model.CatalogCard) bool) {
		for _, c := range cards {
			if !matches(c, needle) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func matches(c model.CatalogCard, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Type), needle)
}

// Search filters the built-in library.
func Search(term string) []model.CatalogCard {
	out := slices.Collect(Matches(library, term))
	if out == nil {
		out = []model.CatalogCard{}
	}
	return out
}
