package session

import (
	"deckdex/internal/catalog"
	"deckdex/internal/model"

	"go.uber.org/zap"
)

// Build assembles a deck from the catalog.
type Build struct {
	env  Env
	link RobotLink

	entries []model.DeckEntry
}

func newBuild(env Env, link RobotLink) *Build {
	return &Build{env: env, link: link}
}

func (b *Build) Mode() model.Mode { return model.ModeBuild }

// Search filters the catalog by name or type, ignoring case.
func (b *Build) Search(term string) []model.CatalogCard {
	return catalog.Search(term)
}

// Add puts one more copy of card in the deck, up to model.MaxCopies. Copies
// past the cap are dropped silently.
func (b *Build) Add(card model.CatalogCard) {
	for i := range b.entries {
		if b.entries[i].Card.ID != card.ID {
			continue
		}
		if b.entries[i].Quantity < model.MaxCopies {
			b.entries[i].Quantity++
		}
		return
	}
	b.entries = append(b.entries, model.DeckEntry{Card: card, Quantity: 1})
}

// Remove drops the whole entry for id, whatever its quantity.
func (b *Build) Remove(id string) bool {
	for i := range b.entries {
		if b.entries[i].Card.ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Build) Entries() []model.DeckEntry {
	out := make([]model.DeckEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Build) Size() int {
	n := 0
	for _, e := range b.entries {
		n += e.Quantity
	}
	return n
}

func (b *Build) Target() int { return model.DeckTarget }

func (b *Build) CanBuildPhysical() bool {
	return b.link.Connected() && b.Size() > 0
}

// BuildPhysical is the "Build Physical Deck" action. The robot has no deck
// building routine, so an enabled request is only recorded.
func (b *Build) BuildPhysical() error {
	if !b.link.Connected() {
		return ErrNotConnected
	}
	if b.Size() == 0 {
		return ErrEmptyDeck
	}
	b.env.Log.Info("physical deck build requested", zap.Int("cards", b.Size()), zap.Int("entries", len(b.entries)))
	return nil
}

// DeckIdeas and Recommendations are static placeholders; they do not look at
// the deck.
func (b *Build) DeckIdeas() []model.DeckIdea { return catalog.DeckIdeas() }

func (b *Build) Recommendations() []model.CardRecommendation { return catalog.Recommendations() }

func (b *Build) Close() {}
