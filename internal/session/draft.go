package session

import (
	"fmt"
	"os"
	"strings"

	"deckdex/internal/catalog"
	"deckdex/internal/model"
	"deckdex/internal/sched"

	"go.uber.org/zap"
)

// Pile display counts fall in [minPileCount, minPileCount+pileCountSpan).
const (
	minPileCount  = 5
	pileCountSpan = 10
)

// Draft simulates sorting a pasted draft list into piles.
type Draft struct {
	env  Env
	link RobotLink

	text       string
	processing bool
	piles      []model.Pile
	tasks      sched.Group
}

func newDraft(env Env, link RobotLink) *Draft {
	return &Draft{env: env, link: link}
}

func (d *Draft) Mode() model.Mode { return model.ModeDraft }

func (d *Draft) Text() string { return d.text }

// SetText replaces the draft list. The text is not validated.
func (d *Draft) SetText(text string) { d.text = text }

// LoadFile replaces the draft list with the file's contents, verbatim.
func (d *Draft) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read draft list: %w", err)
	}
	d.text = string(b)
	d.env.Log.Debug("draft list loaded", zap.String("path", path), zap.Int("cards", CountCards(d.text)))
	return nil
}

// CountCards counts the non-blank lines of a draft list.
func CountCards(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func (d *Draft) Processing() bool { return d.processing }

func (d *Draft) Piles() []model.Pile {
	out := make([]model.Pile, len(d.piles))
	copy(out, d.piles)
	return out
}

// StartSorting begins a simulated sort. Rejections leave all state as is.
func (d *Draft) StartSorting() error {
	if !d.link.Connected() {
		d.env.Notify(notConnectedNotice("sort"))
		d.env.Log.Info("sort rejected", zap.Error(ErrNotConnected))
		return ErrNotConnected
	}
	if strings.TrimSpace(d.text) == "" {
		d.env.Notify(Notice{
			Title:       "No Draft List",
			Description: "Please paste your draft list before starting.",
			Variant:     VariantDestructive,
		})
		d.env.Log.Info("sort rejected", zap.Error(ErrEmptyDraftList))
		return ErrEmptyDraftList
	}
	if d.processing {
		return ErrBusy
	}

	cards := CountCards(d.text)
	d.processing = true
	d.tasks.Add(d.env.Sched.AfterFunc(d.env.Timing.SortDelay, func() { d.finishSort(cards) }))
	d.env.Log.Info("sort started", zap.Int("cards", cards), zap.Duration("delay", d.env.Timing.SortDelay))
	return nil
}

func (d *Draft) finishSort(cards int) {
	labels := catalog.PileLabels()
	piles := make([]model.Pile, 0, len(labels))
	for i, label := range labels {
		piles = append(piles, model.Pile{
			Position:     i + 1,
			Label:        label,
			DisplayCount: minPileCount + d.env.Rand.IntN(pileCountSpan),
		})
	}
	d.piles = piles
	d.processing = false

	d.env.Notify(Notice{
		Title:       "Sorting Complete!",
		Description: fmt.Sprintf("Successfully sorted %d cards into %d piles.", cards, len(piles)),
		Variant:     VariantDefault,
	})
	d.env.Log.Info("sort complete", zap.Int("cards", cards), zap.Int("piles", len(piles)))
}

// Reset clears the list, the piles and any sort in flight.
func (d *Draft) Reset() {
	d.tasks.CancelAll()
	d.text = ""
	d.piles = nil
	d.processing = false
}

func (d *Draft) Close() { d.tasks.CancelAll() }
