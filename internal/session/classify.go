package session

import (
	"fmt"
	"io"

	"deckdex/internal/catalog"
	"deckdex/internal/export"
	"deckdex/internal/model"
	"deckdex/internal/sched"

	"go.uber.org/zap"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScanning:
		return "scanning"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Classify simulates scanning a batch of cards into the library.
type Classify struct {
	env  Env
	link RobotLink

	phase    Phase
	progress int
	scanned  []model.ScannedCard
	stats    model.LibraryStats
	tasks    sched.Group
}

func newClassify(env Env, link RobotLink) *Classify {
	return &Classify{env: env, link: link, stats: catalog.BaselineStats()}
}

func (c *Classify) Mode() model.Mode { return model.ModeClassify }

func (c *Classify) Phase() Phase { return c.phase }

func (c *Classify) Scanning() bool { return c.phase == PhaseScanning }

// Progress is the scan progress in percent (0..100).
func (c *Classify) Progress() int { return c.progress }

func (c *Classify) Stats() model.LibraryStats { return c.stats }

func (c *Classify) Scanned() []model.ScannedCard {
	out := make([]model.ScannedCard, len(c.scanned))
	copy(out, c.scanned)
	return out
}

func (c *Classify) StartScanning() error {
	if !c.link.Connected() {
		c.env.Notify(notConnectedNotice("scan"))
		c.env.Log.Info("scan rejected", zap.Error(ErrNotConnected))
		return ErrNotConnected
	}
	if c.phase == PhaseScanning {
		return ErrBusy
	}

	c.phase = PhaseScanning
	c.progress = 0
	c.scanned = nil
	c.tasks.Add(c.env.Sched.Every(c.env.Timing.ScanInterval, c.tick))
	c.env.Log.Info("scan started", zap.Duration("interval", c.env.Timing.ScanInterval))
	return nil
}

func (c *Classify) tick() {
	if c.phase != PhaseScanning {
		return
	}
	c.progress += c.env.Timing.ScanStep
	c.env.Log.Debug("scan progress", zap.Int("progress", c.progress))
	if c.progress < 100 {
		return
	}

	c.tasks.CancelAll()
	c.progress = 100
	c.phase = PhaseDone
	batch := catalog.ScanBatch()
	c.scanned = batch
	c.stats = c.stats.Add(batch)

	c.env.Notify(Notice{
		Title:       "Scanning Complete!",
		Description: fmt.Sprintf("Successfully scanned and classified %d new cards.", len(batch)),
		Variant:     VariantDefault,
	})
	c.env.Log.Info("scan complete", zap.Int("cards", len(batch)), zap.Int("libraryTotal", c.stats.Total()))
}

func (c *Classify) CanExport() bool { return len(c.scanned) > 0 }

// ExportCSV writes the scanned cards as mtg_library.csv content.
func (c *Classify) ExportCSV(w io.Writer) error {
	if !c.CanExport() {
		return ErrNothingToExport
	}
	return export.WriteCSV(w, c.scanned)
}

// ExportFile writes the scanned cards into dir and returns the file path.
func (c *Classify) ExportFile(dir string, f export.Format) (string, error) {
	if !c.CanExport() {
		return "", ErrNothingToExport
	}
	path, err := export.WriteFile(dir, f, c.scanned)
	if err != nil {
		return "", err
	}
	c.env.Log.Info("library exported", zap.String("path", path), zap.Int("cards", len(c.scanned)))
	return path, nil
}

func (c *Classify) Close() { c.tasks.CancelAll() }
