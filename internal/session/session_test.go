package session

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deckdex/internal/config"
	"deckdex/internal/export"
	"deckdex/internal/model"
	"deckdex/internal/sched"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	clock   *sched.Manual
	notices *NoticeLog
	shell   *Shell
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	timing, err := config.Default().ParseTiming()
	require.NoError(t, err)
	h := &harness{clock: sched.NewManual(), notices: &NoticeLog{}}
	h.shell = NewShell(Env{
		Sched:  h.clock,
		Notify: h.notices.Notify,
		Timing: timing,
		Rand:   NewRand(7),
	})
	t.Cleanup(h.shell.Close)
	return h
}

func TestShell_Defaults(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.shell.Connected())
	assert.Equal(t, model.ModeDraft, h.shell.Mode())
	require.NotNil(t, h.shell.Draft())
	assert.Nil(t, h.shell.Classify())
	assert.Nil(t, h.shell.Build())
	assert.Equal(t, "Robot Disconnected", h.shell.IndicatorLabel())
	assert.Equal(t, "Connect Robot", h.shell.ToggleLabel())
}

func TestShell_ToggleParity(t *testing.T) {
	for n := 0; n <= 7; n++ {
		h := newHarness(t)
		for i := 0; i < n; i++ {
			h.shell.ToggleConnection()
		}
		assert.Equal(t, n%2 == 1, h.shell.Connected(), "toggles=%d", n)
	}
}

func TestShell_IndicatorFollowsConnection(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	assert.Equal(t, "Robot Connected", h.shell.IndicatorLabel())
	assert.Equal(t, "Disconnect", h.shell.ToggleLabel())
}

func TestShell_SelectMode(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.shell.SelectMode(model.ModeBuild))
	assert.Equal(t, model.ModeBuild, h.shell.Mode())
	assert.NotNil(t, h.shell.Build())
	assert.Nil(t, h.shell.Draft())

	err := h.shell.SelectMode(model.Mode("scan"))
	require.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, model.ModeBuild, h.shell.Mode())
}

func TestShell_SelectSameModeKeepsState(t *testing.T) {
	h := newHarness(t)
	h.shell.Draft().SetText("Opt")
	require.NoError(t, h.shell.SelectMode(model.ModeDraft))
	assert.Equal(t, "Opt", h.shell.Draft().Text())
}

func TestShell_LeavingModeCancelsTimersAndDiscardsState(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	d := h.shell.Draft()
	d.SetText("Lightning Bolt\n")
	require.NoError(t, d.StartSorting())
	assert.Equal(t, 1, h.clock.Pending())

	require.NoError(t, h.shell.SelectMode(model.ModeClassify))
	assert.Equal(t, 0, h.clock.Pending())

	require.NoError(t, h.shell.Classify().StartScanning())
	assert.Equal(t, 1, h.clock.Pending())
	require.NoError(t, h.shell.SelectMode(model.ModeDraft))
	assert.Equal(t, 0, h.clock.Pending())

	h.clock.Advance(time.Minute)
	assert.Empty(t, h.notices.Notices)
	assert.Equal(t, "", h.shell.Draft().Text())
	assert.False(t, h.shell.Draft().Processing())
}

func TestShell_CloseCancelsTimers(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	h.shell.Draft().SetText("Opt")
	require.NoError(t, h.shell.Draft().StartSorting())
	h.shell.Close()
	assert.Equal(t, 0, h.clock.Pending())
}

func TestDraft_RejectsWhenDisconnected(t *testing.T) {
	for _, text := range []string{"", "   \n", "Lightning Bolt", "Opt\nShock\n"} {
		h := newHarness(t)
		d := h.shell.Draft()
		d.SetText(text)

		err := d.StartSorting()
		require.ErrorIs(t, err, ErrNotConnected)
		assert.False(t, d.Processing())
		assert.Empty(t, d.Piles())
		assert.Equal(t, 0, h.clock.Pending())

		n, ok := h.notices.Last()
		require.True(t, ok)
		assert.Equal(t, "Robot Not Connected", n.Title)
		assert.Equal(t, "Please connect your robot before starting the sort.", n.Description)
		assert.True(t, n.Destructive())
	}
}

func TestDraft_RejectsBlankList(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	d := h.shell.Draft()
	d.SetText(" \n\t\n")

	require.ErrorIs(t, d.StartSorting(), ErrEmptyDraftList)
	assert.False(t, d.Processing())
	n, _ := h.notices.Last()
	assert.Equal(t, "No Draft List", n.Title)
	assert.True(t, n.Destructive())
}

func TestDraft_SortsAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	d := h.shell.Draft()
	d.SetText("Lightning Bolt\nCounterspell\n\n")

	require.NoError(t, d.StartSorting())
	assert.True(t, d.Processing())
	require.ErrorIs(t, d.StartSorting(), ErrBusy)

	h.clock.Advance(2999 * time.Millisecond)
	assert.True(t, d.Processing())
	assert.Empty(t, d.Piles())

	h.clock.Advance(time.Millisecond)
	assert.False(t, d.Processing())

	piles := d.Piles()
	require.Len(t, piles, 5)
	labels := make([]string, 0, len(piles))
	for i, p := range piles {
		labels = append(labels, p.Label)
		assert.Equal(t, i+1, p.Position)
		assert.GreaterOrEqual(t, p.DisplayCount, 5)
		assert.LessOrEqual(t, p.DisplayCount, 14)
	}
	assert.Equal(t, []string{"Creatures", "Spells", "Lands", "Artifacts", "Others"}, labels)

	n, ok := h.notices.Last()
	require.True(t, ok)
	assert.Equal(t, "Sorting Complete!", n.Title)
	assert.Equal(t, "Successfully sorted 2 cards into 5 piles.", n.Description)
	assert.False(t, n.Destructive())
}

func TestDraft_PileCountsFollowSeed(t *testing.T) {
	run := func() []model.Pile {
		h := newHarness(t)
		h.shell.ToggleConnection()
		h.shell.Draft().SetText("Opt")
		require.NoError(t, h.shell.Draft().StartSorting())
		h.clock.Advance(3 * time.Second)
		return h.shell.Draft().Piles()
	}
	assert.Equal(t, run(), run())
}

func TestDraft_ResetCancelsSort(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	d := h.shell.Draft()
	d.SetText("Opt")
	require.NoError(t, d.StartSorting())

	d.Reset()
	assert.Equal(t, "", d.Text())
	assert.False(t, d.Processing())
	h.clock.Advance(time.Minute)
	assert.Empty(t, d.Piles())
	assert.Empty(t, h.notices.Notices)
}

func TestDraft_ResetClearsPiles(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	d := h.shell.Draft()
	d.SetText("Opt")
	require.NoError(t, d.StartSorting())
	h.clock.Advance(3 * time.Second)
	require.Len(t, d.Piles(), 5)

	d.Reset()
	assert.Empty(t, d.Piles())
}

func TestCountCards(t *testing.T) {
	tests := map[string]int{
		"":                                 0,
		"\n\n":                             0,
		"Lightning Bolt\nCounterspell\n\n": 2,
		"  Opt  \r\n\r\nShock":             2,
		"a\n \n\tb\nc":                     3,
	}
	for in, want := range tests {
		assert.Equal(t, want, CountCards(in), "input=%q", in)
	}
}

func TestClassify_RejectsWhenDisconnected(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.shell.SelectMode(model.ModeClassify))
	c := h.shell.Classify()

	require.ErrorIs(t, c.StartScanning(), ErrNotConnected)
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, 0, h.clock.Pending())
	n, _ := h.notices.Last()
	assert.Equal(t, "Please connect your robot before starting the scan.", n.Description)
}

func TestClassify_ProgressStepsAndCompletion(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	require.NoError(t, h.shell.SelectMode(model.ModeClassify))
	c := h.shell.Classify()
	before := c.Stats().Total()
	assert.Equal(t, 487, before)

	require.NoError(t, c.StartScanning())
	require.ErrorIs(t, c.StartScanning(), ErrBusy)

	seen := []int{c.Progress()}
	for i := 0; i < 5; i++ {
		h.clock.Advance(800 * time.Millisecond)
		seen = append(seen, c.Progress())
	}
	assert.Equal(t, []int{0, 20, 40, 60, 80, 100}, seen)
	assert.Equal(t, PhaseDone, c.Phase())
	assert.Equal(t, 0, h.clock.Pending())

	scanned := c.Scanned()
	require.Len(t, scanned, 5)
	assert.Equal(t, "Lightning Bolt", scanned[0].Name)
	assert.Equal(t, "Forest", scanned[4].Name)
	assert.Equal(t, before+5, c.Stats().Total())

	n, _ := h.notices.Last()
	assert.Equal(t, "Scanning Complete!", n.Title)
	assert.Equal(t, "Successfully scanned and classified 5 new cards.", n.Description)
}

func TestClassify_RescanClearsListAndAddsAgain(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	require.NoError(t, h.shell.SelectMode(model.ModeClassify))
	c := h.shell.Classify()

	require.NoError(t, c.StartScanning())
	h.clock.Advance(4 * time.Second)
	require.True(t, c.CanExport())

	require.NoError(t, c.StartScanning())
	assert.Equal(t, 0, c.Progress())
	assert.Empty(t, c.Scanned())
	assert.False(t, c.CanExport())

	h.clock.Advance(4 * time.Second)
	assert.Len(t, c.Scanned(), 5)
	assert.Equal(t, 497, c.Stats().Total())
}

func TestBuild_AddCapsAtFour(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.shell.SelectMode(model.ModeBuild))
	b := h.shell.Build()
	bolt := b.Search("bolt")[0]

	for i := 0; i < 5; i++ {
		b.Add(bolt)
	}
	entries := b.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Quantity)
	assert.Equal(t, 4, b.Size())
}

func TestBuild_InsertionOrderAndRemove(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.shell.SelectMode(model.ModeBuild))
	b := h.shell.Build()
	lib := b.Search("")

	b.Add(lib[3])
	b.Add(lib[0])
	b.Add(lib[3])
	b.Add(lib[5])
	b.Add(lib[0])
	b.Add(lib[0])

	entries := b.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Sol Ring", entries[0].Card.Name)
	assert.Equal(t, "Lightning Bolt", entries[1].Card.Name)
	assert.Equal(t, "Goblin Guide", entries[2].Card.Name)
	assert.Equal(t, 6, b.Size())

	assert.True(t, b.Remove(lib[0].ID))
	assert.False(t, b.Remove(lib[0].ID))
	entries = b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Sol Ring", entries[0].Card.Name)
	assert.Equal(t, "Goblin Guide", entries[1].Card.Name)
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, 60, b.Target())
}

func TestBuild_SearchBolt(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.shell.SelectMode(model.ModeBuild))
	got := h.shell.Build().Search("bolt")
	require.Len(t, got, 1)
	assert.Equal(t, "Lightning Bolt", got[0].Name)
}

func TestBuild_PhysicalBuildGate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.shell.SelectMode(model.ModeBuild))
	b := h.shell.Build()

	assert.False(t, b.CanBuildPhysical())
	require.ErrorIs(t, b.BuildPhysical(), ErrNotConnected)

	h.shell.ToggleConnection()
	assert.False(t, b.CanBuildPhysical())
	require.ErrorIs(t, b.BuildPhysical(), ErrEmptyDeck)

	b.Add(b.Search("opt")[0])
	assert.True(t, b.CanBuildPhysical())
	require.NoError(t, b.BuildPhysical())
	assert.Equal(t, 1, b.Size())
}

func TestBuild_SuggestionsAreStatic(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.shell.SelectMode(model.ModeBuild))
	b := h.shell.Build()

	ideas := b.DeckIdeas()
	recs := b.Recommendations()
	b.Add(b.Search("sol ring")[0])
	assert.Equal(t, ideas, b.DeckIdeas())
	assert.Equal(t, recs, b.Recommendations())
	require.Len(t, ideas, 3)
	assert.Equal(t, "Burn Aggro", ideas[0].Name)
	require.Len(t, recs, 3)
}

// The wall-clock scheduler feeding a queue gives the same single-goroutine
// behaviour the TUI relies on.
func TestDraft_WithTimerAndQueue(t *testing.T) {
	q := sched.NewQueue()
	defer q.Close()

	log := &NoticeLog{}
	shell := NewShell(Env{
		Sched:  sched.NewTimer(q.Dispatch),
		Notify: log.Notify,
		Timing: config.Timing{SortDelay: 5 * time.Millisecond, ScanInterval: time.Millisecond, ScanStep: 50, NoticeTTL: time.Second},
		Rand:   NewRand(1),
	})
	defer shell.Close()
	shell.ToggleConnection()
	d := shell.Draft()
	d.SetText("Opt\nShock")
	require.NoError(t, d.StartSorting())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Run(ctx, func() bool { return !d.Processing() }))
	assert.Len(t, d.Piles(), 5)
	n, _ := log.Last()
	assert.Equal(t, "Successfully sorted 2 cards into 5 piles.", n.Description)
}

func TestClassify_ExportNeedsScannedCards(t *testing.T) {
	h := newHarness(t)
	h.shell.ToggleConnection()
	require.NoError(t, h.shell.SelectMode(model.ModeClassify))
	c := h.shell.Classify()

	var buf strings.Builder
	require.ErrorIs(t, c.ExportCSV(&buf), ErrNothingToExport)
	assert.Empty(t, buf.String())
	dir := t.TempDir()
	_, err := c.ExportFile(dir, export.FormatCSV)
	require.ErrorIs(t, err, ErrNothingToExport)

	require.NoError(t, c.StartScanning())
	h.clock.Advance(4 * time.Second)

	require.NoError(t, c.ExportCSV(&buf))
	lines := strings.Split(buf.String(), "\n")
	assert.Len(t, lines, len(c.Scanned())+1)
	assert.Equal(t, "Name,Type,Cost,Rarity,Set", lines[0])

	path, err := c.ExportFile(dir, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mtg_library.xlsx"), path)
}

func TestShell_DefaultSchedulerCompletesSort(t *testing.T) {
	done := make(chan Notice, 1)
	shell := NewShell(Env{
		Notify: func(n Notice) { done <- n },
		Timing: config.Timing{
			SortDelay:    10 * time.Millisecond,
			ScanInterval: 10 * time.Millisecond,
			ScanStep:     20,
			NoticeTTL:    time.Second,
		},
		Rand: NewRand(7),
	})
	t.Cleanup(shell.Close)
	shell.ToggleConnection()
	d := shell.Draft()
	d.SetText("Opt\nShock\n")
	require.NoError(t, d.StartSorting())

	select {
	case n := <-done:
		assert.Equal(t, "Sorting Complete!", n.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("sort never completed on the default scheduler")
	}
	// The notice is sent after the piles are set, so this read is ordered.
	assert.Len(t, d.Piles(), 5)
	assert.False(t, d.Processing())
}
