package tui

import (
	"math/rand/v2"
	"strings"

	"deckdex/internal/catalog"
	"deckdex/internal/config"
	"deckdex/internal/model"
	"deckdex/internal/sched"
	"deckdex/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// taskMsg carries a timer callback onto the Update loop.
type taskMsg struct{ fn func() }

// openDraftMsg loads a draft file passed on the command line.
type openDraftMsg struct{ path string }

type buildTab int

const (
	buildTabDeck buildTab = iota
	buildTabSuggestions
)

type buildPane int

const (
	paneCatalog buildPane = iota
	paneDeck
)

type appDeps struct {
	sched sched.Scheduler
	// tasks is the queue sched dispatches onto; nil when sched runs
	// callbacks itself (sched.Manual in tests).
	tasks     *sched.Queue
	timing    config.Timing
	log       *zap.Logger
	rand      *rand.Rand
	exportDir string
	draftFile string
}

type appModel struct {
	shell     *session.Shell
	notices   *session.NoticeLog
	tasks     *sched.Queue
	log       *zap.Logger
	timing    config.Timing
	exportDir string
	draftFile string

	width  int
	height int

	toasts []toast
	status string

	modal        modalKind
	pathInput    textinput.Model
	confirmFocus confirmModalFocus

	editor     textarea.Model
	spinner    spinner.Model
	watch      *draftWatch
	loadedText string

	progress progress.Model

	buildTab   buildTab
	pane       buildPane
	search     textinput.Model
	catalog    list.Model
	deckCursor int

	showHelp bool
	help     viewport.Model

	quitting bool
}

func newAppModel(deps appDeps) appModel {
	if deps.log == nil {
		deps.log = zap.NewNop()
	}
	if deps.exportDir == "" {
		deps.exportDir = "."
	}
	notices := &session.NoticeLog{}
	m := appModel{
		notices:   notices,
		tasks:     deps.tasks,
		log:       deps.log,
		timing:    deps.timing,
		exportDir: deps.exportDir,
		draftFile: deps.draftFile,
		width:     100,
		height:    32,
	}
	m.shell = session.NewShell(session.Env{
		Sched:  deps.sched,
		Notify: notices.Notify,
		Log:    deps.log,
		Timing: deps.timing,
		Rand:   deps.rand,
	})
	// Env defaults may have filled in timings.
	if m.timing == (config.Timing{}) {
		m.timing, _ = config.Default().ParseTiming()
	}

	m.pathInput = textinput.New()
	m.pathInput.Prompt = "Path: "
	m.pathInput.Placeholder = "draft.txt"

	m.editor = textarea.New()
	m.editor.Placeholder = "Paste your draft list, one card per line"
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0
	m.editor.ShowLineNumbers = false

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.progress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search by name or type"
	m.catalog = newCatalogList(catalogItems(catalog.Library()), true)

	m.help = viewport.New(m.width, 10)

	m.resize()
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.draftFile == "" {
		return m.listenTasks()
	}
	path := m.draftFile
	return tea.Batch(m.listenTasks(), func() tea.Msg { return openDraftMsg{path: path} })
}

func (m appModel) listenTasks() tea.Cmd {
	if m.tasks == nil {
		return nil
	}
	q := m.tasks
	return func() tea.Msg {
		fn, ok := q.Next()
		if !ok {
			return nil
		}
		return taskMsg{fn: fn}
	}
}

// Update routes msg and then turns any notices it produced into toasts.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	flush := next.flushNotices()
	return next, tea.Batch(cmd, flush)
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case taskMsg:
		msg.fn()
		return m, m.listenTasks()

	case toastExpiredMsg:
		m.expireToast(msg.id)
		return m, nil

	case spinner.TickMsg:
		// Let the spinner stop once the sort is over.
		if d := m.shell.Draft(); d == nil || !d.Processing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case openDraftMsg:
		return m.loadDraftFile(msg.path)

	case draftFileChangedMsg:
		return m.reloadDraftFile(msg)

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case draftWatchErrMsg:
		if msg.watch != m.watch {
			return m, nil
		}
		m.log.Warn("draft file watch error", zap.String("path", msg.watch.path), zap.Error(msg.err))
		return m, m.watch.next()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case m.editor.Focused():
		m.editor, cmd = m.editor.Update(msg)
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
	case m.modal == modalOpenFile:
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.modal {
	case modalOpenFile:
		return m.updateOpenFileModal(msg)
	case modalConfirmReset:
		return m.updateConfirmReset(msg)
	}
	if m.showHelp {
		return m.updateHelp(msg)
	}
	if m.editor.Focused() {
		return m.updateEditor(msg)
	}
	if m.search.Focused() {
		return m.updateSearch(msg)
	}

	m.status = ""
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		return m.openHelp()
	case "c":
		m.shell.ToggleConnection()
		return m, nil
	case "1", "2", "3":
		modes := model.Modes()
		return m.selectMode(modes[int(msg.String()[0]-'1')])
	case "tab":
		return m.selectMode(m.cycleMode(1))
	case "shift+tab":
		return m.selectMode(m.cycleMode(-1))
	}

	switch m.shell.Mode() {
	case model.ModeDraft:
		return m.updateDraftKey(msg)
	case model.ModeClassify:
		return m.updateClassifyKey(msg)
	case model.ModeBuild:
		return m.updateBuildKey(msg)
	}
	return m, nil
}

func (m appModel) cycleMode(step int) model.Mode {
	modes := model.Modes()
	for i, md := range modes {
		if md == m.shell.Mode() {
			return modes[(i+step+len(modes))%len(modes)]
		}
	}
	return modes[0]
}

// selectMode switches tabs. The old workflow is unmounted, so the widgets
// that mirror its state start over too.
func (m appModel) selectMode(md model.Mode) (appModel, tea.Cmd) {
	if md == m.shell.Mode() {
		return m, nil
	}
	if err := m.shell.SelectMode(md); err != nil {
		m.log.Warn("mode switch failed", zap.Error(err))
		return m, nil
	}
	m.closeWatch()
	m.editor.Reset()
	m.editor.Blur()
	m.loadedText = ""

	m.buildTab = buildTabDeck
	m.search.Reset()
	m.search.Blur()
	m.deckCursor = 0
	m.setPane(paneCatalog)
	m.catalog.SetItems(catalogItems(catalog.Library()))
	m.catalog.ResetSelected()
	return m, nil
}

func (m appModel) quit() (appModel, tea.Cmd) {
	m.close()
	m.quitting = true
	return m, tea.Quit
}

// close releases the workflow timers and the file watcher.
func (m *appModel) close() {
	m.shell.Close()
	m.closeWatch()
}

func (m *appModel) closeWatch() {
	if m.watch == nil {
		return
	}
	if err := m.watch.Close(); err != nil {
		m.log.Debug("closing draft watcher", zap.Error(err))
	}
	m.watch = nil
}

func (m *appModel) setPane(p buildPane) {
	m.pane = p
	m.catalog.SetDelegate(newCompactItemDelegate(p == paneCatalog))
}

func (m *appModel) bodyHeight() int {
	// header, tabs, rule, status, footer
	h := m.height - 5 - lipgloss.Height(m.viewToasts())
	return max(h, 8)
}

func (m *appModel) resize() {
	h := m.bodyHeight()
	left := m.width * 3 / 5

	m.editor.SetWidth(max(left-6, 20))
	m.editor.SetHeight(max(h-5, 4))
	m.progress.Width = max(m.width-10, 20)
	m.help.Width = max(m.width-2, 20)
	m.help.Height = h
	m.search.Width = max(left-8, 10)
	m.catalog.SetSize(max(left-4, 20), max(h-4, 3))
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	bodyH := m.bodyHeight()

	var body string
	switch m.modal {
	case modalOpenFile:
		body = renderModalBox(m.width, "Open draft list", m.pathInput.View()+"\n\n"+
			styleMuted().Render("enter: load   esc: cancel"))
	case modalConfirmReset:
		body = renderConfirmModal(m.width, "Reset draft?", "Clear the draft list and any sorted piles.",
			"Reset", "Cancel", m.confirmFocus)
	}
	if m.showHelp {
		body = normalizePane(m.help.View(), m.width, bodyH)
	} else if body != "" {
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, body)
	} else {
		switch m.shell.Mode() {
		case model.ModeDraft:
			body = m.viewDraft(m.width, bodyH)
		case model.ModeClassify:
			body = m.viewClassify(m.width, bodyH)
		case model.ModeBuild:
			body = m.viewBuild(m.width, bodyH)
		}
	}

	parts := []string{
		m.viewHeader(),
		m.viewTabs(),
		styleMuted().Render(strings.Repeat(glyphHRule(), max(m.width, 1))),
		body,
	}
	if toasts := m.viewToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, styleMuted().Render(m.status), styleMuted().Render(m.footerHelp()))
	return strings.Join(parts, "\n")
}

func (m appModel) viewHeader() string {
	title := styleHeading().Render("DeckDex") + "  " + styleMuted().Render("MTG Card Sorter")

	dotColor := colorDisconnected
	if m.shell.Connected() {
		dotColor = colorConnected
	}
	indicator := lipgloss.NewStyle().Foreground(dotColor).Render(glyphDot()) + " " + m.shell.IndicatorLabel()
	button := styleTab(false).Render("c: " + m.shell.ToggleLabel())
	right := indicator + "  " + button

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(right), 1)
	return title + strings.Repeat(" ", gap) + right
}

func (m appModel) viewTabs() string {
	var tabs []string
	for i, md := range model.Modes() {
		label := string(rune('1'+i)) + " " + md.Title()
		tabs = append(tabs, styleTab(md == m.shell.Mode()).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m appModel) footerHelp() string {
	switch {
	case m.modal != modalNone:
		return ""
	case m.showHelp:
		return "up/down: scroll   ?/esc: close help"
	case m.editor.Focused():
		return "esc: done editing"
	case m.search.Focused():
		return "enter: keep search   esc: clear search"
	}
	global := "1/2/3 tab: mode   c: connection   ?: help   q: quit"
	switch m.shell.Mode() {
	case model.ModeDraft:
		return "e: edit   E: $EDITOR   o: open file   s: sort   x: reset   " + global
	case model.ModeClassify:
		return "s: scan   e: export csv   E: export xlsx   y: copy csv   " + global
	case model.ModeBuild:
		if m.buildTab == buildTabSuggestions {
			return "p: back to deck   " + global
		}
		return "/: search   h/l: pane   enter/a: add   d: remove   b: build   p: suggestions   " + global
	}
	return global
}
