package tui

import (
	"strings"
	"testing"

	"deckdex/internal/catalog"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("DECKDEX_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("DECKDEX_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyleConfig_PlainHeadings(t *testing.T) {
	for _, name := range []string{"dark", "light"} {
		cfg := markdownStyleConfig(name)
		if cfg.H1.BackgroundColor != nil {
			t.Fatalf("%s: expected no H1 background; got %q", name, *cfg.H1.BackgroundColor)
		}
		if cfg.Text.Color == nil || cfg.Link.Color == nil {
			t.Fatalf("%s: expected palette colors to be set", name)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Setenv("DECKDEX_TUI_THEME", "dark")

	if got := renderMarkdown("  \n", 40); got != "" {
		t.Fatalf("expected empty output; got %q", got)
	}

	out := xansi.Strip(renderMarkdown(suggestionsMarkdown(catalog.DeckIdeas(), catalog.Recommendations()), 60))
	for _, want := range []string{suggestionsTitle, "Burn Aggro", "Monastery Swiftspear"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered markdown:\n%s", want, out)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newlines to be trimmed")
	}
}
