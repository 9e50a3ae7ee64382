package tui

import (
	"os"
	"strings"
	"sync"
)

// Some fonts render box and dot glyphs badly, so every affordance has an
// ASCII fallback selected by ui.glyphs or DECKDEX_TUI_GLYPHS.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

// applyGlyphPreference uses the configured value unless the environment
// overrides it. Unknown values are ignored.
func applyGlyphPreference(configured string) {
	v := configured
	if env := strings.TrimSpace(os.Getenv("DECKDEX_TUI_GLYPHS")); env != "" {
		v = env
	}
	if gs, ok := parseGlyphSet(v); ok {
		setGlyphs(gs)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphDot() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "●"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "•"
}

func glyphPointer() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}
