package session

import (
	"errors"
	"fmt"

	"deckdex/internal/model"
)

var (
	ErrNotConnected    = errors.New("robot not connected")
	ErrEmptyDraftList  = errors.New("draft list is empty")
	ErrBusy            = errors.New("robot is busy")
	ErrNothingToExport = errors.New("no scanned cards to export")
	ErrEmptyDeck       = errors.New("deck is empty")
	ErrUnknownMode     = errors.New("unknown mode")
)

type modeError struct {
	mode model.Mode
}

func (e modeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownMode, string(e.mode))
}

func (e modeError) Unwrap() error { return ErrUnknownMode }
