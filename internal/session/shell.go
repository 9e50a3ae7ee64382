// Package session is the workflow core behind every DeckDex front end.
//
// A Shell owns the robot connection flag and the active mode, and mounts one
// workflow (draft, classify or build) at a time. Workflows read the connection
// flag through RobotLink and never talk to each other. Nothing here is safe
// for concurrent use: drive a Shell from one goroutine and give it a
// sched.Scheduler that dispatches timer callbacks onto that goroutine.
package session

import (
	"math/rand/v2"
	"time"

	"deckdex/internal/config"
	"deckdex/internal/model"
	"deckdex/internal/sched"

	"go.uber.org/zap"
)

// RobotLink is the read-only view of the connection a workflow gets.
type RobotLink interface {
	Connected() bool
}

type Env struct {
	// Sched must dispatch onto the goroutine that owns the Shell. When nil,
	// callbacks run directly on timer goroutines; that is only safe when
	// nothing else touches the Shell, and results should be read from Notify.
	Sched  sched.Scheduler
	Notify Notify
	Log    *zap.Logger
	Timing config.Timing
	// Rand feeds the cosmetic pile counts; seed it for reproducible output.
	Rand *rand.Rand
}

func (e Env) withDefaults() Env {
	if e.Sched == nil {
		e.Sched = sched.NewTimer(nil)
	}
	if e.Notify == nil {
		e.Notify = func(Notice) {}
	}
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	if e.Timing == (config.Timing{}) {
		e.Timing, _ = config.Default().ParseTiming()
	}
	if e.Rand == nil {
		e.Rand = NewRand(0)
	}
	return e
}

// NewRand returns a PCG-backed source. Seed 0 means "pick one".
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

type workflow interface {
	Mode() model.Mode
	Close()
}

type Shell struct {
	env       Env
	connected bool
	mode      model.Mode
	active    workflow
}

// NewShell starts disconnected with the draft workflow mounted.
func NewShell(env Env) *Shell {
	s := &Shell{env: env.withDefaults()}
	s.mount(model.ModeDraft)
	return s
}

func (s *Shell) Connected() bool { return s.connected }

func (s *Shell) ToggleConnection() {
	s.connected = !s.connected
	s.env.Log.Info("robot connection toggled", zap.Bool("connected", s.connected))
}

func (s *Shell) Mode() model.Mode { return s.mode }

// SelectMode switches tabs. Leaving a mode unmounts its workflow, which
// cancels its timers and discards its state.
func (s *Shell) SelectMode(m model.Mode) error {
	if !m.Valid() {
		return modeError{mode: m}
	}
	if m == s.mode {
		return nil
	}
	s.unmount()
	s.mount(m)
	return nil
}

func (s *Shell) mount(m model.Mode) {
	switch m {
	case model.ModeDraft:
		s.active = newDraft(s.env, s)
	case model.ModeClassify:
		s.active = newClassify(s.env, s)
	case model.ModeBuild:
		s.active = newBuild(s.env, s)
	}
	s.mode = m
	s.env.Log.Debug("mode mounted", zap.String("mode", string(m)))
}

func (s *Shell) unmount() {
	if s.active == nil {
		return
	}
	s.active.Close()
	s.env.Log.Debug("mode unmounted", zap.String("mode", string(s.active.Mode())))
	s.active = nil
}

// Close unmounts the active workflow. The shell is unusable afterwards.
func (s *Shell) Close() { s.unmount() }

// Draft returns the mounted draft workflow, or nil in another mode.
func (s *Shell) Draft() *Draft {
	d, _ := s.active.(*Draft)
	return d
}

func (s *Shell) Classify() *Classify {
	c, _ := s.active.(*Classify)
	return c
}

func (s *Shell) Build() *Build {
	b, _ := s.active.(*Build)
	return b
}

func (s *Shell) IndicatorLabel() string {
	if s.connected {
		return "Robot Connected"
	}
	return "Robot Disconnected"
}

func (s *Shell) ToggleLabel() string {
	if s.connected {
		return "Disconnect"
	}
	return "Connect Robot"
}
