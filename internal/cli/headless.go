package cli

import (
	"context"

	"deckdex/internal/sched"
	"deckdex/internal/session"

	"github.com/spf13/cobra"
)

// envelope is the output shape of every scriptable command.
type envelope struct {
	Data    any              `json:"data"`
	Notices []session.Notice `json:"notices,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// headless drives a Shell without a screen: timers dispatch onto a queue and
// wait runs that queue on the calling goroutine.
type headless struct {
	q       *sched.Queue
	shell   *session.Shell
	notices *session.NoticeLog
}

func newHeadless(app *App, connected bool) (*headless, error) {
	timing, err := app.cfg.ParseTiming()
	if err != nil {
		return nil, err
	}
	q := sched.NewQueue()
	notices := &session.NoticeLog{}
	shell := session.NewShell(session.Env{
		Sched:  sched.NewTimer(q.Dispatch),
		Notify: notices.Notify,
		Log:    app.log,
		Timing: timing,
		Rand:   session.NewRand(app.cfg.UI.Seed),
	})
	if connected {
		shell.ToggleConnection()
	}
	return &headless{q: q, shell: shell, notices: notices}, nil
}

func (h *headless) wait(ctx context.Context, until func() bool) error {
	return h.q.Run(ctx, until)
}

func (h *headless) Close() {
	h.shell.Close()
	h.q.Close()
}

func (h *headless) ok(data any) envelope {
	return envelope{Data: data, Notices: h.notices.Drain()}
}

// fail prints the notices gathered so far next to err, so scripts see the
// same message a user would, and exits non-zero.
func (h *headless) fail(cmd *cobra.Command, app *App, err error) error {
	_ = writeOut(cmd, app, envelope{Notices: h.notices.Drain(), Error: err.Error()})
	return writeErr(cmd, err)
}
