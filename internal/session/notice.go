package session

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a transient user-facing message (a toast in the TUI).
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func (n Notice) Destructive() bool { return n.Variant == VariantDestructive }

// Notify receives notices. It is called on the session's owning goroutine.
type Notify func(Notice)

// NoticeLog collects notices; handy for headless runs and tests.
type NoticeLog struct {
	Notices []Notice
}

func (l *NoticeLog) Notify(n Notice) { l.Notices = append(l.Notices, n) }

// Drain returns the collected notices and clears the log.
func (l *NoticeLog) Drain() []Notice {
	out := l.Notices
	l.Notices = nil
	return out
}

func (l *NoticeLog) Last() (Notice, bool) {
	if len(l.Notices) == 0 {
		return Notice{}, false
	}
	return l.Notices[len(l.Notices)-1], true
}

func notConnectedNotice(action string) Notice {
	return Notice{
		Title:       "Robot Not Connected",
		Description: "Please connect your robot before starting the " + action + ".",
		Variant:     VariantDestructive,
	}
}
