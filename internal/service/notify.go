package service

import (
	"log/slog"
	"sync"
)

// NoticeLevel is the severity of a user-facing notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short message for the user, shown as a toast or status line.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier delivers user-facing notices.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes notices to logger.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(n Notice) {
	if n.Level == NoticeError {
		l.logger.Error(n.Message)
		return
	}
	l.logger.Info(n.Message)
}

// Inbox buffers notices until a UI drains them.
type Inbox struct {
	mu      sync.Mutex
	notices []Notice
}

func (b *Inbox) Notify(n Notice) {
	b.mu.Lock()
	b.notices = append(b.notices, n)
	b.mu.Unlock()
}

// Drain returns and clears the buffered notices.
func (b *Inbox) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	return out
}

// MultiNotifier fans a notice out to several notifiers.
func MultiNotifier(ns ...Notifier) Notifier {
	return NotifierFunc(func(n Notice) {
		for _, x := range ns {
			if x != nil {
				x.Notify(n)
			}
		}
	})
}

// inFlight is a per-order set of running mutations.
type inFlight struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{ids: make(map[int64]struct{})}
}

// acquire marks id busy. It returns false if id already was.
func (f *inFlight) acquire(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.ids[id]; busy {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

func (f *inFlight) release(id int64) {
	f.mu.Lock()
	delete(f.ids, id)
	f.mu.Unlock()
}

func (f *inFlight) has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, busy := f.ids[id]
	return busy
}
