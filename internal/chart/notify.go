package chart

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// Listener is a zero-argument callback invoked after every successful
// mutation and once when the store becomes ready.
type Listener func()

// bus is a simple observer list. Listeners run synchronously in registration
// order; each callback is isolated so one panicking subscriber cannot stop
// the rest.
type bus struct {
	mu   sync.Mutex
	next int
	subs []subscription
	log  *slog.Logger
}

type subscription struct {
	token int
	fn    Listener
}

func newBus(log *slog.Logger) *bus {
	return &bus{log: log}
}

// add registers fn and returns a token for removal. Go funcs are not
// comparable, so deregistration is by token rather than by reference.
func (b *bus) add(fn Listener) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.subs = append(b.subs, subscription{token: b.next, fn: fn})
	return b.next
}

func (b *bus) remove(token int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.token == token {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *bus) notify() {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()
	for _, s := range subs {
		b.invoke(s)
	}
}

func (b *bus) invoke(s subscription) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error("listener panic", "token", s.token, "err", rec, "stack", string(debug.Stack()))
		}
	}()
	s.fn()
}
