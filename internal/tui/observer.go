package tui

import tea "github.com/charmbracelet/bubbletea"

// subscribable is the slice of a store the watcher needs.
type subscribable interface {
	Subscribe(fn func()) func()
}

// StoreWatcher coalesces change notifications from any number of stores
// into a single channel Bubble Tea can wait on. Notifications arriving
// while one is already pending collapse into it; the views re-read the
// stores wholesale on every StoreChangedMsg anyway.
type StoreWatcher struct {
	ch      chan struct{}
	cancels []func()
}

// NewStoreWatcher subscribes to the given stores.
func NewStoreWatcher(stores ...subscribable) *StoreWatcher {
	w := &StoreWatcher{ch: make(chan struct{}, 1)}
	for _, s := range stores {
		w.cancels = append(w.cancels, s.Subscribe(w.notify))
	}
	return w
}

func (w *StoreWatcher) notify() {
	select {
	case w.ch <- struct{}{}:
	default: // a wakeup is already pending
	}
}

// WaitForChange blocks until any store publishes, then delivers one
// StoreChangedMsg. The app re-arms it from its Update loop.
func (w *StoreWatcher) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		<-w.ch
		return StoreChangedMsg{}
	}
}

// Close detaches from all stores.
func (w *StoreWatcher) Close() {
	for _, cancel := range w.cancels {
		cancel()
	}
	w.cancels = nil
}
