// Package odds tracks the remaining deck and derives exact win
// probabilities for the next deal.
package odds

import "github.com/cardsharp/drainvault/internal/deck"

// Observer receives a snapshot of the remaining deck after every deal
// and reshuffle.
type Observer interface {
	DeckUpdated(remaining []deck.Card)
}

// Watcher broadcasts deck snapshots to attached observers. Delivery is
// synchronous and in attachment order; the game is single threaded and
// observer callbacks must not re-enter the watcher.
type Watcher struct {
	observers []Observer
}

// NewWatcher creates an empty watcher
func NewWatcher() *Watcher {
	return &Watcher{
		observers: make([]Observer, 0),
	}
}

// Attach registers an observer for deck updates. Attaching an observer
// that is already registered is a no-op.
func (w *Watcher) Attach(o Observer) {
	for _, existing := range w.observers {
		if existing == o {
			return
		}
	}
	w.observers = append(w.observers, o)
}

// Detach removes an observer. Detaching an observer that was never
// attached is a no-op.
func (w *Watcher) Detach(o Observer) {
	for i, existing := range w.observers {
		if existing == o {
			w.observers = append(w.observers[:i], w.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers the same snapshot to every observer before returning.
// Observers receive a copy; holding onto it is safe.
func (w *Watcher) Notify(remaining []deck.Card) {
	snapshot := make([]deck.Card, len(remaining))
	copy(snapshot, remaining)
	for _, o := range w.observers {
		o.DeckUpdated(snapshot)
	}
}

// Len returns the number of attached observers
func (w *Watcher) Len() int {
	return len(w.observers)
}
