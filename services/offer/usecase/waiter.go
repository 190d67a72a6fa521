package usecase

import "sync"

// roundWaiters lets Respond wake the round that is waiting on a trip
type roundWaiters struct {
	mu     sync.Mutex
	byTrip map[string]chan struct{}
}

func newRoundWaiters() *roundWaiters {
	return &roundWaiters{byTrip: make(map[string]chan struct{})}
}

// register must run before offers are delivered so no answer is missed
func (w *roundWaiters) register(tripID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	w.mu.Lock()
	w.byTrip[tripID] = ch
	w.mu.Unlock()

	return ch, func() {
		w.mu.Lock()
		if w.byTrip[tripID] == ch {
			delete(w.byTrip, tripID)
		}
		w.mu.Unlock()
	}
}

func (w *roundWaiters) signal(tripID string) {
	w.mu.Lock()
	ch, ok := w.byTrip[tripID]
	w.mu.Unlock()
	if !ok {
		return
	}

	select {
	case ch <- struct{}{}:
	default:
	}
}
