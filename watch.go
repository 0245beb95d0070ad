// File: hotload/watch.go
package hotload

import (
	"context"
	"time"
)

// ReloadCallback observes background reload attempts. It is invoked from
// the hot-load goroutine after every tick that found the source stale,
// with the reload error if any (nil on success).
type ReloadCallback func(s *Store, err error)

// hotLoader is the cancellable periodic reload task. done is closed when
// the loop has fully exited, so CloseHotLoad can join it.
type hotLoader struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// OpenHotLoad starts the background reload poller. The first staleness
// check happens one full interval after the call, not immediately. Opening
// an already-open store is a no-op. The poller never prevents normal
// process termination.
func (s *Store) OpenHotLoad() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.loader != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &hotLoader{cancel: cancel, done: make(chan struct{})}
	s.loader = h

	go s.hotLoadLoop(ctx, h.done)
}

// CloseHotLoad stops the background poller and waits for its loop to exit,
// guaranteeing no tick fires after it returns. A reload already in progress
// is not interrupted; the join waits for it to complete. Closing a store
// that is not hot loading is a no-op.
func (s *Store) CloseHotLoad() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.loader == nil {
		return
	}

	s.loader.cancel()
	<-s.loader.done
	s.loader = nil
}

// IsHotLoading reports whether the background poller is running.
func (s *Store) IsHotLoading() bool {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	return s.loader != nil
}

// hotLoadLoop checks staleness once per interval until cancelled. A reload
// failure is surfaced only through the optional callback; the previous
// snapshot remains authoritative and the next tick retries.
func (s *Store) hotLoadLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reloaded, err := s.reloadIfStale()
			if (reloaded || err != nil) && s.onReload != nil {
				s.onReload(s, err)
			}
		}
	}
}
