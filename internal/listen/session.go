package listen

import (
	"errors"
	"fmt"
	log "log/slog"
	"sync"
)

// Callbacks receive the session's event stream. They run on the source's
// delivery goroutine and must not call back into the session.
type Callbacks struct {
	OnPartial func(text string)
	OnFinal   func(text string)
	OnError   func(err error)
}

// Session presents a Source as an "always listening" stream: a second
// Start is a no-op, Stop suppresses anything delivered after it returns,
// and an unsolicited end of capture restarts the source unless Stop was
// called since the last Start.
type Session struct {
	src Source

	mu     sync.Mutex
	active bool
	cbs    Callbacks
}

func NewSession(src Source) *Session {
	return &Session{src: src}
}

// Start begins capture. Calling Start while capture is active is a no-op;
// the source's double-start error is swallowed.
func (s *Session) Start(cbs Callbacks) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil
	}
	s.active = true
	s.cbs = cbs
	s.mu.Unlock()

	err := s.src.Start(s.events())
	if err != nil && !errors.Is(err, ErrAlreadyStarted) {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		return fmt.Errorf("start capture: %w", err)
	}
	return nil
}

// Stop ends capture. No callback fires after Stop returns; an in-flight
// delivery racing Stop is discarded.
func (s *Session) Stop() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
	if err := s.src.Stop(); err != nil {
		log.Debug("capture stop", "err", err)
	}
}

func (s *Session) events() Events {
	return Events{
		OnResult: s.handleResult,
		OnError:  s.handleError,
		OnEnd:    s.handleEnd,
	}
}

// Dispatch happens under the session mutex: once Stop has taken the lock
// and cleared active, no later delivery can get through.

func (s *Session) handleResult(text string, final bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	if final {
		if s.cbs.OnFinal != nil {
			s.cbs.OnFinal(text)
		}
	} else if s.cbs.OnPartial != nil {
		s.cbs.OnPartial(text)
	}
}

func (s *Session) handleError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	if s.cbs.OnError != nil {
		s.cbs.OnError(err)
	}
}

// handleEnd models "always listening": the source stopped on its own, so
// bring it back up unless an explicit Stop happened in between.
func (s *Session) handleEnd() {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if !active {
		return
	}

	log.Debug("capture ended on its own, restarting")
	if err := s.src.Start(s.events()); err != nil && !errors.Is(err, ErrAlreadyStarted) {
		s.handleError(fmt.Errorf("restart capture: %w", err))
		return
	}

	// A Stop racing the restart may have run between the active check and
	// the dial; capture must not outlive it.
	s.mu.Lock()
	active = s.active
	s.mu.Unlock()
	if !active {
		if err := s.src.Stop(); err != nil {
			log.Debug("capture stop", "err", err)
		}
	}
}
