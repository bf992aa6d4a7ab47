// Package speech serializes spoken output. The platform synthesis
// capability will happily overlap utterances; the wrapper makes sure only
// the newest one plays.
package speech

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"sync"
)

// Output is the external speech synthesis capability.
type Output interface {
	// Speak blocks until the utterance finishes playing or ctx is done.
	Speak(ctx context.Context, text string) error
	// Cancel stops whatever is currently playing.
	Cancel()
}

// Speaker serializes utterances. Each Say cancels its predecessor before
// its own playback starts, and waits for the predecessor to fully unwind,
// so at most one Speak is ever in flight — even when the predecessor's
// goroutine has not begun playing yet.
type Speaker struct {
	out Output

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSpeaker(out Output) *Speaker {
	return &Speaker{out: out}
}

func (sp *Speaker) Say(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// The cancel handle is published before the playback goroutine
	// starts, so a later Say always finds something to cancel.
	sp.mu.Lock()
	prevCancel, prevDone := sp.cancel, sp.done
	sp.cancel, sp.done = cancel, done
	sp.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
	}
	sp.out.Cancel()

	go func() {
		defer close(done)
		defer cancel()

		// Wait for the superseded utterance to unwind; this keeps
		// playback single-flight.
		if prevDone != nil {
			<-prevDone
		}
		if ctx.Err() != nil {
			return
		}
		if err := sp.out.Speak(ctx, text); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("speech failed", "err", err)
		}
	}()
}

func (sp *Speaker) Cancel() {
	sp.mu.Lock()
	if sp.cancel != nil {
		sp.cancel()
		sp.cancel = nil
	}
	sp.mu.Unlock()
	sp.out.Cancel()
}
