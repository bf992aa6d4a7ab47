// Package listen wraps a transcription source into a restart-safe stream
// of recognition events.
package listen

import "errors"

// ErrAlreadyStarted is what a Source returns when capture is started while
// already running. The session swallows it; callers never see it.
var ErrAlreadyStarted = errors.New("listen: capture already started")

// Events carries the callbacks a Source feeds. OnResult delivers partial
// and final recognition text; OnEnd fires when capture halts on its own
// (e.g. after silence), which is distinct from a requested Stop.
type Events struct {
	OnResult func(text string, final bool)
	OnError  func(err error)
	OnEnd    func()
}

// Source is the external transcription capability: continuous capture that
// can be started, stopped, and dies on its own from time to time.
type Source interface {
	Start(ev Events) error
	Stop() error
}
