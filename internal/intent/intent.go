// Package intent holds the shared vocabulary of the voice-command
// subsystem: the structured result of interpreting an utterance and the
// application context a command is resolved against.
package intent

import (
	"fmt"

	"atlas/internal/vitals"
)

type Kind string

const (
	Navigate Kind = "NAVIGATE"
	Action   Kind = "ACTION"
	Response Kind = "RESPONSE"
	System   Kind = "SYSTEM"
)

// Intent is the unit of meaning a resolver produces. The json tags match
// the wire schema remote providers are instructed to emit.
type Intent struct {
	Kind     Kind   `json:"type"`
	Target   string `json:"target,omitempty"`
	Action   string `json:"action,omitempty"`
	Response string `json:"response"`
}

// Normalize folds accepted aliases onto the canonical kinds. The offline
// matcher historically labelled answers "QA"; providers say "RESPONSE".
func (it *Intent) Normalize() {
	if it.Kind == "QA" {
		it.Kind = Response
	}
}

// Validate enforces the per-kind field requirements. A resolver must never
// hand an invalid intent onward.
func (it *Intent) Validate() error {
	switch it.Kind {
	case Navigate:
		if it.Target == "" {
			return fmt.Errorf("navigate intent without target")
		}
	case Action:
		if it.Action == "" {
			return fmt.Errorf("action intent without action")
		}
	case Response, System:
	default:
		return fmt.Errorf("unknown intent kind %q", it.Kind)
	}
	if it.Response == "" {
		return fmt.Errorf("intent without response text")
	}
	return nil
}

// Context is the application state a single command is resolved against.
// It is built fresh per command and never cached.
type Context struct {
	Route  string
	Vitals *vitals.Snapshot
}

// VitalsSummary renders the snapshot for prompt construction. A nil
// snapshot is reported as unavailable rather than omitted, so providers
// do not invent readings.
func (c Context) VitalsSummary() string {
	if c.Vitals == nil {
		return "not currently available"
	}
	return c.Vitals.String()
}
