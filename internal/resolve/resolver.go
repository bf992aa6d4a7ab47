// Package resolve turns a spoken command into an intent. Remote providers
// are tried in configured order; every failure mode is absorbed here and
// the offline brain answers when nothing else does.
package resolve

import (
	"context"
	log "log/slog"
	"time"

	"atlas/internal/brain"
	"atlas/internal/intent"
)

// Provider is one remote intent-resolution backend.
//
// A (nil, nil) return means "not applicable" (e.g. no credential
// configured) and advances the chain silently. An error is a transient
// failure: logged, not retried, chain advances. A non-nil intent must
// already be validated by the provider.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, text string, cc intent.Context) (*intent.Intent, error)
}

// Chain iterates providers sequentially — never concurrently, so fallback
// order stays deterministic — and terminates in the offline matcher.
type Chain struct {
	providers []Provider
	timeout   time.Duration
}

func NewChain(timeout time.Duration, providers ...Provider) *Chain {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Chain{providers: providers, timeout: timeout}
}

// Resolve is total: for every input it returns a valid intent and no error
// escapes. The user-facing contract is "the assistant always responds".
func (c *Chain) Resolve(ctx context.Context, text string, cc intent.Context) intent.Intent {
	for _, p := range c.providers {
		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		it, err := p.Resolve(pctx, text, cc)
		cancel()

		if err != nil {
			log.Warn("provider failed, trying next", "provider", p.Name(), "err", err)
			continue
		}
		if it == nil {
			log.Debug("provider not applicable", "provider", p.Name())
			continue
		}
		if err := it.Validate(); err != nil {
			log.Warn("provider returned invalid intent", "provider", p.Name(), "err", err)
			continue
		}

		log.Info("command resolved", "provider", p.Name(), "kind", it.Kind)
		return *it
	}

	return brain.Match(text)
}
