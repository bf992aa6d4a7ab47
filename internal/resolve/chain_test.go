package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/brain"
	"atlas/internal/intent"
)

type stubProvider struct {
	name  string
	it    *intent.Intent
	err   error
	block bool // wait for ctx before answering
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Resolve(ctx context.Context, text string, cc intent.Context) (*intent.Intent, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.it, s.err
}

func TestFirstSuccessShortCircuits(t *testing.T) {
	want := &intent.Intent{Kind: intent.Response, Response: "Hi."}
	first := &stubProvider{name: "first", it: want}
	second := &stubProvider{name: "second"}

	chain := NewChain(time.Second, first, second)
	got := chain.Resolve(context.Background(), "hello", intent.Context{})

	assert.Equal(t, *want, got)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestUnavailableAndFailingProvidersAreSkipped(t *testing.T) {
	unavailable := &stubProvider{name: "no-key"} // nil, nil
	failing := &stubProvider{name: "down", err: errors.New("rate limited")}
	invalid := &stubProvider{name: "weird", it: &intent.Intent{Kind: intent.Navigate, Response: "??"}} // no target
	good := &stubProvider{name: "good", it: &intent.Intent{Kind: intent.Response, Response: "Works."}}

	chain := NewChain(time.Second, unavailable, failing, invalid, good)
	got := chain.Resolve(context.Background(), "anything", intent.Context{})

	assert.Equal(t, "Works.", got.Response)
	assert.Equal(t, 1, unavailable.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, invalid.calls)
}

func TestNoRetrySingleCallPerProvider(t *testing.T) {
	failing := &stubProvider{name: "down", err: errors.New("boom")}
	chain := NewChain(time.Second, failing)
	chain.Resolve(context.Background(), "go home", intent.Context{})
	assert.Equal(t, 1, failing.calls)
}

func TestTimeoutAdvancesChain(t *testing.T) {
	slow := &stubProvider{name: "slow", block: true}
	chain := NewChain(20*time.Millisecond, slow)

	start := time.Now()
	got := chain.Resolve(context.Background(), "go home", intent.Context{})

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, intent.Navigate, got.Kind)
}

func TestAllProvidersFailEqualsMatcherAlone(t *testing.T) {
	texts := []string{"go home", "what is blood pressure", "heart rate 110", "gibberish input"}
	for _, text := range texts {
		chain := NewChain(time.Second,
			&stubProvider{name: "a", err: errors.New("network")},
			&stubProvider{name: "b", err: errors.New("deprecated model")},
			&stubProvider{name: "c", err: errors.New("malformed payload")},
		)
		got := chain.Resolve(context.Background(), text, intent.Context{})
		assert.Equal(t, brain.Match(text), got, "text %q", text)
	}
}

func TestResolutionIsTotal(t *testing.T) {
	chain := NewChain(time.Second) // no providers at all
	for _, text := range []string{"", "???", "open analysis", "🎈"} {
		got := chain.Resolve(context.Background(), text, intent.Context{})
		require.NoError(t, got.Validate(), "text %q", text)
		assert.NotEmpty(t, got.Response)
	}
}
