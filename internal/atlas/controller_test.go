package atlas

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/intent"
	"atlas/internal/listen"
	"atlas/internal/resolve"
	"atlas/internal/speech"
)

type fakeSource struct {
	mu      sync.Mutex
	running bool
	ev      listen.Events
}

func (f *fakeSource) Start(ev listen.Events) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return listen.ErrAlreadyStarted
	}
	f.running = true
	f.ev = ev
	return nil
}

func (f *fakeSource) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	return nil
}

func (f *fakeSource) emit(text string, final bool) {
	f.mu.Lock()
	ev := f.ev
	f.mu.Unlock()
	ev.OnResult(text, final)
}

func (f *fakeSource) emitError(err error) {
	f.mu.Lock()
	ev := f.ev
	f.mu.Unlock()
	ev.OnError(err)
}

type fakeVoice struct {
	mu      sync.Mutex
	spoken  []string
	cancels int
}

func (f *fakeVoice) Speak(ctx context.Context, text string) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	f.mu.Unlock()
	return nil
}

func (f *fakeVoice) Cancel() {
	f.mu.Lock()
	f.cancels++
	f.mu.Unlock()
}

func (f *fakeVoice) said() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

// blockingResolver parks every resolution until released.
type blockingResolver struct {
	release chan struct{}
	result  intent.Intent
}

func (b *blockingResolver) Resolve(ctx context.Context, text string, cc intent.Context) intent.Intent {
	<-b.release
	return b.result
}

type harness struct {
	ctrl  *Controller
	src   *fakeSource
	voice *fakeVoice

	mu         sync.Mutex
	navs       []string
	transcript string
}

func (h *harness) navigations() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.navs...)
}

func (h *harness) lastTranscript() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transcript
}

func newHarness(t *testing.T, resolver Resolver, settle time.Duration) *harness {
	t.Helper()

	h := &harness{src: &fakeSource{}, voice: &fakeVoice{}}
	if resolver == nil {
		// Offline: providers disabled, matcher only.
		resolver = resolve.NewChain(time.Second)
	}

	h.ctrl = New(listen.NewSession(h.src), speech.NewSpeaker(h.voice), resolver, Config{
		WakePhrases: []string{"hey atlas", "atlas"},
		SettleDelay: settle,
		Navigate: func(target string) {
			h.mu.Lock()
			h.navs = append(h.navs, target)
			h.mu.Unlock()
		},
		OnTranscript: func(text string) {
			h.mu.Lock()
			h.transcript = text
			h.mu.Unlock()
		},
	})

	require.NoError(t, h.ctrl.Start())
	t.Cleanup(h.ctrl.Stop)
	return h
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

func TestStartsPassive(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)
	assert.Equal(t, Passive, h.ctrl.Phase())
}

func TestPassiveIgnoresAmbientNoise(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	h.src.emit("the patient seems stable today", false)
	h.src.emit("the patient seems stable today", true)

	assert.Equal(t, Passive, h.ctrl.Phase())
	assert.Empty(t, h.voice.said())
}

func TestWakePhraseActivatesListening(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	// A partial fragment is enough to wake.
	h.src.emit("hey atlas", false)

	assert.Equal(t, Listening, h.ctrl.Phase())
	eventually(t, func() bool {
		said := h.voice.said()
		return len(said) == 1 && said[0] == "Yes?"
	}, "acknowledgement not spoken")
}

func TestEndToEndNavigateCommand(t *testing.T) {
	h := newHarness(t, nil, 60*time.Millisecond)

	h.src.emit("hey atlas", false)
	require.Equal(t, Listening, h.ctrl.Phase())

	h.src.emit("hey atlas go home", true)

	eventually(t, func() bool {
		navs := h.navigations()
		return len(navs) == 1 && navs[0] == "/home"
	}, "navigation not performed")

	eventually(t, func() bool {
		for _, s := range h.voice.said() {
			if s == "Navigating to Home." {
				return true
			}
		}
		return false
	}, "response not spoken")

	eventually(t, func() bool { return h.ctrl.Phase() == Passive }, "controller never settled")
	assert.Equal(t, "", h.lastTranscript())

	// Exactly once: the settle window must not replay the command.
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, h.navigations(), 1)
}

func TestWakeWordOnlyReturnsToPassive(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	h.src.emit("hey atlas", false)
	require.Equal(t, Listening, h.ctrl.Phase())

	// Final fragment carrying nothing but the wake phrase.
	h.src.emit("hey atlas", true)

	assert.Equal(t, Passive, h.ctrl.Phase())
	assert.Empty(t, h.navigations())
}

func TestListeningPartialsOnlyUpdateTranscript(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	h.src.emit("atlas", false)
	h.src.emit("go ho", false)

	assert.Equal(t, Listening, h.ctrl.Phase())
	assert.Equal(t, "go ho", h.lastTranscript())
	assert.Empty(t, h.navigations())
}

func TestSpeakingIgnoresFragments(t *testing.T) {
	br := &blockingResolver{
		release: make(chan struct{}),
		result:  intent.Intent{Kind: intent.Navigate, Target: "/analysis", Response: "Opening Health Analysis."},
	}
	h := newHarness(t, br, 50*time.Millisecond)

	h.src.emit("hey atlas", false)
	h.src.emit("hey atlas open analysis", true)
	eventually(t, func() bool { return h.ctrl.Phase() == Speaking }, "never reached SPEAKING")

	// Another command while busy: ambient noise, not a second episode.
	h.src.emit("hey atlas go home", true)

	close(br.release)
	eventually(t, func() bool { return len(h.navigations()) == 1 }, "command not executed")
	eventually(t, func() bool { return h.ctrl.Phase() == Passive }, "never settled")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"/analysis"}, h.navigations())
}

func TestCaptureErrorDropsListeningEpisode(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	h.src.emit("hey atlas", false)
	require.Equal(t, Listening, h.ctrl.Phase())

	h.src.emitError(errors.New("no-speech"))

	assert.Equal(t, Passive, h.ctrl.Phase())
	assert.Empty(t, h.navigations())
	assert.Equal(t, "", h.lastTranscript())
}

func TestStaleResolutionIsDiscarded(t *testing.T) {
	br := &blockingResolver{
		release: make(chan struct{}),
		result:  intent.Intent{Kind: intent.Navigate, Target: "/home", Response: "Navigating to Home."},
	}
	h := newHarness(t, br, 50*time.Millisecond)

	h.src.emit("hey atlas", false)
	h.src.emit("hey atlas go home", true)
	eventually(t, func() bool { return h.ctrl.Phase() == Speaking }, "never reached SPEAKING")

	// The user bails out while resolution is in flight.
	h.ctrl.Standby()
	close(br.release)

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, h.navigations(), "stale episode must not navigate")
	assert.Equal(t, Passive, h.ctrl.Phase())
}

func TestForcedWake(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	h.ctrl.Wake()
	assert.Equal(t, Listening, h.ctrl.Phase())

	// Wake is a no-op outside PASSIVE.
	h.ctrl.Wake()
	assert.Equal(t, Listening, h.ctrl.Phase())

	h.src.emit("go home", true)
	eventually(t, func() bool { return len(h.navigations()) == 1 }, "forced wake command not executed")
}

func TestStripWake(t *testing.T) {
	h := newHarness(t, nil, 50*time.Millisecond)

	assert.Equal(t, "go home", h.ctrl.stripWake("hey atlas go home"))
	assert.Equal(t, "go home", h.ctrl.stripWake("hey atlas hey atlas go home"))
	assert.Equal(t, "go home", h.ctrl.stripWake("atlas go home"))
	assert.Equal(t, "", h.ctrl.stripWake("hey atlas"))
}
