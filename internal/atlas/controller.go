// Package atlas drives the wake-word loop: passively watch the transcript
// stream for a wake phrase, capture one command, resolve it, speak the
// result, re-arm.
package atlas

import (
	"context"
	log "log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"atlas/internal/intent"
	"atlas/internal/listen"
	"atlas/internal/speech"
)

type Phase int

const (
	Passive Phase = iota
	Listening
	Speaking
)

func (p Phase) String() string {
	switch p {
	case Passive:
		return "PASSIVE"
	case Listening:
		return "LISTENING"
	case Speaking:
		return "SPEAKING"
	}
	return "UNKNOWN"
}

// Resolver produces exactly one intent per command and never fails.
type Resolver interface {
	Resolve(ctx context.Context, text string, cc intent.Context) intent.Intent
}

// Config wires the controller to its host application. Everything is
// injected; the controller owns no globals.
type Config struct {
	// WakePhrases are matched case-insensitively as substrings.
	WakePhrases []string
	// AckText is spoken when the wake phrase is heard.
	AckText string
	// SettleDelay is how long after speaking a result the controller
	// waits before re-arming, so its own utterance cannot wake it.
	SettleDelay time.Duration

	// Navigate performs the navigation side effect for NAVIGATE intents.
	Navigate func(target string)
	// OnAction receives the action identifier of ACTION intents.
	OnAction func(action string)
	// OnWake fires on wake-phrase detection (e.g. to play a chime).
	OnWake func()
	// OnTranscript mirrors the live transcript to a display; an empty
	// string clears it.
	OnTranscript func(text string)
	// Context supplies the application state a command resolves against.
	Context func() intent.Context
}

// Controller is the wake-word state machine. All state lives behind one
// mutex and is mutated only by the controller's own handlers; the SPEAKING
// phase is the mutual exclusion that keeps resolutions single-flight, and
// the episode counter discards results that outlive their episode.
type Controller struct {
	cfg      Config
	session  *listen.Session
	voice    *speech.Speaker
	resolver Resolver
	wake     []string

	mu      sync.Mutex
	phase   Phase
	episode uint64
}

func New(session *listen.Session, voice *speech.Speaker, resolver Resolver, cfg Config) *Controller {
	if len(cfg.WakePhrases) == 0 {
		cfg.WakePhrases = []string{"hey atlas", "atlas"}
	}
	if cfg.AckText == "" {
		cfg.AckText = "Yes?"
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 3 * time.Second
	}

	// Longest phrase first, so stripping "hey atlas" happens before
	// "atlas" can eat its tail.
	wake := make([]string, len(cfg.WakePhrases))
	for i, w := range cfg.WakePhrases {
		wake[i] = strings.ToLower(strings.TrimSpace(w))
	}
	sort.Slice(wake, func(i, j int) bool { return len(wake[i]) > len(wake[j]) })

	return &Controller{
		cfg:      cfg,
		session:  session,
		voice:    voice,
		resolver: resolver,
		wake:     wake,
	}
}

// Start arms the transcription session. The controller begins PASSIVE.
func (c *Controller) Start() error {
	return c.session.Start(listen.Callbacks{
		OnPartial: func(t string) { c.onFragment(t, false) },
		OnFinal:   func(t string) { c.onFragment(t, true) },
		OnError:   c.onCaptureError,
	})
}

// Stop tears the controller down: capture stops, any utterance is cut off,
// state resets to PASSIVE.
func (c *Controller) Stop() {
	c.session.Stop()
	c.voice.Cancel()
	c.mu.Lock()
	c.phase = Passive
	c.episode++
	c.mu.Unlock()
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Wake forces PASSIVE → LISTENING, mirroring a manual tap on the orb.
func (c *Controller) Wake() {
	c.mu.Lock()
	if c.phase != Passive {
		c.mu.Unlock()
		return
	}
	c.phase = Listening
	c.episode++
	c.mu.Unlock()

	log.Info("wake forced")
	c.acknowledge()
}

// Standby drops whatever episode is active and returns to passive
// monitoring, cutting off any utterance in flight.
func (c *Controller) Standby() {
	c.mu.Lock()
	c.phase = Passive
	c.episode++
	c.mu.Unlock()

	c.voice.Cancel()
	c.notifyTranscript("")
	log.Info("standing by")
}

func (c *Controller) onFragment(text string, final bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return
	}

	c.mu.Lock()
	switch c.phase {
	case Passive:
		if !c.hasWake(t) {
			c.mu.Unlock()
			return
		}
		c.phase = Listening
		c.episode++
		c.mu.Unlock()

		log.Info("wake phrase detected", "text", t)
		c.notifyTranscript(t)
		c.acknowledge()

	case Listening:
		if !final {
			c.mu.Unlock()
			c.notifyTranscript(t)
			return
		}

		clean := c.stripWake(t)
		if clean == "" {
			// Wake phrase alone; nothing to resolve.
			c.phase = Passive
			c.mu.Unlock()
			c.notifyTranscript("")
			return
		}

		c.phase = Speaking
		ep := c.episode
		c.mu.Unlock()

		log.Info("command captured", "text", clean)
		c.notifyTranscript(clean)
		go c.resolve(ep, clean)

	case Speaking:
		// Busy with an episode; fragments are ambient noise.
		c.mu.Unlock()
	}
}

func (c *Controller) resolve(ep uint64, text string) {
	it := c.resolver.Resolve(context.Background(), text, c.commandContext())
	c.apply(ep, it)
}

func (c *Controller) apply(ep uint64, it intent.Intent) {
	c.mu.Lock()
	if c.phase != Speaking || c.episode != ep {
		c.mu.Unlock()
		log.Debug("discarding stale resolution", "episode", ep)
		return
	}
	c.mu.Unlock()

	log.Info("executing intent", "kind", it.Kind, "target", it.Target, "action", it.Action)

	switch it.Kind {
	case intent.Navigate:
		if c.cfg.Navigate != nil {
			c.cfg.Navigate(it.Target)
		}
	case intent.Action:
		if c.cfg.OnAction != nil {
			c.cfg.OnAction(it.Action)
		}
	}

	c.voice.Say(it.Response)

	// The settle delay lets the utterance play out without the
	// controller hearing itself as a wake phrase.
	time.AfterFunc(c.cfg.SettleDelay, func() { c.finishEpisode(ep) })
}

func (c *Controller) finishEpisode(ep uint64) {
	c.mu.Lock()
	if c.phase != Speaking || c.episode != ep {
		c.mu.Unlock()
		return
	}
	c.phase = Passive
	c.episode++
	c.mu.Unlock()

	c.notifyTranscript("")
	log.Debug("episode settled, passive again")
}

// onCaptureError ends a LISTENING episode: a garbled capture must not be
// resolved as a command. Capture restart is the session's business.
func (c *Controller) onCaptureError(err error) {
	c.mu.Lock()
	if c.phase != Listening {
		c.mu.Unlock()
		log.Warn("capture error", "err", err)
		return
	}
	c.phase = Passive
	c.episode++
	c.mu.Unlock()

	log.Warn("capture error, dropping episode", "err", err)
	c.notifyTranscript("")
}

func (c *Controller) acknowledge() {
	if c.cfg.OnWake != nil {
		c.cfg.OnWake()
	}
	c.voice.Say(c.cfg.AckText)
}

func (c *Controller) hasWake(t string) bool {
	for _, w := range c.wake {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

// stripWake removes every occurrence of every wake phrase. A stammered
// "hey atlas hey atlas go home" still yields "go home".
func (c *Controller) stripWake(t string) string {
	for _, w := range c.wake {
		t = strings.ReplaceAll(t, w, " ")
	}
	return strings.Join(strings.Fields(t), " ")
}

func (c *Controller) commandContext() intent.Context {
	if c.cfg.Context != nil {
		return c.cfg.Context()
	}
	return intent.Context{}
}

func (c *Controller) notifyTranscript(t string) {
	if c.cfg.OnTranscript != nil {
		c.cfg.OnTranscript(t)
	}
}
