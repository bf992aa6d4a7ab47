package notify

import (
	log "log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"

	"atlas/internal/speech"
)

const (
	chimeFreq = 880
	chimeLen  = 150 * time.Millisecond
)

// Chime plays a short sine blip acknowledging the wake phrase. The tone is
// generated at the shared playback rate so it never re-initializes the
// device under a playing utterance. Blocks until the blip finishes; run it
// on its own goroutine.
func Chime() {
	tone, err := generators.SinTone(speech.PlaybackRate, chimeFreq)
	if err != nil {
		log.Warn("chime tone", "err", err)
		return
	}

	if err := speech.InitDevice(); err != nil {
		log.Warn("chime speaker init", "err", err)
		return
	}

	done := make(chan bool)
	speaker.Play(beep.Seq(beep.Take(speech.PlaybackRate.N(chimeLen), tone), beep.Callback(func() {
		done <- true
	})))
	<-done
}
