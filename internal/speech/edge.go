package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"sync"
	"time"

	"github.com/faiface/beep"
	beepmp3 "github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/wujunwei928/edge-tts-go/edge_tts"
)

// EdgeOutput synthesizes speech with the Edge TTS service and plays the
// resulting clip through the shared output device.
type EdgeOutput struct {
	voice string

	mu   sync.Mutex
	stop chan struct{}
}

func NewEdgeOutput(voice string) *EdgeOutput {
	if voice == "" {
		voice = "en-US-AriaNeural"
	}
	return &EdgeOutput{voice: voice}
}

func (o *EdgeOutput) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	comm, err := edge_tts.New(o.voice)
	if err != nil {
		return fmt.Errorf("edge tts init: %w", err)
	}
	defer comm.Close()

	audio, err := comm.Output(text)
	if err != nil {
		return fmt.Errorf("edge tts synth: %w", err)
	}

	// Inspect the clip header before handing it to the speaker; a zero
	// length clip means the service returned garbage for this input.
	probe, err := gomp3.NewDecoder(bytes.NewReader(audio))
	if err != nil {
		return fmt.Errorf("probe synth clip: %w", err)
	}
	if probe.Length() == 0 {
		return fmt.Errorf("empty synth clip for %q", text)
	}
	dur := time.Duration(probe.Length()) * time.Second / time.Duration(probe.SampleRate()*4)
	log.Debug("synthesized utterance", "bytes", len(audio), "duration", dur)

	streamer, format, err := beepmp3.Decode(io.NopCloser(bytes.NewReader(audio)))
	if err != nil {
		return fmt.Errorf("decode synth clip: %w", err)
	}
	defer streamer.Close()

	if err := InitDevice(); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	stop := make(chan struct{})
	o.mu.Lock()
	o.stop = stop
	o.mu.Unlock()

	done := make(chan struct{})
	speaker.Play(beep.Seq(
		beep.Resample(4, format.SampleRate, PlaybackRate, streamer),
		beep.Callback(func() { close(done) }),
	))

	defer func() {
		o.mu.Lock()
		if o.stop == stop {
			o.stop = nil
		}
		o.mu.Unlock()
	}()

	select {
	case <-done:
		return nil
	case <-stop:
		speaker.Clear()
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

func (o *EdgeOutput) Cancel() {
	o.mu.Lock()
	if o.stop != nil {
		close(o.stop)
		o.stop = nil
	}
	o.mu.Unlock()
	speaker.Clear()
}
