package speech

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// PlaybackRate is the one rate the shared output device is opened at.
// Everything played through it — synthesized clips, the wake chime — is
// generated at or resampled to this rate; re-initializing the device at a
// clip's native rate would cut off whatever is already playing.
const PlaybackRate = beep.SampleRate(44100)

var (
	deviceOnce sync.Once
	deviceErr  error

	openDevice = func() error {
		return speaker.Init(PlaybackRate, PlaybackRate.N(time.Second/10))
	}
)

// InitDevice opens the output device on first use and caches the result.
func InitDevice() error {
	deviceOnce.Do(func() {
		deviceErr = openDevice()
	})
	return deviceErr
}
