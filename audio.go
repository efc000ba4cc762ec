package glide

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SpeakerLock serializes volume changes with the beep speaker goroutine.
var SpeakerLock sync.Locker = speakerLock{}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// VolumeOutput drives a beep volume effect from a linear [0, 1] value, so a
// slider can control playback loudness directly.
type VolumeOutput struct {
	mu    sync.Locker
	vol   *effects.Volume
	value float64
}

// NewVolumeOutput wraps vol. Changes are made under lock, which should be
// SpeakerLock when vol is playing on the speaker; nil uses a private mutex.
// A zero Base is set to 2.
func NewVolumeOutput(vol *effects.Volume, lock sync.Locker) (*VolumeOutput, error) {
	if vol == nil {
		return nil, errors.New("volume output: nil volume effect")
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	lock.Lock()
	if vol.Base == 0 {
		vol.Base = 2
	}
	lock.Unlock()
	return &VolumeOutput{mu: lock, vol: vol, value: 1}, nil
}

// SetValue implements Output. Zero silences the stream; otherwise the gain
// is exactly v.
func (o *VolumeOutput) SetValue(v float64) {
	v = clamp01(v)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = v
	if v <= 0 {
		o.vol.Silent = true
		o.vol.Volume = 0
		return
	}
	o.vol.Silent = false
	o.vol.Volume = math.Log(v) / math.Log(o.vol.Base)
}

// Value returns the last value set.
func (o *VolumeOutput) Value() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// NewTone returns an endless sine tone at freq Hz with peak amplitude amp,
// used as a test signal for volume controls.
func NewTone(sr beep.SampleRate, freq, amp float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}
	return &effects.Gain{Streamer: sine, Gain: amp - 1}, nil
}
