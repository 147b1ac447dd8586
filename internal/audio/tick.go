// Package audio plays a short tick whenever the timer recolors a new marker.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/timer-visualization/internal/timer"
)

const (
	sampleRate = beep.SampleRate(44100)

	tickFreq   = 880.0
	minuteFreq = 1320.0

	tickLength   = 40 * time.Millisecond
	minuteLength = 120 * time.Millisecond
)

// tone returns a sine wave at freq that fades out linearly over length.
func tone(freq float64, length time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(length)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			vol := 1 - float64(pos)/float64(total)
			v := math.Sin(2*math.Pi*freq*float64(pos)/float64(rate)) * vol
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// Ticker sounds once per new elapsed second, with a higher tone at the top of
// each minute.
type Ticker struct {
	play   func(beep.Streamer)
	volume float64
	log    zerolog.Logger

	last int
	seen bool
}

// NewTicker initializes the speaker and returns a ticker playing through it.
func NewTicker(volume float64, log zerolog.Logger) (*Ticker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("error initializing speaker: %w", err)
	}
	log.Info().Float64("volume", volume).Msg("Audio tick enabled")
	return newTicker(func(s beep.Streamer) { speaker.Play(s) }, volume, log), nil
}

func newTicker(play func(beep.Streamer), volume float64, log zerolog.Logger) *Ticker {
	return &Ticker{play: play, volume: volume, log: log}
}

func (t *Ticker) Observe(u timer.Update) {
	if !u.Applied || (t.seen && u.Elapsed == t.last) {
		return
	}
	t.last = u.Elapsed
	t.seen = true

	freq, length := tickFreq, tickLength
	if u.Second == 0 {
		freq, length = minuteFreq, minuteLength
	}
	t.log.Trace().Int("elapsed", u.Elapsed).Float64("freq", freq).Msg("Tick")

	t.play(&effects.Volume{
		Streamer: tone(freq, length, sampleRate),
		Base:     2,
		Volume:   t.volume,
	})
}
