package logging

import (
	"fmt"
	"image/color"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/timer-visualization/internal/timer"
)

// MinuteLogger logs once at the start of every minute the timer reaches.
type MinuteLogger struct {
	log  zerolog.Logger
	last int
}

func NewMinuteLogger(log zerolog.Logger) *MinuteLogger {
	return &MinuteLogger{log: log, last: -1}
}

func (m *MinuteLogger) Observe(u timer.Update) {
	if !u.Applied || u.Minute == m.last {
		return
	}
	m.last = u.Minute
	m.log.Debug().
		Int("minute", u.Minute).
		Str("elapsed", formatElapsed(u.Elapsed)).
		Str("color", hexColor(u.Color)).
		Msg("Minute started")
}

// formatElapsed formats whole seconds as MM:SS
func formatElapsed(seconds int) string {
	if seconds < 0 {
		return "-" + formatElapsed(-seconds)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
