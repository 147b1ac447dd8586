package logging

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/timer-visualization/internal/timer"
)

func TestMinuteLogger(t *testing.T) {
	var buf bytes.Buffer
	m := NewMinuteLogger(Setup(&buf, "debug", true))
	red := color.RGBA{R: 234, G: 49, B: 63, A: 255}
	yellow := color.RGBA{R: 234, G: 182, B: 56, A: 255}

	m.Observe(timer.Update{Elapsed: -2})
	m.Observe(timer.Update{Elapsed: 0, Minute: 0, Color: red, Applied: true})
	m.Observe(timer.Update{Elapsed: 1, Minute: 0, Second: 1, Color: red, Applied: true})
	m.Observe(timer.Update{Elapsed: 60, Minute: 1, Color: yellow, Applied: true})
	m.Observe(timer.Update{Elapsed: 60, Minute: 1, Color: yellow, Applied: true})

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Minute started"))
	assert.Contains(t, out, "elapsed=00:00")
	assert.Contains(t, out, "color=#EA313F")
	assert.Contains(t, out, "elapsed=01:00")
	assert.Contains(t, out, "color=#EAB638")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", formatElapsed(0))
	assert.Equal(t, "00:59", formatElapsed(59))
	assert.Equal(t, "01:01", formatElapsed(61))
	assert.Equal(t, "61:40", formatElapsed(3700))
	assert.Equal(t, "-00:05", formatElapsed(-5))
}
