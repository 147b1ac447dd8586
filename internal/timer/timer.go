// Package timer implements the 60 seconds timer: a ring of one marker per
// second, recolored one at a time as the seconds since start pass.
package timer

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

// Options configures a Timer.
type Options struct {
	Width, Height int

	ClockRadius         float64
	MarkerRadius        float64
	QuarterMarkerRadius float64

	Palette Palette

	LabelText string
	LabelFont string
	LabelSize float64
}

// Label is a line of text drawn with its baseline at (X, Y).
type Label struct {
	Text  string
	Font  string
	Size  float64
	X, Y  float64
	Color color.RGBA
}

// Canvas receives the shapes of one frame.
type Canvas interface {
	Fill(c color.RGBA)
	Circle(x, y, r float64, c color.RGBA)
	Text(l Label)
}

// TextMeasurer estimates the rendered height of a label.
type TextMeasurer interface {
	HeightEstimate(l Label) float64
}

var ErrInvalidOptions = errors.New("invalid timer options")

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.ClockRadius <= 0:
		return fmt.Errorf("%w: clock radius %v", ErrInvalidOptions, o.ClockRadius)
	case o.MarkerRadius <= 0 || o.QuarterMarkerRadius <= 0:
		return fmt.Errorf("%w: marker radii %v/%v", ErrInvalidOptions, o.MarkerRadius, o.QuarterMarkerRadius)
	}
	return nil
}

// PlaceLabel puts l in the bottom left corner, as far from the left edge as
// from the bottom edge, using the measured height as the margin.
func PlaceLabel(l Label, canvasHeight int, m TextMeasurer) Label {
	h := m.HeightEstimate(l)
	l.X = h
	l.Y = float64(canvasHeight) - h
	return l
}

// Timer owns the state of one running visualization. It is driven from a
// single render loop and is not safe for concurrent use.
type Timer struct {
	clock   Clock
	start   time.Time
	palette Palette
	markers []Marker
	label   Label
}

// New lays out the markers, places the title label and captures the start time.
func New(o Options, clk Clock, m TextMeasurer) (*Timer, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = SystemClock{}
	}

	label := Label{
		Text:  o.LabelText,
		Font:  o.LabelFont,
		Size:  o.LabelSize,
		Color: o.Palette.Label,
	}
	if m != nil {
		label = PlaceLabel(label, o.Height, m)
	}

	return &Timer{
		clock:   clk,
		start:   clk.Now(),
		palette: o.Palette,
		markers: Layout(o.Width, o.Height, o),
		label:   label,
	}, nil
}

// Frame renders one frame: background, marker update, markers in index order,
// then the label.
func (t *Timer) Frame(c Canvas) Update {
	c.Fill(t.palette.Background)

	u := UpdateMarkers(t.markers, ElapsedSeconds(t.start, t.clock.Now()), t.palette)
	for _, m := range t.markers {
		c.Circle(m.X, m.Y, m.Radius, m.Color)
	}

	c.Text(t.label)
	return u
}

func (t *Timer) Start() time.Time { return t.start }

func (t *Timer) Label() Label { return t.label }

func (t *Timer) Palette() Palette { return t.palette }

// Markers returns a copy of the current markers.
func (t *Timer) Markers() []Marker {
	out := make([]Marker, len(t.markers))
	copy(out, t.markers)
	return out
}
