// Package term runs the timer inside a terminal with tcell.
package term

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/timer-visualization/internal/config"
	"github.com/iburimskiy/timer-visualization/internal/timer"
)

const (
	markerRune        = '•'
	quarterMarkerRune = '●'
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Canvas maps timer canvas coordinates onto the terminal grid.
type Canvas struct {
	screen tcell.Screen

	// canvas size the timer was laid out for
	width, height int
	// radius at or above which a marker is drawn as a quarter marker
	quarterRadius float64

	bg tcell.Color
}

func NewCanvas(s tcell.Screen, width, height int, quarterRadius float64) *Canvas {
	return &Canvas{screen: s, width: width, height: height, quarterRadius: quarterRadius}
}

// cell converts canvas coordinates to a cell position.
func (c *Canvas) cell(x, y float64) (int, int) {
	cols, rows := c.screen.Size()
	cx := int(math.Round(x / float64(c.width) * float64(cols-1)))
	cy := int(math.Round(y / float64(c.height) * float64(rows-1)))
	return cx, cy
}

func (c *Canvas) Fill(clr color.RGBA) {
	c.bg = rgb(clr)
	c.screen.Fill(' ', tcell.StyleDefault.Background(c.bg))
}

func (c *Canvas) Circle(x, y, r float64, clr color.RGBA) {
	ch := markerRune
	if r >= c.quarterRadius {
		ch = quarterMarkerRune
	}
	cx, cy := c.cell(x, y)
	c.screen.SetContent(cx, cy, ch, nil, tcell.StyleDefault.Foreground(rgb(clr)).Background(c.bg))
}

func (c *Canvas) Text(l timer.Label) {
	cx, cy := c.cell(l.X, l.Y)
	style := tcell.StyleDefault.Foreground(rgb(l.Color)).Background(c.bg).Bold(true)
	for i, r := range []rune(l.Text) {
		c.screen.SetContent(cx+i, cy, r, nil, style)
	}
}

// HeightEstimate is one terminal row expressed in canvas units.
func (c *Canvas) HeightEstimate(timer.Label) float64 {
	_, rows := c.screen.Size()
	if rows < 1 {
		rows = 1
	}
	return float64(c.height) / float64(rows)
}

// quitEvent reports whether ev asks the program to stop.
func quitEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q' || key.Rune() == 'Q'
	}
	return false
}

// Renderer drives a timer on a tcell screen.
type Renderer struct {
	screen    tcell.Screen
	canvas    *Canvas
	timer     *timer.Timer
	frame     time.Duration
	log       zerolog.Logger
	observers []timer.Observer
}

// NewRenderer lays out a timer for the configured canvas and draws it on s,
// which must already be initialized.
func NewRenderer(s tcell.Screen, cfg *config.Config, clk timer.Clock, log zerolog.Logger, observers ...timer.Observer) (*Renderer, error) {
	opts, err := cfg.TimerOptions()
	if err != nil {
		return nil, err
	}

	canvas := NewCanvas(s, opts.Width, opts.Height, opts.QuarterMarkerRadius)
	t, err := timer.New(opts, clk, canvas)
	if err != nil {
		return nil, fmt.Errorf("error creating timer: %w", err)
	}

	return &Renderer{
		screen:    s,
		canvas:    canvas,
		timer:     t,
		frame:     time.Second / time.Duration(cfg.Terminal.FPS),
		log:       log,
		observers: observers,
	}, nil
}

// Frame draws one frame and shows it.
func (r *Renderer) Frame() timer.Update {
	u := r.timer.Frame(r.canvas)
	r.screen.Show()
	for _, o := range r.observers {
		o.Observe(u)
	}
	return u
}

// Handle processes one event and reports whether the loop should continue.
func (r *Renderer) Handle(ev tcell.Event) bool {
	if quitEvent(ev) {
		return false
	}
	if _, ok := ev.(*tcell.EventResize); ok {
		r.screen.Sync()
	}
	return true
}

// Loop redraws at the configured rate until a quit key is pressed.
func (r *Renderer) Loop() {
	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	r.Frame()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !r.Handle(ev) {
				return
			}
		case <-ticker.C:
			r.Frame()
		}
	}
}

// Run takes over the terminal until the user quits.
func Run(cfg *config.Config, log zerolog.Logger, observers ...timer.Observer) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("error initializing screen: %w", err)
	}
	defer s.Fini()

	r, err := NewRenderer(s, cfg, timer.SystemClock{}, log, observers...)
	if err != nil {
		return err
	}

	cols, rows := s.Size()
	log.Info().Int("cols", cols).Int("rows", rows).Int("fps", cfg.Terminal.FPS).
		Time("start", r.timer.Start()).Msg("Terminal renderer started")

	r.Loop()
	return nil
}
