// Package game runs the timer in a desktop window with ebiten.
package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/timer-visualization/internal/config"
	"github.com/iburimskiy/timer-visualization/internal/timer"
)

// screenCanvas draws timer shapes onto an ebiten image.
type screenCanvas struct {
	dst   *ebiten.Image
	fonts *Fonts
	log   zerolog.Logger
}

func (c screenCanvas) Fill(clr color.RGBA) {
	c.dst.Fill(clr)
}

func (c screenCanvas) Circle(x, y, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(r), clr, true)
}

func (c screenCanvas) Text(l timer.Label) {
	face, err := c.fonts.Face(l.Font, l.Size)
	if err != nil {
		c.log.Error().Err(err).Msg("Cannot draw label")
		return
	}

	// text.Draw places the top of the line at the origin; labels are positioned by baseline.
	op := &text.DrawOptions{}
	op.GeoM.Translate(l.X, l.Y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(l.Color)
	text.Draw(c.dst, l.Text, face, op)
}

type Game struct {
	timer     *timer.Timer
	fonts     *Fonts
	log       zerolog.Logger
	observers []timer.Observer

	width, height int

	// input edge detection
	prevKey map[ebiten.Key]bool

	last timer.Update
}

func NewGame(t *timer.Timer, fonts *Fonts, width, height int, log zerolog.Logger, observers ...timer.Observer) *Game {
	return &Game{
		timer:     t,
		fonts:     fonts,
		log:       log,
		observers: observers,
		width:     width,
		height:    height,
		prevKey:   map[ebiten.Key]bool{},
	}
}

// Update only handles the window lifecycle; the timer advances in Draw.
func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.last = g.timer.Frame(screenCanvas{dst: screen, fonts: g.fonts, log: g.log})
	for _, o := range g.observers {
		o.Observe(g.last)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log zerolog.Logger, observers ...timer.Observer) error {
	err := run(cfg, log, observers...)
	if err != nil && cfg.Window.ErrorDialog {
		if derr := zenity.Error(err.Error(), zenity.Title(cfg.Window.Title), zenity.ErrorIcon); derr != nil {
			log.Warn().Err(derr).Msg("Cannot show error dialog")
		}
	}
	return err
}

func run(cfg *config.Config, log zerolog.Logger, observers ...timer.Observer) error {
	opts, err := cfg.TimerOptions()
	if err != nil {
		return err
	}

	fonts := NewFonts(log)
	if _, err := fonts.Face(opts.LabelFont, opts.LabelSize); err != nil {
		return err
	}

	t, err := timer.New(opts, timer.SystemClock{}, fonts)
	if err != nil {
		return fmt.Errorf("error creating timer: %w", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	log.Info().
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Time("start", t.Start()).
		Msg("Window renderer started")

	g := NewGame(t, fonts, cfg.Window.Width, cfg.Window.Height, log, observers...)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("error running window: %w", err)
	}
	return nil
}
