package game

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/timer-visualization/internal/timer"
)

const fallbackFont = "go regular"

var fontData = map[string][]byte{
	"go regular": goregular.TTF,
	"go bold":    gobold.TTF,
	"go medium":  gomedium.TTF,
	"go mono":    gomono.TTF,
}

// Fonts resolves label font names to text faces. Font sources are parsed once.
type Fonts struct {
	sources map[string]*text.GoTextFaceSource
	log     zerolog.Logger
}

func NewFonts(log zerolog.Logger) *Fonts {
	return &Fonts{
		sources: map[string]*text.GoTextFaceSource{},
		log:     log,
	}
}

func (f *Fonts) source(name string) (*text.GoTextFaceSource, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if src, ok := f.sources[key]; ok {
		return src, nil
	}

	data, ok := fontData[key]
	if !ok {
		f.log.Warn().Str("font", name).Str("fallback", fallbackFont).Msg("Unknown font")
		src, err := f.source(fallbackFont)
		if err != nil {
			return nil, err
		}
		// remember the fallback so the warning is logged once per name
		f.sources[key] = src
		return src, nil
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error loading font %q: %w", key, err)
	}
	f.sources[key] = src
	return src, nil
}

// Face returns the face for name at size points. Unknown names fall back to Go Regular.
func (f *Fonts) Face(name string, size float64) (*text.GoTextFace, error) {
	src, err := f.source(name)
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

// HeightEstimate is the ascent plus descent of the label's face.
func (f *Fonts) HeightEstimate(l timer.Label) float64 {
	face, err := f.Face(l.Font, l.Size)
	if err != nil {
		return l.Size
	}
	m := face.Metrics()
	return m.HAscent + m.HDescent
}
