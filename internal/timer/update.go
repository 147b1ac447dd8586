package timer

import "image/color"

// Update describes what one color update did.
type Update struct {
	Elapsed int // whole seconds since start
	Minute  int // Elapsed / 60
	Second  int // Elapsed % 60
	Index   int // recolored marker
	Color   color.RGBA
	Applied bool // false when Elapsed < 0; nothing was touched
}

// TargetIndex returns the marker recolored after elapsed seconds. Indices run
// backwards from 59 as the seconds of a minute pass; the top of every minute
// maps to marker 0. elapsed must not be negative.
func TargetIndex(elapsed int) int {
	idx := MarkerCount - elapsed%MarkerCount
	if idx >= MarkerCount {
		idx = 0
	}
	return idx
}

// ColorFor returns the color applied during the minute containing elapsed:
// Palette.Past on even minutes, Palette.Marker on odd ones.
func ColorFor(elapsed int, p Palette) color.RGBA {
	if (elapsed/MarkerCount)%2 == 0 {
		return p.Past
	}
	return p.Marker
}

// UpdateMarkers recolors at most one marker for the given elapsed seconds.
// Every other marker keeps its color, so a minute boundary touches only
// marker 0 and the previous minute's colors are overwritten one per second.
func UpdateMarkers(markers []Marker, elapsed int, p Palette) Update {
	if elapsed < 0 {
		return Update{Elapsed: elapsed}
	}

	u := Update{
		Elapsed: elapsed,
		Minute:  elapsed / MarkerCount,
		Second:  elapsed % MarkerCount,
		Index:   TargetIndex(elapsed),
		Color:   ColorFor(elapsed, p),
		Applied: true,
	}
	markers[u.Index].Color = u.Color
	return u
}

// Observer is notified with the update of every frame.
type Observer interface {
	Observe(u Update)
}

type ObserverFunc func(u Update)

func (f ObserverFunc) Observe(u Update) { f(u) }
