package timer

import (
	"image/color"
	"math"
)

const (
	// MarkerCount is one marker per second of a minute.
	MarkerCount = 60

	// quarterStep marks the 12, 3, 6 and 9 o'clock positions.
	quarterStep = MarkerCount / 4

	// 0 degrees is the 3 o'clock position; start 90 degrees earlier at the top.
	initialMarkerDegree = -90
	markerStepDegrees   = 360 / MarkerCount
)

// Marker is one circle on the clock face.
type Marker struct {
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// Palette holds the fixed colors of the visualization.
type Palette struct {
	Marker     color.RGBA // initial marker color, applied on odd minutes
	Past       color.RGBA // applied on even minutes
	Label      color.RGBA
	Background color.RGBA
}

// Layout places MarkerCount markers on a circle of radius o.ClockRadius around
// the center of a width x height canvas. Marker 0 sits at the top and the index
// grows with the angle.
func Layout(width, height int, o Options) []Marker {
	centerX := float64(width) / 2
	centerY := float64(height) / 2

	markers := make([]Marker, MarkerCount)
	degree := initialMarkerDegree
	for i := range markers {
		rad := float64(degree) * math.Pi / 180

		radius := o.MarkerRadius
		if i%quarterStep == 0 {
			radius = o.QuarterMarkerRadius
		}

		markers[i] = Marker{
			X:      centerX + o.ClockRadius*math.Cos(rad),
			Y:      centerY + o.ClockRadius*math.Sin(rad),
			Radius: radius,
			Color:  o.Palette.Marker,
		}
		degree += markerStepDegrees
	}
	return markers
}
