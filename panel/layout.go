package panel

import "image/color"

// Fixed layout for the 160x128 landscape panel. The coordinates are
// historical: they match the original hand-tuned arrangement and the
// size-1/size-2 font cells it was designed around.
const (
	titleX, titleY = 10, 5
	sepY           = 20
	labelY         = 30

	valueY, valueH = 40, 11
	tempX, tempW   = 10, 45
	humidX, humidW = 65, 40
	soilX, soilW   = 123, 40

	pumpLabelX, pumpLabelY     = 10, 60
	pumpX, pumpY, pumpW, pumpH = 55, 74, 70, 16

	barX, barY, barW, barH = 10, 100, 140, 15

	unitGap = 2 // px between a numeral and its unit glyph
)

const title = "Fuzzy Irrigation System"

// Placeholders for undefined readings; the pump one is shorter because it
// renders at text size 2.
const (
	placeholderSmall = "---"
	placeholderLarge = "--"
)

// degreeBaseX is where the degree mark lands for a multi-digit positive
// temperature; degreeMarkX corrects it for the other numeral shapes.
const degreeBaseX = 36

// degreeMarkX returns the X position of the hand-drawn degree mark for a
// defined temperature. The offsets are a fixed-layout special case keyed on
// the printed numeral's shape (sign and digit count), not derived from text
// metrics.
func degreeMarkX(v float32) int16 {
	neg := v < 0
	single := v > -10 && v < 10 && v != 0
	switch {
	case neg && single:
		return degreeBaseX + 10
	case neg:
		return degreeBaseX + 5
	case v == 0, single:
		return degreeBaseX - 5
	default:
		return degreeBaseX
	}
}

// Panel palette.
var (
	black  = color.RGBA{0, 0, 0, 255}
	white  = color.RGBA{255, 255, 255, 255}
	cyan   = color.RGBA{0, 255, 255, 255}
	green  = color.RGBA{0, 255, 0, 255}
	blue   = color.RGBA{0, 0, 255, 255}
	yellow = color.RGBA{255, 255, 0, 255}
	red    = color.RGBA{255, 0, 0, 255}
)
