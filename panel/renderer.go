// Package panel draws four channel readings (temperature, humidity, soil
// moisture and pump power) onto a small TFT, repainting only the regions
// whose values moved beyond a per-channel threshold. Differential repainting
// keeps a slow bus-attached display flicker-free: unchanged regions are
// never touched.
//
// The renderer consumes an injected Surface and implements nothing below it.
// NaN inputs are normal (sensor missing or out of range) and render as
// placeholders, never as errors.
package panel

import (
	"image/color"

	"panelcode-go/x/mathx"
)

// Change-detection thresholds. The fine channels show one decimal, so
// measurement jitter must stay invisible; pump also drives the bar graph,
// the most expensive region to redraw, hence the coarser threshold.
const (
	tempThreshold  = 0.05
	humidThreshold = 0.05
	soilThreshold  = 0.05
	pumpThreshold  = 0.5
)

// Renderer owns the last-rendered state for each channel and the surface it
// paints on. Not safe for concurrent use: a single control loop drives it,
// and the surface is exclusively its own for the process lifetime.
type Renderer struct {
	surf  Surface
	temp  channel
	humid channel
	soil  channel
	pump  channel
}

// New creates a renderer for s. All channels start never-drawn, so the first
// UpdateValues call repaints everything.
func New(s Surface) *Renderer {
	return &Renderer{surf: s}
}

// Config controls panel orientation. Optional.
type Config struct {
	Rotation Rotation
}

// Configure brings the surface to a known state: applies the requested
// orientation and clears to the background. With no cfg the landscape
// default Rotation270 is used; a supplied Config is applied verbatim,
// including the zero Rotation0. Must be called once before any drawing.
func (r *Renderer) Configure(cfgs ...Config) {
	cfg := Config{Rotation: Rotation270}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	r.surf.SetRotation(cfg.Rotation)
	r.surf.ClearScreen(black)
}

// DrawLayout paints the static chrome: title, separator line and channel
// labels. Idempotent; intended to run once after Configure. Touches no
// channel values.
func (r *Renderer) DrawLayout() {
	r.surf.SetTextSize(1)

	r.surf.SetTextColor(white, black)
	r.surf.SetCursor(titleX, titleY)
	r.surf.Print(title)

	r.surf.DrawFastHLine(0, sepY, r.surf.Width(), white)

	r.surf.SetTextColor(cyan, black)
	r.surf.SetCursor(tempX, labelY)
	r.surf.Print("Temp:")
	r.surf.SetCursor(humidX, labelY)
	r.surf.Print("Humid:")
	r.surf.SetCursor(soilX, labelY)
	r.surf.Print("Soil:")

	r.surf.SetTextColor(green, black)
	r.surf.SetCursor(pumpLabelX, pumpLabelY)
	r.surf.Print("Pump Power Output:")
}

// UpdateValues compares one cycle of readings against the last-rendered
// state and repaints only the stale regions. Any value may be NaN,
// independently, on any call, including the first.
func (r *Renderer) UpdateValues(temp, humid, soil, pump float32) {
	if r.temp.changed(temp, tempThreshold) {
		r.drawTemp(temp)
		r.temp.observe(temp)
	}
	if r.humid.changed(humid, humidThreshold) {
		r.drawPercent(humidX, humidW, humid)
		r.humid.observe(humid)
	}
	if r.soil.changed(soil, soilThreshold) {
		r.drawPercent(soilX, soilW, soil)
		r.soil.observe(soil)
	}

	// The bar repaints when the pump text repainted or when the pump channel
	// has never been drawn. Snapshot never-drawn before observe advances it.
	barForced := r.pump.neverDrawn()
	textRepainted := r.pump.changed(pump, pumpThreshold)
	if textRepainted {
		r.drawPumpText(pump)
		r.pump.observe(pump)
	}
	if textRepainted || barForced {
		r.drawBar(pump)
	}
}

func (r *Renderer) drawTemp(v float32) {
	r.surf.FillRect(tempX, valueY, tempW, valueH, black)
	r.surf.SetTextSize(1)
	r.surf.SetTextColor(white, black)
	r.surf.SetCursor(tempX, valueY)
	if isNaN(v) {
		r.surf.Print(placeholderSmall)
		return
	}
	r.surf.PrintFloat(v, 1)

	// 2x2 hand-drawn degree mark, then the unit letter.
	x := degreeMarkX(v)
	r.surf.SetPixel(x, valueY, white)
	r.surf.SetPixel(x-1, valueY, white)
	r.surf.SetPixel(x, valueY+1, white)
	r.surf.SetPixel(x-1, valueY+1, white)
	r.surf.SetCursor(x+unitGap, valueY)
	r.surf.Print("C")
}

// drawPercent repaints a %-unit channel region rooted at x.
func (r *Renderer) drawPercent(x, w int16, v float32) {
	r.surf.FillRect(x, valueY, w, valueH, black)
	r.surf.SetTextSize(1)
	r.surf.SetTextColor(white, black)
	r.surf.SetCursor(x, valueY)
	if isNaN(v) {
		r.surf.Print(placeholderSmall)
		return
	}
	r.surf.PrintFloat(v, 1)

	// The unit hangs off the numeral's true end; width varies with digits.
	end := r.surf.CursorX()
	r.surf.SetCursor(end+unitGap, valueY)
	r.surf.Print("%")
}

func (r *Renderer) drawPumpText(v float32) {
	r.surf.FillRect(pumpX, pumpY, pumpW, pumpH, black)
	r.surf.SetTextSize(2)
	if isNaN(v) {
		r.surf.SetTextColor(white, black)
		r.surf.SetCursor(pumpX, pumpY)
		r.surf.Print(placeholderLarge)
		return
	}
	r.surf.SetTextColor(pumpColor(v), black)
	r.surf.SetCursor(pumpX, pumpY)
	r.surf.PrintFloat(mathx.Clamp(v, 0, 100), pumpDecimals(v))
}

// drawBar repaints the proportional pump bar: clamp to [0,100], map onto the
// bar width (undefined maps to empty), then the border outline on top.
func (r *Renderer) drawBar(v float32) {
	r.surf.FillRect(barX, barY, barW, barH, black)
	w := int16(0)
	if !isNaN(v) {
		w = int16(mathx.MapI32(int32(mathx.Clamp(v, 0, 100)), 0, 100, 0, barW))
	}
	r.surf.FillRect(barX, barY, w, barH, green)
	r.surf.DrawRect(barX, barY, barW, barH, white)
}

// pumpColor maps a defined pump value to its tier color.
func pumpColor(v float32) color.RGBA {
	switch {
	case v < 20:
		return blue
	case v <= 50:
		return yellow
	default:
		return red
	}
}

// pumpDecimals keeps whole in-range values short ("100"); anything
// fractional or outside [0,100] keeps one decimal, so a clamped reading
// still shows it was not an exact percentage.
func pumpDecimals(v float32) uint8 {
	if v >= 0 && v <= 100 && v == float32(int32(v)) {
		return 0
	}
	return 1
}
