// Package tinygfx adapts a tinygo displayer to the panel.Surface drawing
// capability, rendering text with tinyfont glyphs.
//
// Only drivers.Displayer is required. Displayers that additionally provide
// FillRectangle, FillScreen or SetRotation (the st7735 does all three) get
// those fast paths; anything else falls back to per-pixel loops, and
// SetRotation on a fixed-orientation displayer is a no-op.
package tinygfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"panelcode-go/panel"
	"panelcode-go/x/strconvx"
)

// Optional displayer fast paths.
type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

type screenFiller interface {
	FillScreen(c color.RGBA)
}

type rotater interface {
	SetRotation(rotation drivers.Rotation) error
}

// fontSpec pairs a font with the baseline offset below the cell top, the way
// tinyterm takes Font and FontOffset together.
type fontSpec struct {
	font   tinyfont.Fonter
	offset int16
}

// Device implements panel.Surface on top of a drivers.Displayer.
type Device struct {
	disp  drivers.Displayer
	small fontSpec
	large fontSpec

	font   fontSpec // selected by SetTextSize
	fg, bg color.RGBA
	x, y   int16
}

var _ panel.Surface = (*Device)(nil)

// Config selects the fonts behind the two text sizes. All fields optional.
// Offsets are taken verbatim with a supplied font; the defaults below apply
// only when the font itself is defaulted.
type Config struct {
	// Small renders text size 1. Defaults to tinyfont.Picopixel.
	Small tinyfont.Fonter
	// SmallOffset is Small's baseline offset. Defaults to 4 with Picopixel.
	SmallOffset int16
	// Large renders text size 2. Defaults to proggy.TinySZ8pt7b.
	Large tinyfont.Fonter
	// LargeOffset is Large's baseline offset. Defaults to 6 with TinySZ8pt7b.
	LargeOffset int16
}

// New creates an adapter for disp. The displayer must already be configured.
func New(disp drivers.Displayer) *Device {
	return &Device{disp: disp}
}

// Configure applies fonts and resets the text state. May be called with no
// cfg for the defaults.
func (d *Device) Configure(cfgs ...Config) {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Small == nil {
		cfg.Small = &tinyfont.Picopixel
		cfg.SmallOffset = 4
	}
	if cfg.Large == nil {
		cfg.Large = &proggy.TinySZ8pt7b
		cfg.LargeOffset = 6
	}
	d.small = fontSpec{cfg.Small, cfg.SmallOffset}
	d.large = fontSpec{cfg.Large, cfg.LargeOffset}
	d.font = d.small
	d.fg = color.RGBA{255, 255, 255, 255}
	d.bg = color.RGBA{0, 0, 0, 255}
}

func (d *Device) ClearScreen(c color.RGBA) {
	if f, ok := d.disp.(screenFiller); ok {
		f.FillScreen(c)
		return
	}
	w, h := d.disp.Size()
	d.fillRect(0, 0, w, h, c)
}

func (d *Device) SetRotation(r panel.Rotation) {
	if rot, ok := d.disp.(rotater); ok {
		_ = rot.SetRotation(drivers.Rotation(r))
	}
}

func (d *Device) SetTextSize(scale uint8) {
	if scale >= 2 {
		d.font = d.large
		return
	}
	d.font = d.small
}

func (d *Device) SetTextColor(fg, bg color.RGBA) { d.fg, d.bg = fg, bg }

func (d *Device) SetCursor(x, y int16) { d.x, d.y = x, y }

// Print draws s at the cursor and advances it by the string's outbox width.
// The cursor marks the cell top-left; the font's offset drops the baseline
// into the cell, so the erase box and the glyphs cover the same rows.
func (d *Device) Print(s string) {
	if d.font.font == nil {
		d.Configure()
	}
	_, outbox := tinyfont.LineWidth(d.font.font, s)
	if d.bg != d.fg {
		d.fillRect(d.x, d.y, int16(outbox), int16(d.font.font.GetYAdvance()), d.bg)
	}
	tinyfont.WriteLine(d.disp, d.font.font, d.x, d.y+d.font.offset, s, d.fg)
	d.x += int16(outbox)
}

func (d *Device) PrintFloat(v float32, decimals uint8) {
	d.Print(strconvx.FormatFloat(float64(v), 'f', int(decimals), 32))
}

func (d *Device) CursorX() int16 { return d.x }

func (d *Device) FillRect(x, y, w, h int16, c color.RGBA) {
	d.fillRect(x, y, w, h, c)
}

func (d *Device) DrawRect(x, y, w, h int16, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	d.fillRect(x, y, w, 1, c)
	d.fillRect(x, y+h-1, w, 1, c)
	d.fillRect(x, y, 1, h, c)
	d.fillRect(x+w-1, y, 1, h, c)
}

func (d *Device) DrawFastHLine(x, y, w int16, c color.RGBA) {
	d.fillRect(x, y, w, 1, c)
}

func (d *Device) SetPixel(x, y int16, c color.RGBA) {
	d.disp.SetPixel(x, y, c)
}

func (d *Device) Width() int16 {
	w, _ := d.disp.Size()
	return w
}

// Display flushes buffered displayers; immediate-mode drivers return nil.
func (d *Device) Display() error { return d.disp.Display() }

func (d *Device) fillRect(x, y, w, h int16, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	if f, ok := d.disp.(rectFiller); ok {
		_ = f.FillRectangle(x, y, w, h, c)
		return
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			d.disp.SetPixel(xx, yy, c)
		}
	}
}
