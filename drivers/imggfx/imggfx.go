// Package imggfx implements panel.Surface on a host image buffer, for the
// simulator and for tests that want real pixels. Text renders through
// golang.org/x/image's basicfont; size 2 pixel-doubles the same face.
package imggfx

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"panelcode-go/panel"
	"panelcode-go/x/strconvx"
)

// Device implements panel.Surface on an RGBA image.
type Device struct {
	img  *image.RGBA
	face font.Face

	rot    panel.Rotation
	size   uint8
	fg, bg color.RGBA
	x, y   int16
	paints int
}

var _ panel.Surface = (*Device)(nil)

// New creates a w x h surface. The buffer starts fully transparent; callers
// normally clear it via the renderer's Configure.
func New(w, h int) *Device {
	return &Device{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
		size: 1,
		fg:   color.RGBA{255, 255, 255, 255},
		bg:   color.RGBA{0, 0, 0, 255},
	}
}

// Image exposes the backing buffer for encoding.
func (d *Device) Image() *image.RGBA { return d.img }

// Paints counts mutating draw calls. The sim writes a frame only when it
// advanced since the last write.
func (d *Device) Paints() int { return d.paints }

// Rotation reports the recorded orientation; the buffer itself is fixed.
func (d *Device) Rotation() panel.Rotation { return d.rot }

func (d *Device) ClearScreen(c color.RGBA) {
	draw.Draw(d.img, d.img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	d.paints++
}

func (d *Device) SetRotation(r panel.Rotation) { d.rot = r }

func (d *Device) SetTextSize(scale uint8) {
	if scale < 1 {
		scale = 1
	}
	d.size = scale
}

func (d *Device) SetTextColor(fg, bg color.RGBA) { d.fg, d.bg = fg, bg }

func (d *Device) SetCursor(x, y int16) { d.x, d.y = x, y }

func (d *Device) Print(s string) {
	d.x += d.drawString(s)
	d.paints++
}

func (d *Device) PrintFloat(v float32, decimals uint8) {
	d.Print(strconvx.FormatFloat(float64(v), 'f', int(decimals), 32))
}

func (d *Device) CursorX() int16 { return d.x }

func (d *Device) FillRect(x, y, w, h int16, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h))
	draw.Draw(d.img, r, &image.Uniform{c}, image.Point{}, draw.Src)
	d.paints++
}

func (d *Device) DrawRect(x, y, w, h int16, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	d.FillRect(x, y, w, 1, c)
	d.FillRect(x, y+h-1, w, 1, c)
	d.FillRect(x, y, 1, h, c)
	d.FillRect(x+w-1, y, 1, h, c)
}

func (d *Device) DrawFastHLine(x, y, w int16, c color.RGBA) {
	d.FillRect(x, y, w, 1, c)
}

func (d *Device) SetPixel(x, y int16, c color.RGBA) {
	d.img.SetRGBA(int(x), int(y), c) // bounds-checked by image.RGBA
	d.paints++
}

func (d *Device) Width() int16 { return int16(d.img.Bounds().Dx()) }

// drawString rasterises s at the cursor and returns the cursor advance.
// The glyphs are drawn at natural size into a scratch cell over the text
// background, then blitted at the current scale.
func (d *Device) drawString(s string) int16 {
	if s == "" {
		return 0
	}
	adv := font.MeasureString(d.face, s).Ceil()
	if adv <= 0 {
		return 0
	}
	m := d.face.Metrics()
	cellH := m.Ascent.Ceil() + m.Descent.Ceil()

	cell := image.NewRGBA(image.Rect(0, 0, adv, cellH))
	draw.Draw(cell, cell.Bounds(), &image.Uniform{d.bg}, image.Point{}, draw.Src)
	dr := font.Drawer{
		Dst:  cell,
		Src:  image.NewUniform(d.fg),
		Face: d.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	dr.DrawString(s)

	scale := int(d.size)
	for yy := 0; yy < cellH; yy++ {
		for xx := 0; xx < adv; xx++ {
			c := cell.RGBAAt(xx, yy)
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					d.img.SetRGBA(int(d.x)+xx*scale+sx, int(d.y)+yy*scale+sy, c)
				}
			}
		}
	}
	return int16(adv * scale)
}
