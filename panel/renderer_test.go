package panel

import (
	"image/color"
	"math"
	"strconv"
	"testing"
)

var nan = float32(math.NaN())

type rect struct {
	x, y, w, h int16
	c          color.RGBA
}

type point struct {
	x, y int16
	c    color.RGBA
}

type text struct {
	s    string
	x, y int16
	size uint8
	fg   color.RGBA
}

// fakeSurface records every draw call so tests can assert exactly which
// regions were touched and what was printed where.
type fakeSurface struct {
	rotation Rotation
	clears   []color.RGBA
	size     uint8
	fg, bg   color.RGBA
	x, y     int16

	fills    []rect
	outlines []rect
	hlines   []rect
	pixels   []point
	texts    []text
}

func (f *fakeSurface) ClearScreen(c color.RGBA)       { f.clears = append(f.clears, c) }
func (f *fakeSurface) SetRotation(r Rotation)         { f.rotation = r }
func (f *fakeSurface) SetTextSize(scale uint8)        { f.size = scale }
func (f *fakeSurface) SetTextColor(fg, bg color.RGBA) { f.fg, f.bg = fg, bg }
func (f *fakeSurface) SetCursor(x, y int16)           { f.x, f.y = x, y }

// Print records the string and advances the cursor by the classic 6 px cell
// per size unit the layout was tuned for.
func (f *fakeSurface) Print(s string) {
	f.texts = append(f.texts, text{s: s, x: f.x, y: f.y, size: f.size, fg: f.fg})
	f.x += int16(len(s)) * 6 * int16(f.size)
}

func (f *fakeSurface) PrintFloat(v float32, decimals uint8) {
	f.Print(strconv.FormatFloat(float64(v), 'f', int(decimals), 32))
}

func (f *fakeSurface) CursorX() int16 { return f.x }

func (f *fakeSurface) FillRect(x, y, w, h int16, c color.RGBA) {
	f.fills = append(f.fills, rect{x, y, w, h, c})
}

func (f *fakeSurface) DrawRect(x, y, w, h int16, c color.RGBA) {
	f.outlines = append(f.outlines, rect{x, y, w, h, c})
}

func (f *fakeSurface) DrawFastHLine(x, y, w int16, c color.RGBA) {
	f.hlines = append(f.hlines, rect{x, y, w, 1, c})
}

func (f *fakeSurface) SetPixel(x, y int16, c color.RGBA) {
	f.pixels = append(f.pixels, point{x, y, c})
}

func (f *fakeSurface) Width() int16 { return 160 }

// paints is the total number of draw calls seen so far.
func (f *fakeSurface) paints() int {
	return len(f.clears) + len(f.fills) + len(f.outlines) +
		len(f.hlines) + len(f.pixels) + len(f.texts)
}

func (f *fakeSurface) hasFill(want rect) bool {
	for _, r := range f.fills {
		if r == want {
			return true
		}
	}
	return false
}

func (f *fakeSurface) hasOutline(want rect) bool {
	for _, r := range f.outlines {
		if r == want {
			return true
		}
	}
	return false
}

func (f *fakeSurface) hasPixel(want point) bool {
	for _, p := range f.pixels {
		if p == want {
			return true
		}
	}
	return false
}

// lastBarFill returns the most recent value fill (not the black erase) in
// the bar region.
func (f *fakeSurface) lastBarFill() (rect, bool) {
	for i := len(f.fills) - 1; i >= 0; i-- {
		if r := f.fills[i]; r.x == barX && r.y == barY && r.c == green {
			return r, true
		}
	}
	return rect{}, false
}

func (f *fakeSurface) lastTextAt(x, y int16) (text, bool) {
	for i := len(f.texts) - 1; i >= 0; i-- {
		if tx := f.texts[i]; tx.x == x && tx.y == y {
			return tx, true
		}
	}
	return text{}, false
}

func newPanel(t *testing.T) (*Renderer, *fakeSurface) {
	t.Helper()
	f := &fakeSurface{}
	r := New(f)
	r.Configure()
	r.DrawLayout()
	return r, f
}

func TestConfigureRotation(t *testing.T) {
	f := &fakeSurface{}
	r := New(f)

	r.Configure()
	if f.rotation != Rotation270 {
		t.Fatalf("default rotation = %d, want %d", f.rotation, Rotation270)
	}
	if len(f.clears) != 1 || f.clears[0] != black {
		t.Fatalf("Configure must clear to black once, got %v", f.clears)
	}

	for _, rot := range []Rotation{Rotation0, Rotation90, Rotation180, Rotation270} {
		r.Configure(Config{Rotation: rot})
		if f.rotation != rot {
			t.Errorf("explicit rotation %d not applied (got %d)", rot, f.rotation)
		}
	}
}

func TestDrawLayoutChrome(t *testing.T) {
	_, f := newPanel(t)

	want := []text{
		{s: title, x: titleX, y: titleY, size: 1, fg: white},
		{s: "Temp:", x: tempX, y: labelY, size: 1, fg: cyan},
		{s: "Humid:", x: humidX, y: labelY, size: 1, fg: cyan},
		{s: "Soil:", x: soilX, y: labelY, size: 1, fg: cyan},
		{s: "Pump Power Output:", x: pumpLabelX, y: pumpLabelY, size: 1, fg: green},
	}
	for _, w := range want {
		got, ok := f.lastTextAt(w.x, w.y)
		if !ok || got != w {
			t.Errorf("chrome at (%d,%d): got %+v, want %+v", w.x, w.y, got, w)
		}
	}

	sep := rect{0, sepY, 160, 1, white}
	found := false
	for _, h := range f.hlines {
		if h == sep {
			found = true
		}
	}
	if !found {
		t.Errorf("separator %+v not drawn", sep)
	}
}

func TestFirstUpdatePaintsAllRegions(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(20, 50, 30, 10)

	erases := []rect{
		{tempX, valueY, tempW, valueH, black},
		{humidX, valueY, humidW, valueH, black},
		{soilX, valueY, soilW, valueH, black},
		{pumpX, pumpY, pumpW, pumpH, black},
		{barX, barY, barW, barH, black},
	}
	for _, e := range erases {
		if !f.hasFill(e) {
			t.Errorf("region %+v not erased on first update", e)
		}
	}

	if bar, ok := f.lastBarFill(); !ok || bar.w != 14 {
		t.Errorf("bar fill = %+v (ok=%v), want width 14", bar, ok)
	}
	if !f.hasOutline(rect{barX, barY, barW, barH, white}) {
		t.Error("bar border missing")
	}
	if pump, ok := f.lastTextAt(pumpX, pumpY); !ok || pump.s != "10" || pump.fg != blue || pump.size != 2 {
		t.Errorf("pump text = %+v, want %q in blue at size 2", pump, "10")
	}
}

func TestDriftWithinThresholdsPaintsNothing(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(20, 50, 30, 10)

	before := f.paints()
	r.UpdateValues(20.02, 50, 30, 10)
	if d := f.paints() - before; d != 0 {
		t.Fatalf("in-threshold drift painted %d ops, want 0", d)
	}
}

func TestIdenticalCallPaintsNothing(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(20, 50, 30, 10)

	before := f.paints()
	r.UpdateValues(20, 50, 30, 10)
	if d := f.paints() - before; d != 0 {
		t.Fatalf("identical values painted %d ops, want 0", d)
	}
}

func TestUndefinedTempRepaintsOnlyTemp(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(20, 50, 30, 10)

	fillsBefore, textsBefore := len(f.fills), len(f.texts)
	pixelsBefore, outlinesBefore := len(f.pixels), len(f.outlines)

	r.UpdateValues(nan, 50, 30, 10)

	if got := f.fills[fillsBefore:]; len(got) != 1 || got[0] != (rect{tempX, valueY, tempW, valueH, black}) {
		t.Fatalf("fills after NaN temp = %+v, want only the temp erase", got)
	}
	if got := f.texts[textsBefore:]; len(got) != 1 || got[0].s != placeholderSmall {
		t.Fatalf("texts after NaN temp = %+v, want one %q", got, placeholderSmall)
	}
	if len(f.pixels) != pixelsBefore {
		t.Error("degree mark drawn for an undefined temperature")
	}
	if len(f.outlines) != outlinesBefore {
		t.Error("bar repainted when only temperature changed")
	}

	// Undefined is re-rendered on every call until a value returns.
	fillsBefore = len(f.fills)
	r.UpdateValues(nan, 50, 30, 10)
	if len(f.fills) != fillsBefore+1 {
		t.Error("undefined temperature must repaint on every call")
	}
}

func TestFirstCallAllUndefined(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(nan, nan, nan, nan)

	for _, x := range []int16{tempX, humidX, soilX} {
		if got, ok := f.lastTextAt(x, valueY); !ok || got.s != placeholderSmall {
			t.Errorf("placeholder missing at x=%d: %+v", x, got)
		}
	}
	if pump, ok := f.lastTextAt(pumpX, pumpY); !ok || pump.s != placeholderLarge || pump.fg != white {
		t.Errorf("pump placeholder = %+v, want %q in white", pump, placeholderLarge)
	}
	if bar, ok := f.lastBarFill(); !ok || bar.w != 0 {
		t.Errorf("bar fill = %+v, want empty bar", bar)
	}
	if !f.hasOutline(rect{barX, barY, barW, barH, white}) {
		t.Error("bar border missing on first draw")
	}
}

func TestTempUnitPlacement(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(23.4, nan, nan, nan)

	num, ok := f.lastTextAt(tempX, valueY)
	if !ok || num.s != "23.4" {
		t.Fatalf("temperature text = %+v, want 23.4", num)
	}

	markX := degreeMarkX(23.4)
	for _, p := range []point{
		{markX, valueY, white},
		{markX - 1, valueY, white},
		{markX, valueY + 1, white},
		{markX - 1, valueY + 1, white},
	} {
		if !f.hasPixel(p) {
			t.Errorf("degree mark pixel %+v missing", p)
		}
	}
	if c, ok := f.lastTextAt(markX+unitGap, valueY); !ok || c.s != "C" {
		t.Errorf("unit letter = %+v, want C after the mark", c)
	}
}

func TestPercentUnitFollowsNumeral(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(nan, 50, nan, nan)

	// "50.0" is four 6 px cells; the unit starts unitGap past its end.
	wantX := int16(humidX + 4*6 + unitGap)
	if pct, ok := f.lastTextAt(wantX, valueY); !ok || pct.s != "%" {
		t.Errorf("percent glyph at x=%d: %+v (ok=%v)", wantX, pct, ok)
	}
}

func TestPumpTextFormatting(t *testing.T) {
	tests := []struct {
		name string
		v    float32
		want string
		fg   color.RGBA
	}{
		{"whole value, no decimals", 100, "100", red},
		{"fractional keeps one decimal", 99.5, "99.5", red},
		{"low tier whole", 10, "10", blue},
		{"clamped keeps decimal", 150, "100.0", red},
		{"negative clamps to zero", -3.5, "0.0", blue},
		{"undefined placeholder", nan, "--", white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, f := newPanel(t)
			r.UpdateValues(nan, nan, nan, tt.v)
			got, ok := f.lastTextAt(pumpX, pumpY)
			if !ok || got.s != tt.want || got.fg != tt.fg || got.size != 2 {
				t.Fatalf("pump text = %+v, want %q in %v at size 2", got, tt.want, tt.fg)
			}
		})
	}
}

func TestPumpColorTiers(t *testing.T) {
	tests := []struct {
		v    float32
		want color.RGBA
	}{
		{19.9, blue},
		{20, yellow},
		{50, yellow},
		{50.1, red},
	}
	for _, tt := range tests {
		if got := pumpColor(tt.v); got != tt.want {
			t.Errorf("pumpColor(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestPumpDecimals(t *testing.T) {
	tests := []struct {
		v    float32
		want uint8
	}{
		{0, 0},
		{42, 0},
		{100, 0},
		{99.5, 1},
		{0.25, 1},
		{-1, 1},
		{150, 1},
	}
	for _, tt := range tests {
		if got := pumpDecimals(tt.v); got != tt.want {
			t.Errorf("pumpDecimals(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestBarWidths(t *testing.T) {
	tests := []struct {
		name string
		v    float32
		want int16
	}{
		{"empty at zero", 0, 0},
		{"ten percent", 10, 14},
		{"truncated", 99.5, 138},
		{"full", 100, 140},
		{"saturates high", 150, 140},
		{"saturates low", -20, 0},
		{"undefined", nan, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, f := newPanel(t)
			r.UpdateValues(nan, nan, nan, tt.v)
			bar, ok := f.lastBarFill()
			if !ok || bar.w != tt.want {
				t.Fatalf("bar fill = %+v (ok=%v), want width %d", bar, ok, tt.want)
			}
		})
	}
}

func TestBarRepaintsWithPumpText(t *testing.T) {
	r, f := newPanel(t)
	r.UpdateValues(20, 50, 30, 10)

	outlines := len(f.outlines)
	// A fine-channel change alone leaves the bar untouched.
	r.UpdateValues(21, 50, 30, 10)
	if len(f.outlines) != outlines {
		t.Fatal("bar repainted without a pump change")
	}

	// A pump change repaints fill and border together.
	r.UpdateValues(21, 50, 30, 90)
	if len(f.outlines) != outlines+1 {
		t.Fatal("bar did not repaint with the pump text")
	}
	if bar, _ := f.lastBarFill(); bar.w != 126 {
		t.Fatalf("bar width after 90 = %d, want 126", bar.w)
	}
}
