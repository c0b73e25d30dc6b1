package panel

import "image/color"

// Rotation selects the panel orientation in quarter turns. Values match
// the rotations tinygo display drivers accept.
type Rotation uint8

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// Surface is the drawing capability the renderer paints on. Implementations
// translate these calls onto a concrete display; every call is assumed to
// succeed, so none return errors, and rectangle widths/heights <= 0 must be
// no-ops.
//
// Print and PrintFloat advance the cursor, so CursorX after a print reports
// where the text ended; unit glyph placement depends on that.
type Surface interface {
	// ClearScreen fills the whole display with c.
	ClearScreen(c color.RGBA)
	// SetRotation applies the panel orientation.
	SetRotation(r Rotation)
	// SetTextSize selects the text scale (1 or 2).
	SetTextSize(scale uint8)
	// SetTextColor sets the glyph foreground and the cell background
	// painted behind it.
	SetTextColor(fg, bg color.RGBA)
	// SetCursor moves the text origin to (x, y), the top-left of the next
	// glyph cell.
	SetCursor(x, y int16)
	// Print writes s at the cursor.
	Print(s string)
	// PrintFloat writes v with a fixed number of decimals at the cursor.
	PrintFloat(v float32, decimals uint8)
	// CursorX reports the cursor X position.
	CursorX() int16
	FillRect(x, y, w, h int16, c color.RGBA)
	DrawRect(x, y, w, h int16, c color.RGBA)
	DrawFastHLine(x, y, w int16, c color.RGBA)
	SetPixel(x, y int16, c color.RGBA)
	// Width reports the drawable width in the current orientation.
	Width() int16
}
