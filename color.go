package termlight

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit-per-channel RGB triple, as reported by the terminal.
type Color struct {
	R, G, B uint8
}

// Luma returns the perceived brightness of the color, from 0 (black) to
// 1 (white), using Rec. 709 weights on the gamma-encoded channels:
//
//	(0.2126*R + 0.7152*G + 0.0722*B) / 255
//
// As a rule of thumb a terminal background is "dark" below 0.2 and "light"
// above 0.85; if a single pivot is needed, 0.6 is a reasonable one.
func (c Color) Luma() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// ansiPalette maps the 16 standard ANSI color indices to the conventional
// xterm RGB values. Real terminals routinely override the low indices, so
// colors derived through this table are approximate.
var ansiPalette = [16]Color{
	{0, 0, 0},       // 0 black
	{128, 0, 0},     // 1 maroon
	{0, 128, 0},     // 2 green
	{128, 128, 0},   // 3 olive
	{0, 0, 128},     // 4 navy
	{128, 0, 128},   // 5 purple
	{0, 128, 128},   // 6 teal
	{192, 192, 192}, // 7 silver
	{128, 128, 128}, // 8 grey
	{255, 0, 0},     // 9 red
	{0, 255, 0},     // 10 lime
	{255, 255, 0},   // 11 yellow
	{0, 0, 255},     // 12 blue
	{255, 0, 255},   // 13 fuchsia
	{0, 255, 255},   // 14 aqua
	{255, 255, 255}, // 15 white
}

// AnsiColor returns the conventional RGB value for an ANSI color index.
// The second return is false when the index is outside [0, 15].
func AnsiColor(index int) (Color, bool) {
	if index < 0 || index >= len(ansiPalette) {
		return Color{}, false
	}
	return ansiPalette[index], true
}
