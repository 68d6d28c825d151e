package termlight

import (
	"fmt"
	"strconv"
	"strings"
)

// colorFgBgVar is set by konsole, the rxvt family and a few other terminals,
// and sometimes by hand. Its value looks like "15;0": foreground then
// background as ANSI color indices, occasionally with extra fields appended.
const colorFgBgVar = "COLORFGBG"

// ParseColorFgBg extracts the background color from a COLORFGBG value.
//
// Only the second field (the background index, 0-15) is consumed; it is
// mapped through the conventional ANSI palette, so the result is less
// precise than a color obtained from the terminal itself and may not match
// a reconfigured palette.
func ParseColorFgBg(value string) (Color, error) {
	fields := strings.Split(value, ";")
	if len(fields) < 2 {
		return Color{}, fmt.Errorf("%w: COLORFGBG value %q needs at least fg;bg", ErrParse, value)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Color{}, fmt.Errorf("%w: background index %q is not a number", ErrParse, fields[1])
	}
	c, ok := AnsiColor(idx)
	if !ok {
		return Color{}, fmt.Errorf("%w: background index %d outside 0-15", ErrParse, idx)
	}
	return c, nil
}
