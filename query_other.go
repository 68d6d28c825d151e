//go:build !unix

package termlight

import "time"

const oscSupported = false

// queryBackgroundColor is a stub: the deadline-bounded raw-mode read the
// OSC strategy needs is only wired up for unix-like systems, so detection
// falls straight through to COLORFGBG elsewhere.
func queryBackgroundColor(time.Duration) (Color, error) {
	return Color{}, ErrUnsupported
}
