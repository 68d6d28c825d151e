// Copyright © 2025 Termlight contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termlight.go
// Summary: Public entry points and strategy ordering for terminal
// background detection.

// Package termlight answers the question "is the terminal background dark
// or light?".
//
// It reports the terminal's background color as RGB and as a luma value
// between 0 (black) and 1 (white), so a TUI can pick a matching skin at
// startup:
//
//	useLightSkin := false
//	if l, err := termlight.Luma(); err == nil {
//		useLightSkin = l > 0.6
//	}
//
// Two strategies are tried in order. On unix-like systems the terminal is
// asked directly with the xterm "dynamic colors" OSC 11 query, which is
// precise and up to date but needs a short bounded wait for the reply. If
// that fails, or on other platforms, the COLORFGBG environment variable is
// consulted, which is fast but approximate and sometimes stale. When
// neither works the result is ErrUnsupported and callers should fall back
// to a default skin.
//
// Nothing is cached: every call probes again. Concurrent calls against the
// same terminal would interleave raw-mode toggles and reply bytes, so
// callers wanting parallelism must serialize detection themselves.
package termlight

import (
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// DefaultTimeout bounds the wait for the terminal's OSC reply when no
// WithTimeout option is given. Answers typically arrive within a few
// milliseconds; terminals that never answer cost the full budget, which is
// why it is kept small.
const DefaultTimeout = 20 * time.Millisecond

var (
	// ErrUnsupported means no strategy produced a usable color: no
	// terminal, a terminal that does not answer the query, and no usable
	// COLORFGBG. It is the only error returned by BackgroundColor and
	// Luma.
	ErrUnsupported = errors.New("termlight: cannot determine terminal background")

	// ErrParse marks a reply or environment value that was present but
	// malformed.
	ErrParse = errors.New("termlight: malformed color value")
)

type options struct {
	timeout time.Duration
}

// Option adjusts a detection call.
type Option func(*options)

// WithTimeout overrides DefaultTimeout for the OSC strategy.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// BackgroundColor determines the terminal's background color, trying the
// OSC query first and COLORFGBG second. Each strategy runs at most once per
// call; the first success wins.
func BackgroundColor(opts ...Option) (Color, error) {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	for _, detect := range detectors(o) {
		if c, err := detect(); err == nil {
			return c, nil
		}
	}
	return Color{}, ErrUnsupported
}

// Luma determines the background color and returns its luma. See
// Color.Luma for how to interpret the value.
func Luma(opts ...Option) (float64, error) {
	c, err := BackgroundColor(opts...)
	if err != nil {
		return 0, err
	}
	return c.Luma(), nil
}

// detectors builds the ordered strategy list for one call. The OSC strategy
// is compiled in only on unix-like systems, and skipped when the process
// has no terminal attached at all, so piped contexts fail without eating
// the reply timeout.
func detectors(o options) []func() (Color, error) {
	var list []func() (Color, error)
	if oscSupported && interactive() {
		list = append(list, func() (Color, error) {
			return queryBackgroundColor(o.timeout)
		})
	}
	list = append(list, envBackgroundColor)
	return list
}

func envBackgroundColor() (Color, error) {
	value, ok := os.LookupEnv(colorFgBgVar)
	if !ok {
		return Color{}, ErrUnsupported
	}
	return ParseColorFgBg(value)
}

func interactive() bool {
	for _, f := range []*os.File{os.Stderr, os.Stdout, os.Stdin} {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return true
		}
	}
	return false
}
