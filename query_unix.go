// Copyright © 2025 Termlight contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: query_unix.go
// Summary: Unix side of the OSC background query: controlling-terminal
// access, raw input mode, and deadline-bounded reads.

//go:build unix

package termlight

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

const oscSupported = true

// ttyDevice adapts the controlling terminal to deviceReader using file read
// deadlines.
type ttyDevice struct {
	f *os.File
}

func (d *ttyDevice) readTimeout(p []byte, dur time.Duration) (int, error) {
	if err := d.f.SetReadDeadline(time.Now().Add(dur)); err != nil {
		return 0, fmt.Errorf("set read deadline: %w", err)
	}
	return d.f.Read(p)
}

// makeRaw disables line buffering and echo on fd so the reply reaches us
// immediately and is not printed. The returned guard undoes it.
func makeRaw(fd int) (*rawModeGuard, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &rawModeGuard{restoreFn: func() error {
		return term.Restore(fd, state)
	}}, nil
}

// queryBackgroundColor asks the terminal itself for its background color.
// It opens /dev/tty directly rather than using the std streams, so it keeps
// working when stdout or stdin are redirected while the terminal is still
// interactive. Failing to open it means there is no controlling terminal.
func queryBackgroundColor(timeout time.Duration) (Color, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return Color{}, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	guard, err := makeRaw(int(tty.Fd()))
	if err != nil {
		return Color{}, fmt.Errorf("raw mode: %w", err)
	}
	reply, err := runQuery(guard, tty, &ttyDevice{f: tty}, timeout)
	if err != nil {
		return Color{}, err
	}
	return parseOSCColor(reply)
}
