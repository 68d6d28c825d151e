// Copyright © 2025 Termlight contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: query_pty_test.go
// Summary: End-to-end OSC query against a real PTY pair, with the test
// playing the terminal emulator on the master side.

//go:build unix

package termlight

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
)

// openPTY returns a master/slave pair or skips when the environment has no
// PTY support (some containers).
func openPTY(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	return ptmx, tty
}

func TestQueryOverPTY(t *testing.T) {
	ptmx, tty := openPTY(t)

	// Terminal emulator side: wait for both queries, answer OSC 11.
	go func() {
		buf := make([]byte, 128)
		seen := 0
		want := len(oscBackgroundQuery) + len(dsrStatusQuery)
		for seen < want {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			seen += n
		}
		ptmx.WriteString("\x1b]11;rgb:1e1e/2a2a/3b3b\a")
	}()

	guard, err := makeRaw(int(tty.Fd()))
	if err != nil {
		t.Fatalf("raw mode: %v", err)
	}
	reply, err := runQuery(guard, tty, &ttyDevice{f: tty}, time.Second)
	if errors.Is(err, os.ErrNoDeadline) {
		t.Skipf("pty does not support read deadlines: %v", err)
	}
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	c, err := parseOSCColor(reply)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c != (Color{R: 0x1e, G: 0x2a, B: 0x3b}) {
		t.Fatalf("got %+v, want {30 42 59}", c)
	}
}

func TestQueryOverPTYUnansweredTimesOut(t *testing.T) {
	ptmx, tty := openPTY(t)

	// Drain the queries but never answer, like a terminal without OSC 11
	// or DSR support.
	go func() {
		buf := make([]byte, 128)
		for {
			if _, err := ptmx.Read(buf); err != nil {
				return
			}
		}
	}()

	guard, err := makeRaw(int(tty.Fd()))
	if err != nil {
		t.Fatalf("raw mode: %v", err)
	}
	start := time.Now()
	_, err = runQuery(guard, tty, &ttyDevice{f: tty}, 50*time.Millisecond)
	if errors.Is(err, os.ErrNoDeadline) {
		t.Skipf("pty does not support read deadlines: %v", err)
	}
	if !errors.Is(err, errTimeout) {
		t.Fatalf("want errTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout not bounded, took %v", elapsed)
	}
}

func TestQueryOverPTYDSROnly(t *testing.T) {
	ptmx, tty := openPTY(t)

	// Answer only the DSR probe, like PuTTY's pterm: detection should fail
	// fast rather than waiting out the budget.
	go func() {
		buf := make([]byte, 128)
		seen := 0
		want := len(oscBackgroundQuery) + len(dsrStatusQuery)
		for seen < want {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			seen += n
		}
		ptmx.WriteString("\x1b[0n")
	}()

	guard, err := makeRaw(int(tty.Fd()))
	if err != nil {
		t.Fatalf("raw mode: %v", err)
	}
	_, err = runQuery(guard, tty, &ttyDevice{f: tty}, 5*time.Second)
	if errors.Is(err, os.ErrNoDeadline) {
		t.Skipf("pty does not support read deadlines: %v", err)
	}
	if !errors.Is(err, errUnsupportedOSC) {
		t.Fatalf("want errUnsupportedOSC, got %v", err)
	}
}
