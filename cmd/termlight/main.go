// Copyright © 2025 Termlight contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/termlight/main.go
// Summary: Diagnostic command printing the detected terminal background.
// Usage: Run `termlight` in the terminal you want to probe.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/framegrace/termlight"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("termlight", flag.ContinueOnError)
	timeout := fs.Duration("timeout", termlight.DefaultTimeout, "How long to wait for the terminal's OSC reply")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	color, err := termlight.BackgroundColor(termlight.WithTimeout(*timeout))
	if err != nil {
		return err
	}

	luma := color.Luma()
	verdict := "medium"
	switch {
	case luma < 0.2:
		verdict = "dark"
	case luma > 0.85:
		verdict = "light"
	}

	fmt.Printf("background: %s\n", color.Hex())
	fmt.Printf("luma:       %.3f\n", luma)
	fmt.Printf("verdict:    %s\n", verdict)
	return nil
}
