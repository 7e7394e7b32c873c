// Package terminal detects what the attached terminal can do and provides
// the screen control used by the watch loop.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Info holds terminal capability information.
type Info struct {
	IsTTY     bool
	NoColor   bool
	Width     int
	Height    int
	ForceFlag bool // Set when --no-color flag is used
}

// Detect returns terminal information for stdout.
func Detect() *Info {
	return detect(int(os.Stdout.Fd()), os.LookupEnv)
}

func detect(fd int, lookupEnv func(string) (string, bool)) *Info {
	isTTY := term.IsTerminal(fd)

	width, height := 80, 24

	if isTTY {
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
	}

	// https://no-color.org/
	_, noColor := lookupEnv("NO_COLOR")

	if termName, _ := lookupEnv("TERM"); termName == "dumb" {
		noColor = true
	}

	return &Info{
		IsTTY:   isTTY,
		NoColor: noColor,
		Width:   width,
		Height:  height,
	}
}

// ColorEnabled returns true if colored output should be used.
func (t *Info) ColorEnabled() bool {
	if t.ForceFlag {
		return false
	}

	return t.IsTTY && !t.NoColor
}

// SpinnersEnabled returns true if spinners should be used.
func (t *Info) SpinnersEnabled() bool {
	return t.IsTTY && !t.NoColor
}

// Interactive reports whether stdout is a terminal a person is looking at.
// Logging to stderr is switched off in that case so it does not tear the
// watch screen.
func (t *Info) Interactive() bool {
	return t.IsTTY
}
