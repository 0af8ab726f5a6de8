// Package ui prints colored status lines for envsync on stderr, leaving
// stdout for data.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	// ColorAuto detects color support from the output and environment.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables colored output.
	ColorNever
)

// ParseColorMode converts auto, always or never to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (must be auto, always, or never)", s)
	}
}

// UI writes status messages with optional color.
type UI struct {
	out *termenv.Output
}

// NewWithWriter creates a UI writing to w. NO_COLOR disables color in
// every mode.
func NewWithWriter(mode ColorMode, w io.Writer) *UI {
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}

	var profile termenv.Profile
	switch mode {
	case ColorNever:
		profile = termenv.Ascii
	case ColorAlways:
		profile = termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
	default:
		profile = termenv.NewOutput(w).EnvColorProfile()
	}

	return &UI{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// Success prints a success message in green.
func (u *UI) Success(format string, args ...any) {
	u.println("✓ ", termenv.ANSIGreen, format, args...)
}

// Error prints an error message in red.
func (u *UI) Error(format string, args ...any) {
	u.println("✗ ", termenv.ANSIRed, format, args...)
}

func (u *UI) println(prefix string, color termenv.ANSIColor, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String(prefix+msg).Foreground(color))
}
