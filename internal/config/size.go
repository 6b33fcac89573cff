package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	minAutoWidth  = 40
	minAutoHeight = 15

	MaxWidth  = 1000
	MaxHeight = 1000
)

var (
	// ErrInvalidSize indicates a --size value that is neither WIDTHxHEIGHT nor auto.
	ErrInvalidSize = errors.New("config: size must be WIDTHxHEIGHT or 'auto'")

	// ErrTerminalSize indicates auto detection failed and no fallback was configured.
	ErrTerminalSize = errors.New("config: cannot determine terminal size")
)

type Size struct {
	Width  int
	Height int
	Auto   bool
}

func (s Size) String() string {
	if s.Auto {
		return "auto"
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Valid reports whether both dimensions are usable grid sizes.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Width <= MaxWidth && s.Height <= MaxHeight
}

func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "auto" {
		return Size{Auto: true}, nil
	}
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return Size{Width: w, Height: h}, nil
}

// Detector queries the current terminal dimensions.
type Detector func() (width, height int, err error)

// ResolveSize turns a --size value into concrete grid dimensions. Auto sizes
// leave a one-cell border plus reserved rows so the frame never scrolls.
// Explicit sizes outside 1..MaxWidth x 1..MaxHeight fall back like a failed
// detection.
func ResolveSize(value, fallback string, reserved int, detect Detector) (Size, error) {
	size, err := ParseSize(value)
	if err != nil {
		return Size{}, err
	}

	var fb Size
	if fallback != "" {
		if fb, err = ParseSize(fallback); err != nil {
			return Size{}, fmt.Errorf("fallback size: %w", err)
		}
	}

	if !size.Auto {
		if size.Valid() {
			return size, nil
		}
		if !fb.Valid() {
			return Size{}, fmt.Errorf("%w: %s is out of range", ErrTerminalSize, size)
		}
		return fb, nil
	}

	w, h := 0, 0
	if detect != nil {
		w, h, err = detect()
	}
	if detect == nil || err != nil || w <= 0 || h <= 0 {
		if !fb.Valid() {
			if err != nil {
				return Size{}, fmt.Errorf("%w: %v", ErrTerminalSize, err)
			}
			return Size{}, ErrTerminalSize
		}
		w, h = fb.Width, fb.Height
	}

	return Size{
		Width:  min(max(minAutoWidth, w-1), MaxWidth),
		Height: min(max(minAutoHeight, h-1-reserved), MaxHeight),
	}, nil
}
