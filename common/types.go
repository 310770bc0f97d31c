// Package common contains small helpers and plain types shared by every engine package:
// the shared logger, GPU byte conversion, projection math, key codes and render settings.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPresentMode is returned when a present mode name is not recognised.
	ErrInvalidPresentMode = errors.New("invalid present mode")

	// ErrInvalidMSAA is returned for sample counts other than 1 and 4.
	ErrInvalidMSAA = errors.New("invalid MSAA sample count")
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4, so only those two are offered.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA converts a sample count into an MSAASampleCount.
//
// Parameters:
//   - count: 1 or 4
//
// Returns:
//   - MSAASampleCount: the sample count
//   - error: error wrapping ErrInvalidMSAA for any other value
func ParseMSAA(count int) (MSAASampleCount, error) {
	switch MSAASampleCount(count) {
	case MSAAOff, MSAA4x:
		return MSAASampleCount(count), nil
	default:
		return MSAAOff, fmt.Errorf("%w: %d", ErrInvalidMSAA, count)
	}
}

// PresentMode selects how rendered frames are handed to the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank (FIFO). Supported everywhere.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately, possibly tearing.
	PresentModeUncapped
)

func (p PresentMode) String() string {
	switch p {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(p))
	}
}

// Toggle returns the other present mode.
func (p PresentMode) Toggle() PresentMode {
	if p == PresentModeVSync {
		return PresentModeUncapped
	}
	return PresentModeVSync
}

// MarshalText implements encoding.TextMarshaler.
func (p PresentMode) MarshalText() ([]byte, error) {
	switch p {
	case PresentModeVSync, PresentModeUncapped:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPresentMode, int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PresentMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "vsync", "fifo":
		*p = PresentModeVSync
	case "uncapped", "immediate":
		*p = PresentModeUncapped
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPresentMode, text)
	}
	return nil
}
