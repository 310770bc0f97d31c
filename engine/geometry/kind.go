package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a surface kind name is not recognised.
var ErrUnknownKind = errors.New("unknown surface kind")

// Kind selects which parametric surface a generation request produces.
// The zero value is KindSphere.
type Kind int

const (
	// KindSphere is a unit sphere sampled by latitude rings and longitude slices.
	KindSphere Kind = iota
	// KindTorus is a ring torus with major radius TorusMajorRadius and tube radius TorusMinorRadius.
	KindTorus
)

// Kinds lists every supported surface kind.
var Kinds = []Kind{KindSphere, KindTorus}

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTorus:
		return "torus"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a surface kind name ("sphere" or "torus", case-insensitive).
//
// Parameters:
//   - s: the kind name
//
// Returns:
//   - Kind: the parsed kind
//   - error: an error wrapping ErrUnknownKind if s names no supported surface
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sphere":
		return KindSphere, nil
	case "torus":
		return KindTorus, nil
	default:
		return KindSphere, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindSphere, KindTorus:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Set parses s into k so a Kind can be used directly as a command-line flag value.
func (k *Kind) Set(s string) error {
	return k.UnmarshalText([]byte(s))
}

// Type returns the flag type name shown in command-line help.
func (k *Kind) Type() string {
	return "kind"
}
