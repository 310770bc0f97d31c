// Package light holds the point light that illuminates the surface.
package light

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPosition is where a light sits when no position is given.
var DefaultPosition = mgl32.Vec3{5, 5, 5}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu       sync.RWMutex
	position mgl32.Vec3
}

// Light is a world-space point light. The surface shader evaluates a single light
// with fixed ambient, diffuse and specular terms, so position is its only property.
// Safe for concurrent use by the tick and render goroutines.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// SetPosition moves the light.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)
}

var _ Light = &lightImpl{}

// NewLight creates a point light at DefaultPosition unless configured otherwise.
//
// Parameters:
//   - options: variadic LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		position: DefaultPosition,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = position
}
