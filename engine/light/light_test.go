package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewLightDefaults(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, NewLight().Position())
}

func TestLightPosition(t *testing.T) {
	l := NewLight(WithPosition(1, 2, 3))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())

	l.SetPosition(mgl32.Vec3{-4, 0, 4})
	assert.Equal(t, mgl32.Vec3{-4, 0, 4}, l.Position())
}
