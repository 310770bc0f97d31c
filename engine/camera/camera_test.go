package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbitControllerDefaults(t *testing.T) {
	cc := NewOrbitController()

	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{0, 2, 5}, 1e-6))
	assert.Equal(t, mgl32.Vec3{}, cc.Target())
	assert.Equal(t, float32(5), cc.Radius())
}

func TestOrbitControllerAdvance(t *testing.T) {
	cc := NewOrbitController()

	// one second at 0.5 rad/s
	cc.Advance(1)
	assert.InDelta(t, 0.5, cc.Azimuth(), 1e-6)
	want := mgl32.Vec3{math32.Sin(0.5) * 5, 2, math32.Cos(0.5) * 5}
	assert.True(t, cc.Position().ApproxEqualThreshold(want, 1e-5))

	cc.Advance(-3)
	assert.InDelta(t, 0.5, cc.Azimuth(), 1e-6)

	cc.SetPaused(true)
	cc.Advance(10)
	assert.True(t, cc.Paused())
	assert.InDelta(t, 0.5, cc.Azimuth(), 1e-6)
}

func TestOrbitControllerWrapsAzimuth(t *testing.T) {
	cc := NewOrbitController(WithOrbitSpeed(1))
	for range 100 {
		cc.Advance(1)
	}
	assert.GreaterOrEqual(t, cc.Azimuth(), float32(0))
	assert.Less(t, cc.Azimuth(), 2*math32.Pi)
}

func TestOrbitControllerZoom(t *testing.T) {
	cc := NewOrbitController(WithRadius(4), WithRadiusLimits(2, 6))

	cc.Zoom(1)
	assert.Equal(t, float32(3), cc.Radius())
	cc.Zoom(10)
	assert.Equal(t, float32(2), cc.Radius())
	cc.Zoom(-10)
	assert.Equal(t, float32(6), cc.Radius())
}

func TestCameraViewLooksAtTarget(t *testing.T) {
	cam := NewCamera(WithController(NewOrbitController(WithHeight(0))))

	// the target lands on the view axis, radius units in front of the eye
	p := cam.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, -5, p.Z(), 1e-5)
}

func TestCameraUpdateFollowsController(t *testing.T) {
	cc := NewOrbitController()
	cam := NewCamera(WithController(cc))
	before := cam.ViewMatrix()

	cc.Advance(1)
	assert.Equal(t, before, cam.ViewMatrix(), "view is only recomputed on Update")
	cam.Update()
	assert.NotEqual(t, before, cam.ViewMatrix())
	assert.Equal(t, cc.Position(), cam.Position())
}

func TestCameraSetAspect(t *testing.T) {
	cam := NewCamera()
	cam.SetAspect(2)
	assert.Equal(t, float32(2), cam.Aspect())

	proj := cam.ProjectionMatrix()
	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect())
	assert.Equal(t, proj, cam.ProjectionMatrix())
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera(WithFov(mgl32.DegToRad(60)), WithNear(1), WithFar(10))

	assert.Equal(t, mgl32.Ident4(), cam.ViewMatrix())
	assert.Equal(t, mgl32.Vec3{}, cam.Position())
	assert.Equal(t, float32(1), cam.Near())
	assert.Equal(t, float32(10), cam.Far())
	assert.Nil(t, cam.Controller())
	cam.Update()
}

func TestSceneUniformLayout(t *testing.T) {
	cam := NewCamera(WithController(NewOrbitController()))
	u := NewSceneUniform(cam, mgl32.Ident4(), mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0.7, 0.7, 0.9})

	require.Equal(t, 304, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 304)

	f := func(offset int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])) }
	assert.Equal(t, float32(1), f(0))
	assert.Equal(t, float32(5), f(256))
	assert.Equal(t, float32(2), f(276), "eye height")
	assert.Equal(t, float32(0.9), f(296))
	assert.Equal(t, float32(0), f(300))
	assert.Equal(t, float32(1), f(192+60), "normal matrix of identity is identity")
}
