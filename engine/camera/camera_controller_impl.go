package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitControllerImpl circles the target on a horizontal ring.
type orbitControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	radius     float32
	height     float32
	azimuth    float32
	orbitSpeed float32
	paused     bool

	minRadius float32
	maxRadius float32
}

var _ CameraController = &orbitControllerImpl{}

// NewOrbitController creates an auto-orbit controller circling the origin at radius 5 and
// height 2, advancing 0.5 radians per second.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	cc := &orbitControllerImpl{
		mu:         &sync.Mutex{},
		radius:     5.0,
		height:     2.0,
		orbitSpeed: 0.5,
		minRadius:  1.5,
		maxRadius:  50.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the eye from target, radius, height and azimuth.
// Caller must hold the mutex.
func (cc *orbitControllerImpl) updatePosition() {
	cc.position = mgl32.Vec3{
		cc.target[0] + math32.Sin(cc.azimuth)*cc.radius,
		cc.target[1] + cc.height,
		cc.target[2] + math32.Cos(cc.azimuth)*cc.radius,
	}
}

func (cc *orbitControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *orbitControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitControllerImpl) Advance(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.paused || dt <= 0 {
		return
	}
	// keep the angle small so float32 precision does not degrade over long sessions
	cc.azimuth = math32.Mod(cc.azimuth+dt*cc.orbitSpeed, 2*math32.Pi)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *orbitControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = mgl32.Clamp(cc.radius-delta, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) SetPaused(paused bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.paused = paused
}

func (cc *orbitControllerImpl) Paused() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.paused
}
