package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the viewer camera.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Position returns the world-space eye position of the attached controller.
	// Returns the origin if no controller is attached.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current WebGPU perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major projection matrix
	ProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Should be called once per frame after the controller has been advanced.
	// If no controller is attached, this method does nothing.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored, which keeps a minimised window from producing NaNs.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a 45 degree field of view and a 0.1..100 depth range.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:               &sync.Mutex{},
		up:               mgl32.Vec3{0, 1, 0},
		fov:              mgl32.DegToRad(45),
		aspect:           1.0,
		near:             0.1,
		far:              100.0,
		viewMatrix:       mgl32.Ident4(),
		projectionMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return mgl32.Vec3{}
	}
	return c.controller.Position()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the projection and, when a controller is attached, the view matrix.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	if c.controller == nil {
		return
	}
	c.viewMatrix = mgl32.LookAtV(c.controller.Position(), c.controller.Target(), c.up)
}
