package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the camera's positional state. The Camera reads position and
// target from it and computes the view matrix.
//
// The viewer uses an auto-orbit controller: the eye circles the target at a fixed
// radius and height, advancing its azimuth by OrbitSpeed radians per second.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// Advance moves the orbit forward by dt seconds at the controller's orbit speed.
	// Negative dt is ignored.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Advance(dt float32)

	// Azimuth returns the current orbit angle in radians, measured from +Z toward +X.
	Azimuth() float32

	// Radius returns the horizontal distance from the target.
	Radius() float32

	// Zoom changes the orbit radius by -delta, clamped to the controller's radius limits.
	// Positive delta moves the eye closer.
	//
	// Parameters:
	//   - delta: zoom amount in world units
	Zoom(delta float32)

	// SetPaused stops or resumes Advance.
	SetPaused(paused bool)

	// Paused reports whether Advance is currently ignored.
	Paused() bool
}
