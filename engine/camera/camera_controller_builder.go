package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*orbitControllerImpl)

// WithRadius sets the horizontal orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.radius = radius
	}
}

// WithHeight sets the eye height above the target.
//
// Parameters:
//   - height: vertical offset from the target
//
// Returns:
//   - CameraControllerOption: functional option to set the height
func WithHeight(height float32) CameraControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.height = height
	}
}

// WithOrbitSpeed sets the orbit rate in radians per second.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithAzimuth sets the initial orbit angle in radians (0 = +Z axis).
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: world-space pivot of the orbit
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.target = target
	}
}

// WithRadiusLimits bounds the radius reachable through Zoom.
func WithRadiusLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}
