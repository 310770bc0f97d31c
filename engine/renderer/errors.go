package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-surface/common"
)

var (
	// ErrNoMesh is returned by DrawFrame before any model has been uploaded.
	ErrNoMesh = errors.New("no mesh uploaded")

	// ErrInvalidMSAA is returned for sample counts other than 1 and 4.
	ErrInvalidMSAA = common.ErrInvalidMSAA

	// ErrInvalidSurfaceSize is returned when the surface is resized to a zero or negative extent.
	ErrInvalidSurfaceSize = errors.New("invalid surface size")
)
