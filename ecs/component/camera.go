package component

import (
	"image/color"

	"github.com/milk9111/customrp/ecs/render"
)

// Camera is the camera capability of an entity. The camera entity's
// transform is the world position drawn at the top-left of its viewport.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	// Depth orders cameras; lower depths draw first.
	Depth      int
	Viewport   render.Viewport
	ClearColor color.Color
}

// NewDefaultCamera is attached when a component requiring a camera is added
// to an entity that has none.
func NewDefaultCamera() *Camera {
	return &Camera{Zoom: 1, ClearColor: color.Black}
}

var CameraComponent = NewComponent[Camera](
	DisallowMultiple(),
	Requires(TransformComponent.Kind(), func() *Transform { return &Transform{ScaleX: 1, ScaleY: 1} }),
)
