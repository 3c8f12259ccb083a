package component

import "github.com/milk9111/customrp/ecs/render"

// RenderPipelineCamera carries the render pipeline settings of one camera.
// An entity holds at most one, and only next to a Camera.
type RenderPipelineCamera struct {
	settings *render.CameraSettings
}

// NewRenderPipelineCamera returns a holder with settings pre-assigned, as a
// scene loader does. A nil settings leaves it unset.
func NewRenderPipelineCamera(settings *render.CameraSettings) *RenderPipelineCamera {
	return &RenderPipelineCamera{settings: settings}
}

// Settings returns the assigned settings, building and keeping the defaults
// on first use if none were assigned.
func (c *RenderPipelineCamera) Settings() *render.CameraSettings {
	if c.settings == nil {
		c.settings = render.NewCameraSettings()
	}
	return c.settings
}

// SetSettings replaces the stored settings without going through Settings.
// Assigning nil makes the next Settings call build fresh defaults.
func (c *RenderPipelineCamera) SetSettings(settings *render.CameraSettings) {
	c.settings = settings
}

// Assigned reports whether settings are currently stored.
func (c *RenderPipelineCamera) Assigned() bool {
	return c.settings != nil
}

var RenderPipelineCameraComponent = NewComponent[RenderPipelineCamera](
	DisallowMultiple(),
	Requires(CameraComponent.Kind(), NewDefaultCamera),
)
