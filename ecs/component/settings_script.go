package component

// SettingsScript names a tengo script that adjusts a camera's render
// pipeline settings every frame.
type SettingsScript struct {
	Path string
}

var SettingsScriptComponent = NewComponent[SettingsScript](
	Requires(RenderPipelineCameraComponent.Kind(), func() *RenderPipelineCamera { return NewRenderPipelineCamera(nil) }),
)
