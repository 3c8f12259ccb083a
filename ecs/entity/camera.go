package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
	"github.com/milk9111/customrp/prefabs"
)

// NewCamera builds a camera entity from a camera prefab.
func NewCamera(w *ecs.World, prefab string) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	return NewCameraFromSpec(w, prefabs.PrefabName(prefab), cameraSpec)
}

// NewCameraFromSpec builds a camera entity. The settings block of the spec,
// when present, is assigned to the holder directly. Otherwise the holder is
// left unset and builds defaults on first read.
func NewCameraFromSpec(w *ecs.World, prefab string, cameraSpec *prefabs.CameraSpec) (ecs.Entity, error) {
	if cameraSpec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}

	var settings *render.CameraSettings
	if cameraSpec.Settings != nil {
		var err error
		if settings, err = cameraSpec.Settings.ToSettings(); err != nil {
			return 0, fmt.Errorf("camera %s: %w", prefab, err)
		}
	}

	camera := ecs.CreateEntity(w)

	scaleX, scaleY := cameraSpec.Transform.ScaleX, cameraSpec.Transform.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		X:        cameraSpec.Transform.X,
		Y:        cameraSpec.Transform.Y,
		ScaleX:   scaleX,
		ScaleY:   scaleY,
		Rotation: cameraSpec.Transform.Rotation,
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	zoom := cameraSpec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: cameraSpec.Target,
		Zoom:       zoom,
		Smoothness: smooth,
		Depth:      cameraSpec.Depth,
		Viewport:   cameraSpec.Viewport.Viewport(),
		ClearColor: cameraSpec.ClearColor.Or(color.Black),
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	if err := ecs.Add(w, camera, component.RenderPipelineCameraComponent.Kind(), component.NewRenderPipelineCamera(settings)); err != nil {
		return 0, fmt.Errorf("camera: add render pipeline camera: %w", err)
	}

	if prefab != "" {
		if err := ecs.Add(w, camera, component.PrefabComponent.Kind(), &component.Prefab{Name: prefab}); err != nil {
			return 0, fmt.Errorf("camera: add prefab: %w", err)
		}
	}

	if cameraSpec.SettingsScript != "" {
		if err := ecs.Add(w, camera, component.SettingsScriptComponent.Kind(), &component.SettingsScript{Path: cameraSpec.SettingsScript}); err != nil {
			return 0, fmt.Errorf("camera: add settings script: %w", err)
		}
	}

	return camera, nil
}
