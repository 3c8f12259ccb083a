package entity

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
	"github.com/milk9111/customrp/prefabs"
)

type Scene struct {
	Name     string
	Pipeline render.PipelineSettings
	Cameras  []ecs.Entity
	Sprites  []ecs.Entity
}

// LoadScene builds every camera and sprite of a scene prefab into w.
func LoadScene(w *ecs.World, name string) (*Scene, error) {
	sceneSpec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load spec: %w", err)
	}

	scene := &Scene{Name: sceneSpec.Name, Pipeline: render.DefaultPipelineSettings()}
	if sceneSpec.Pipeline != "" {
		pipelineSpec, err := prefabs.LoadPipelineSpec(sceneSpec.Pipeline)
		if err != nil {
			return nil, fmt.Errorf("scene %s: pipeline: %w", sceneSpec.Name, err)
		}
		scene.Pipeline = pipelineSpec.ToSettings()
	}

	for i, camSpec := range sceneSpec.Cameras {
		cam, err := AddSceneCamera(w, camSpec)
		if err != nil {
			return nil, fmt.Errorf("scene %s: camera %d: %w", sceneSpec.Name, i, err)
		}
		scene.Cameras = append(scene.Cameras, cam)
	}

	for _, spriteSpec := range sceneSpec.Sprites {
		e, err := NewSprite(w, spriteSpec)
		if err != nil {
			return nil, fmt.Errorf("scene %s: sprite %s: %w", sceneSpec.Name, spriteSpec.Name, err)
		}
		scene.Sprites = append(scene.Sprites, e)
	}

	return scene, nil
}

// AddSceneCamera builds a camera prefab and applies the scene's per-instance
// overrides.
func AddSceneCamera(w *ecs.World, camSpec prefabs.SceneCameraSpec) (ecs.Entity, error) {
	cam, err := NewCamera(w, camSpec.Prefab)
	if err != nil {
		return 0, err
	}

	camComp, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("camera %s: missing camera component", camSpec.Prefab)
	}
	if camSpec.Depth != nil {
		camComp.Depth = *camSpec.Depth
	}
	if camSpec.Viewport != nil {
		camComp.Viewport = camSpec.Viewport.Viewport()
	}

	if camSpec.Settings != nil {
		settings, err := camSpec.Settings.ToSettings()
		if err != nil {
			return 0, fmt.Errorf("camera %s: %w", camSpec.Prefab, err)
		}
		holder, ok := ecs.Get(w, cam, component.RenderPipelineCameraComponent.Kind())
		if !ok {
			return 0, fmt.Errorf("camera %s: missing render pipeline camera", camSpec.Prefab)
		}
		holder.SetSettings(settings)
	}

	return cam, nil
}

func NewSprite(w *ecs.World, spriteSpec prefabs.SpriteSpec) (ecs.Entity, error) {
	var img *ebiten.Image
	if spriteSpec.Image != "" {
		loaded, err := render.LoadImage(spriteSpec.Image)
		if err != nil {
			return 0, fmt.Errorf("sprite: %w", err)
		}
		img = loaded
	} else {
		if spriteSpec.Width <= 0 || spriteSpec.Height <= 0 {
			return 0, fmt.Errorf("sprite: needs an image or a positive size")
		}
		img = render.SolidImage(spriteSpec.Width, spriteSpec.Height, spriteSpec.Color.Or(color.White))
	}

	e := ecs.CreateEntity(w)

	scaleX, scaleY := spriteSpec.Transform.ScaleX, spriteSpec.Transform.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spriteSpec.Transform.X,
		Y:        spriteSpec.Transform.Y,
		ScaleX:   scaleX,
		ScaleY:   scaleY,
		Rotation: spriteSpec.Transform.Rotation,
	}); err != nil {
		return 0, fmt.Errorf("sprite: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: spriteSpec.OriginX,
		OriginY: spriteSpec.OriginY,
	}); err != nil {
		return 0, fmt.Errorf("sprite: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{
		Index: spriteSpec.Layer,
		Mask:  spriteSpec.LayerMask,
	}); err != nil {
		return 0, fmt.Errorf("sprite: add render layer: %w", err)
	}
	if spriteSpec.Name != "" {
		if err := ecs.Add(w, e, component.NameTagComponent.Kind(), &component.NameTag{Name: spriteSpec.Name}); err != nil {
			return 0, fmt.Errorf("sprite: add name: %w", err)
		}
	}
	return e, nil
}
