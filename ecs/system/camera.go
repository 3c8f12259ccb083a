package system

import (
	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
)

// CameraSystem moves cameras that follow a named target so the target sits
// in the middle of the camera's viewport.
type CameraSystem struct {
	screenW int
	screenH int
}

func NewCameraSystem(screenW, screenH int) *CameraSystem {
	return &CameraSystem{screenW: screenW, screenH: screenH}
}

// SetScreenSize updates the logical screen size used to size viewports.
func (cs *CameraSystem) SetScreenSize(w, h int) {
	cs.screenW, cs.screenH = w, h
}

func (cs *CameraSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(camEntity ecs.Entity, cam *component.Camera, camTransform *component.Transform) {
		if cam.TargetName == "" {
			return
		}
		target, ok := findEntityByName(w, cam.TargetName)
		if !ok {
			return
		}
		cx, cy, ok := visualCenter(w, target)
		if !ok {
			return
		}

		zoom := cam.Zoom
		if zoom <= 0 {
			zoom = 1
		}
		vp := cam.Viewport.Rect(cs.screenW, cs.screenH)
		desiredX := cx - float64(vp.Dx())/zoom/2
		desiredY := cy - float64(vp.Dy())/zoom/2

		// Smoothness 0 snaps, values toward 1 lag further behind.
		follow := 1 - clamp01(cam.Smoothness)
		if follow == 0 {
			return
		}
		camTransform.X += (desiredX - camTransform.X) * follow
		camTransform.Y += (desiredY - camTransform.Y) * follow
	})
}

func visualCenter(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	scaleX, scaleY := t.ScaleX, t.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}

	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || sprite.Image == nil {
		return t.X, t.Y, true
	}
	b := sprite.Image.Bounds()
	if sprite.UseSource {
		b = sprite.Source
	}
	imgW, imgH := float64(b.Dx()), float64(b.Dy())
	return t.X - sprite.OriginX*scaleX + imgW*scaleX/2, t.Y - sprite.OriginY*scaleY + imgH*scaleY/2, true
}

func findEntityByName(w *ecs.World, name string) (ecs.Entity, bool) {
	for _, e := range w.Query(component.NameTagComponent.Kind()) {
		if tag, ok := ecs.Get(w, e, component.NameTagComponent.Kind()); ok && tag.Name == name {
			return e, true
		}
	}
	return 0, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
