package system

import (
	"cmp"
	"image/color"
	"slices"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
)

// CameraPlan pairs a camera with its resolved frame plan.
type CameraPlan struct {
	Entity ecs.Entity
	Camera *component.Camera
	X, Y   float64
	Plan   render.FramePlan
}

// CameraRenderSystem draws every camera into its own offscreen target and
// composites the targets onto the screen in depth order.
type CameraRenderSystem struct {
	Pipeline render.PipelineSettings

	targets *render.TargetPool
	copies  *render.TargetPool
	live    map[ecs.Entity]bool
}

func NewCameraRenderSystem(pipeline render.PipelineSettings) *CameraRenderSystem {
	return &CameraRenderSystem{
		Pipeline: pipeline,
		targets:  render.NewTargetPool(),
		copies:   render.NewTargetPool(),
		live:     make(map[ecs.Entity]bool),
	}
}

// Plans resolves every camera against the pipeline, lowest depth first.
// Settings are read through each camera's RenderPipelineCamera, so cameras
// whose settings were never assigned get defaults here.
func (r *CameraRenderSystem) Plans(w *ecs.World, screenW, screenH int) []CameraPlan {
	var plans []CameraPlan
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform) {
		var settings *render.CameraSettings
		if holder, ok := ecs.Get(w, e, component.RenderPipelineCameraComponent.Kind()); ok {
			settings = holder.Settings()
		}
		plans = append(plans, CameraPlan{
			Entity: e,
			Camera: cam,
			X:      t.X,
			Y:      t.Y,
			Plan:   render.PlanCamera(r.Pipeline, settings, cam.Viewport, screenW, screenH),
		})
	})
	slices.SortStableFunc(plans, func(a, b CameraPlan) int {
		return cmp.Compare(a.Camera.Depth, b.Camera.Depth)
	})
	return plans
}

func (r *CameraRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	plans := r.Plans(w, b.Dx(), b.Dy())
	sprites := sortedSprites(w)

	seen := make(map[ecs.Entity]bool, len(plans))
	for _, cp := range plans {
		seen[cp.Entity] = true
		r.drawCamera(w, screen, cp, sprites)
	}

	for e := range r.live {
		if !seen[e] {
			r.targets.Release(targetKey(e))
			r.copies.Release(targetKey(e))
			delete(r.live, e)
		}
	}
	for e := range seen {
		r.live[e] = true
	}
}

// ColorCopy returns the last frame drawn by a camera whose settings ask for
// a color copy.
func (r *CameraRenderSystem) ColorCopy(e ecs.Entity) *ebiten.Image {
	if r == nil {
		return nil
	}
	return r.copies.Peek(targetKey(e))
}

func (r *CameraRenderSystem) drawCamera(w *ecs.World, screen *ebiten.Image, cp CameraPlan, sprites []ecs.Entity) {
	plan := cp.Plan
	key := targetKey(cp.Entity)
	target := r.targets.Acquire(key, plan.TargetWidth, plan.TargetHeight)
	if target == nil {
		return
	}
	target.Fill(clearColor(cp.Camera.ClearColor, plan.KeepAlpha))

	zoom := cp.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	for _, e := range sprites {
		layer, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())
		if !layer.Visible(plan.LayerMask) {
			continue
		}
		drawSprite(w, target, e, cp.X, cp.Y, zoom*plan.Scale)
	}

	if plan.CopyColor {
		dst := r.copies.Acquire(key, plan.TargetWidth, plan.TargetHeight)
		dst.DrawImage(target, nil)
	} else {
		r.copies.Release(key)
	}

	var geo ebiten.GeoM
	geo.Scale(float64(plan.Viewport.Dx())/float64(plan.TargetWidth), float64(plan.Viewport.Dy())/float64(plan.TargetHeight))
	geo.Translate(float64(plan.Viewport.Min.X), float64(plan.Viewport.Min.Y))

	if plan.PostFX != nil {
		op := &colorm.DrawImageOptions{GeoM: geo, Blend: plan.Blend, Filter: plan.Filter}
		colorm.DrawImage(screen, target, plan.PostFX.ColorM(), op)
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geo, Blend: plan.Blend, Filter: plan.Filter}
	screen.DrawImage(target, op)
}

func drawSprite(w *ecs.World, dst *ebiten.Image, e ecs.Entity, camX, camY, scale float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || s.Image == nil {
		return
	}

	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}

	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.X-camX, t.Y-camY)
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(img, op)
}

// sortedSprites orders drawable entities by layer index, then entity id.
func sortedSprites(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	slices.SortStableFunc(entities, func(a, b ecs.Entity) int {
		return cmp.Compare(layerIndex(w, a), layerIndex(w, b))
	})
	return entities
}

func layerIndex(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func clearColor(c color.Color, keepAlpha bool) color.Color {
	if c == nil {
		c = color.Transparent
	}
	if keepAlpha {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}

func targetKey(e ecs.Entity) string {
	return "camera:" + strconv.FormatUint(uint64(e), 10)
}
