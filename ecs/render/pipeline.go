package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PipelineSettings are the defaults every camera inherits.
type PipelineSettings struct {
	RenderScale float64
	PostFX      *PostFXSettings
	AllowFXAA   bool
}

func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{RenderScale: 1}
}

// Viewport is a normalized screen rectangle. The zero value covers the
// whole screen.
type Viewport struct {
	X, Y, W, H float64
}

func (v Viewport) IsZero() bool {
	return v == Viewport{}
}

// Rect converts the viewport to screen pixels. The result is at least one
// pixel on each side and lies inside the screen.
func (v Viewport) Rect(screenW, screenH int) image.Rectangle {
	if v.IsZero() {
		v = Viewport{W: 1, H: 1}
	}
	screen := image.Rect(0, 0, screenW, screenH)
	x0 := int(math.Round(v.X * float64(screenW)))
	y0 := int(math.Round(v.Y * float64(screenH)))
	x1 := int(math.Round((v.X + v.W) * float64(screenW)))
	y1 := int(math.Round((v.Y + v.H) * float64(screenH)))
	r := image.Rect(x0, y0, x1, y1).Intersect(screen)
	if r.Empty() {
		x := min(max(x0, 0), max(screenW-1, 0))
		y := min(max(y0, 0), max(screenH-1, 0))
		r = image.Rect(x, y, x+1, y+1)
	}
	return r
}

// FramePlan is everything the render system needs to draw one camera.
type FramePlan struct {
	Viewport     image.Rectangle
	TargetWidth  int
	TargetHeight int
	Scale        float64
	Scaled       bool
	PostFX       *PostFXSettings
	Filter       ebiten.Filter
	Blend        ebiten.Blend
	KeepAlpha    bool
	CopyColor    bool
	LayerMask    uint32
}

// PlanCamera resolves a camera's settings against the pipeline defaults.
// A nil settings value plans with NewCameraSettings.
func PlanCamera(pipeline PipelineSettings, settings *CameraSettings, vp Viewport, screenW, screenH int) FramePlan {
	if settings == nil {
		settings = NewCameraSettings()
	}
	pipelineScale := pipeline.RenderScale
	if pipelineScale == 0 {
		pipelineScale = 1
	}

	scale := ClampRenderScale(settings.ResolveRenderScale(pipelineScale))
	rect := vp.Rect(screenW, screenH)

	plan := FramePlan{
		Viewport:     rect,
		TargetWidth:  max(1, int(math.Round(float64(rect.Dx())*scale))),
		TargetHeight: max(1, int(math.Round(float64(rect.Dy())*scale))),
		Scale:        scale,
		Scaled:       math.Abs(scale-1) > 0.01,
		Filter:       ebiten.FilterNearest,
		Blend:        settings.FinalBlendMode.Blend(),
		KeepAlpha:    settings.KeepAlpha,
		CopyColor:    settings.CopyColor,
		LayerMask:    settings.RenderingLayerMask,
	}

	if plan.Scaled && pipeline.AllowFXAA && settings.AllowFXAA {
		plan.Filter = ebiten.FilterLinear
	}

	fx := pipeline.PostFX
	if settings.OverridePostFX {
		fx = settings.PostFX
	}
	if !fx.IsIdentity() {
		plan.PostFX = fx
	}

	return plan
}
