package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestResolveRenderScale(t *testing.T) {
	tests := []struct {
		name     string
		mode     RenderScaleMode
		camera   float64
		pipeline float64
		want     float64
	}{
		{"inherit", RenderScaleInherit, 0.5, 0.8, 0.8},
		{"override", RenderScaleOverride, 0.5, 0.8, 0.5},
		{"multiply", RenderScaleMultiply, 0.5, 0.8, 0.4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCameraSettings()
			s.RenderScaleMode = tc.mode
			s.RenderScale = tc.camera
			if got := s.ResolveRenderScale(tc.pipeline); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestClampRenderScale(t *testing.T) {
	for in, want := range map[float64]float64{0: MinRenderScale, 0.05: MinRenderScale, 1: 1, 1.5: 1.5, 3: MaxRenderScale} {
		if got := ClampRenderScale(in); got != want {
			t.Fatalf("ClampRenderScale(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestViewportRect(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want image.Rectangle
	}{
		{"zero_is_full_screen", Viewport{}, image.Rect(0, 0, 640, 360)},
		{"right_half", Viewport{X: 0.5, W: 0.5, H: 1}, image.Rect(320, 0, 640, 360)},
		{"clipped", Viewport{X: 0.75, Y: 0.5, W: 0.5, H: 1}, image.Rect(480, 180, 640, 360)},
		{"off_screen_keeps_one_pixel", Viewport{X: 2, Y: 2, W: 1, H: 1}, image.Rect(639, 359, 640, 360)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.vp.Rect(640, 360); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPlanCameraDefaults(t *testing.T) {
	plan := PlanCamera(DefaultPipelineSettings(), nil, Viewport{}, 640, 360)

	if plan.TargetWidth != 640 || plan.TargetHeight != 360 {
		t.Fatalf("unexpected target %dx%d", plan.TargetWidth, plan.TargetHeight)
	}
	if plan.Scaled {
		t.Fatalf("default plan must not be scaled")
	}
	if plan.PostFX != nil {
		t.Fatalf("default plan must not have post fx")
	}
	if plan.LayerMask != AllRenderingLayers {
		t.Fatalf("expected all layers, got %x", plan.LayerMask)
	}
	if !plan.CopyColor || plan.KeepAlpha {
		t.Fatalf("unexpected copy/alpha flags %+v", plan)
	}
	if plan.Blend != (FinalBlendMode{Source: BlendOne, Destination: BlendZero}).Blend() {
		t.Fatalf("expected overwrite blend")
	}
}

func TestPlanCameraScaling(t *testing.T) {
	pipeline := PipelineSettings{RenderScale: 0.5, AllowFXAA: true}

	tests := []struct {
		name       string
		mutate     func(s *CameraSettings)
		wantScale  float64
		wantWidth  int
		wantFilter ebiten.Filter
	}{
		{"inherit_half", func(s *CameraSettings) {}, 0.5, 320, ebiten.FilterNearest},
		{"inherit_half_fxaa", func(s *CameraSettings) { s.AllowFXAA = true }, 0.5, 320, ebiten.FilterLinear},
		{"override_full", func(s *CameraSettings) {
			s.RenderScaleMode = RenderScaleOverride
			s.RenderScale = 1
			s.AllowFXAA = true
		}, 1, 640, ebiten.FilterNearest},
		{"multiply_clamped", func(s *CameraSettings) {
			s.RenderScaleMode = RenderScaleMultiply
			s.RenderScale = 0.1
		}, MinRenderScale, 64, ebiten.FilterNearest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCameraSettings()
			tc.mutate(s)
			plan := PlanCamera(pipeline, s, Viewport{}, 640, 360)
			if plan.Scale != tc.wantScale {
				t.Fatalf("expected scale %v, got %v", tc.wantScale, plan.Scale)
			}
			if plan.TargetWidth != tc.wantWidth {
				t.Fatalf("expected width %d, got %d", tc.wantWidth, plan.TargetWidth)
			}
			if plan.Filter != tc.wantFilter {
				t.Fatalf("expected filter %v, got %v", tc.wantFilter, plan.Filter)
			}
		})
	}
}

func TestPlanCameraPostFXOverride(t *testing.T) {
	pipelineFX := &PostFXSettings{Exposure: 1}
	cameraFX := &PostFXSettings{Saturation: -100}
	pipeline := PipelineSettings{RenderScale: 1, PostFX: pipelineFX}

	s := NewCameraSettings()
	if got := PlanCamera(pipeline, s, Viewport{}, 10, 10).PostFX; got != pipelineFX {
		t.Fatalf("camera without override must use pipeline fx")
	}

	s.OverridePostFX = true
	s.PostFX = cameraFX
	if got := PlanCamera(pipeline, s, Viewport{}, 10, 10).PostFX; got != cameraFX {
		t.Fatalf("override must use camera fx")
	}

	s.PostFX = nil
	if got := PlanCamera(pipeline, s, Viewport{}, 10, 10).PostFX; got != nil {
		t.Fatalf("override with nil fx disables post fx")
	}

	s.PostFX = &PostFXSettings{ColorFilter: color.White}
	if got := PlanCamera(pipeline, s, Viewport{}, 10, 10).PostFX; got != nil {
		t.Fatalf("identity fx must be skipped")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewCameraSettings()
	s.PostFX = &PostFXSettings{Exposure: 1}
	c := s.Clone()
	c.PostFX.Exposure = 2
	c.KeepAlpha = true
	if s.PostFX.Exposure != 1 || s.KeepAlpha {
		t.Fatalf("clone must not alias the original")
	}
}

func TestLayerMask(t *testing.T) {
	tests := []struct {
		in      int64
		want    uint32
		wantErr bool
	}{
		{in: 0, want: 0},
		{in: 5, want: 5},
		{in: -1, want: AllRenderingLayers},
		{in: math.MaxUint32, want: AllRenderingLayers},
		{in: 1 << 32, wantErr: true},
		{in: math.MinInt32 - 1, wantErr: true},
	}
	for _, tc := range tests {
		got, err := LayerMask(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("LayerMask(%d): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("LayerMask(%d) = %#x, %v; want %#x", tc.in, got, err, tc.want)
		}
	}
}
