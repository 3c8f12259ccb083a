package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	MinRenderScale = 0.1
	MaxRenderScale = 2.0
)

// AllRenderingLayers selects every rendering layer.
const AllRenderingLayers = ^uint32(0)

type RenderScaleMode int

const (
	RenderScaleInherit RenderScaleMode = iota
	RenderScaleMultiply
	RenderScaleOverride
)

func (m RenderScaleMode) String() string {
	switch m {
	case RenderScaleInherit:
		return "inherit"
	case RenderScaleMultiply:
		return "multiply"
	case RenderScaleOverride:
		return "override"
	default:
		return fmt.Sprintf("RenderScaleMode(%d)", int(m))
	}
}

func ParseRenderScaleMode(s string) (RenderScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inherit":
		return RenderScaleInherit, nil
	case "multiply":
		return RenderScaleMultiply, nil
	case "override":
		return RenderScaleOverride, nil
	default:
		return 0, fmt.Errorf("render: unknown render scale mode %q", s)
	}
}

// CameraSettings is the per-camera configuration read by the render pipeline.
type CameraSettings struct {
	CopyColor          bool
	RenderingLayerMask uint32
	RenderScaleMode    RenderScaleMode
	RenderScale        float64
	OverridePostFX     bool
	PostFX             *PostFXSettings
	AllowFXAA          bool
	KeepAlpha          bool
	FinalBlendMode     FinalBlendMode
}

// NewCameraSettings returns the settings a camera uses when none were assigned.
func NewCameraSettings() *CameraSettings {
	return &CameraSettings{
		CopyColor:          true,
		RenderingLayerMask: AllRenderingLayers,
		RenderScaleMode:    RenderScaleInherit,
		RenderScale:        1,
		FinalBlendMode:     FinalBlendMode{Source: BlendOne, Destination: BlendZero},
	}
}

// ResolveRenderScale combines the pipeline scale with this camera's mode.
// The result is not clamped.
func (s *CameraSettings) ResolveRenderScale(pipelineScale float64) float64 {
	if s == nil {
		return pipelineScale
	}
	switch s.RenderScaleMode {
	case RenderScaleOverride:
		return s.RenderScale
	case RenderScaleMultiply:
		return pipelineScale * s.RenderScale
	default:
		return pipelineScale
	}
}

// Clone returns a deep copy.
func (s *CameraSettings) Clone() *CameraSettings {
	if s == nil {
		return nil
	}
	out := *s
	if s.PostFX != nil {
		fx := *s.PostFX
		out.PostFX = &fx
	}
	return &out
}

func ClampRenderScale(scale float64) float64 {
	if scale < MinRenderScale {
		return MinRenderScale
	}
	if scale > MaxRenderScale {
		return MaxRenderScale
	}
	return scale
}

// LayerMask converts an integer mask from a scene file or script. Negative
// values are read as signed 32-bit masks, so -1 selects every layer.
func LayerMask(v int64) (uint32, error) {
	switch {
	case v < math.MinInt32 || v > math.MaxUint32:
		return 0, fmt.Errorf("render: rendering layer mask %d out of range", v)
	case v < 0:
		return uint32(int32(v)), nil
	default:
		return uint32(v), nil
	}
}
