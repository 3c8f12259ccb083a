package prefabs

import (
	"fmt"

	"github.com/milk9111/customrp/ecs/render"
)

// CameraSettingsSpec is the YAML form of render.CameraSettings. Omitted keys
// keep their default values.
type CameraSettingsSpec struct {
	CopyColor          *bool           `yaml:"copy_color,omitempty"`
	RenderingLayerMask *int64          `yaml:"rendering_layer_mask,omitempty"`
	RenderScaleMode    string          `yaml:"render_scale_mode,omitempty"`
	RenderScale        *float64        `yaml:"render_scale,omitempty"`
	OverridePostFX     bool            `yaml:"override_post_fx,omitempty"`
	PostFX             *PostFXSpec     `yaml:"post_fx,omitempty"`
	AllowFXAA          bool            `yaml:"allow_fxaa,omitempty"`
	KeepAlpha          bool            `yaml:"keep_alpha,omitempty"`
	FinalBlend         *FinalBlendSpec `yaml:"final_blend,omitempty"`
}

type PostFXSpec struct {
	Exposure    float64    `yaml:"exposure,omitempty"`
	Contrast    float64    `yaml:"contrast,omitempty"`
	Saturation  float64    `yaml:"saturation,omitempty"`
	ColorFilter *YAMLColor `yaml:"color_filter,omitempty"`
}

type FinalBlendSpec struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// ToSettings builds a settings record from the spec.
func (s *CameraSettingsSpec) ToSettings() (*render.CameraSettings, error) {
	out := render.NewCameraSettings()
	if s == nil {
		return out, nil
	}

	if s.CopyColor != nil {
		out.CopyColor = *s.CopyColor
	}
	if s.RenderingLayerMask != nil {
		mask, err := render.LayerMask(*s.RenderingLayerMask)
		if err != nil {
			return nil, fmt.Errorf("prefabs: camera settings: %w", err)
		}
		out.RenderingLayerMask = mask
	}

	mode, err := render.ParseRenderScaleMode(s.RenderScaleMode)
	if err != nil {
		return nil, fmt.Errorf("prefabs: camera settings: %w", err)
	}
	out.RenderScaleMode = mode
	if s.RenderScale != nil {
		if *s.RenderScale <= 0 {
			return nil, fmt.Errorf("prefabs: camera settings: render_scale must be positive, got %v", *s.RenderScale)
		}
		out.RenderScale = *s.RenderScale
	}

	out.OverridePostFX = s.OverridePostFX
	out.PostFX = s.PostFX.toSettings()
	out.AllowFXAA = s.AllowFXAA
	out.KeepAlpha = s.KeepAlpha

	if s.FinalBlend != nil {
		src, err := render.ParseBlendFactor(s.FinalBlend.Source)
		if err != nil {
			return nil, fmt.Errorf("prefabs: camera settings: final_blend.source: %w", err)
		}
		dst, err := render.ParseBlendFactor(s.FinalBlend.Destination)
		if err != nil {
			return nil, fmt.Errorf("prefabs: camera settings: final_blend.destination: %w", err)
		}
		out.FinalBlendMode = render.FinalBlendMode{Source: src, Destination: dst}
	}

	return out, nil
}

// SettingsSpecFrom is the inverse of ToSettings. Every key is written out.
func SettingsSpecFrom(s *render.CameraSettings) *CameraSettingsSpec {
	if s == nil {
		return nil
	}
	copyColor := s.CopyColor
	mask := int64(s.RenderingLayerMask)
	if s.RenderingLayerMask == render.AllRenderingLayers {
		mask = -1
	}
	scale := s.RenderScale
	return &CameraSettingsSpec{
		CopyColor:          &copyColor,
		RenderingLayerMask: &mask,
		RenderScaleMode:    s.RenderScaleMode.String(),
		RenderScale:        &scale,
		OverridePostFX:     s.OverridePostFX,
		PostFX:             postFXSpecFrom(s.PostFX),
		AllowFXAA:          s.AllowFXAA,
		KeepAlpha:          s.KeepAlpha,
		FinalBlend: &FinalBlendSpec{
			Source:      s.FinalBlendMode.Source.String(),
			Destination: s.FinalBlendMode.Destination.String(),
		},
	}
}

func (p *PostFXSpec) toSettings() *render.PostFXSettings {
	if p == nil {
		return nil
	}
	fx := &render.PostFXSettings{
		Exposure:   p.Exposure,
		Contrast:   p.Contrast,
		Saturation: p.Saturation,
	}
	if p.ColorFilter != nil {
		fx.ColorFilter = p.ColorFilter.Color
	}
	return fx
}

func postFXSpecFrom(fx *render.PostFXSettings) *PostFXSpec {
	if fx == nil {
		return nil
	}
	out := &PostFXSpec{Exposure: fx.Exposure, Contrast: fx.Contrast, Saturation: fx.Saturation}
	if fx.ColorFilter != nil {
		out.ColorFilter = &YAMLColor{Color: fx.ColorFilter}
	}
	return out
}

type PipelineSpec struct {
	RenderScale float64     `yaml:"render_scale"`
	AllowFXAA   bool        `yaml:"allow_fxaa"`
	PostFX      *PostFXSpec `yaml:"post_fx"`
}

func (p PipelineSpec) ToSettings() render.PipelineSettings {
	out := render.DefaultPipelineSettings()
	if p.RenderScale > 0 {
		out.RenderScale = render.ClampRenderScale(p.RenderScale)
	}
	out.AllowFXAA = p.AllowFXAA
	out.PostFX = p.PostFX.toSettings()
	return out
}

func LoadPipelineSpec(filename string) (PipelineSpec, error) {
	return LoadSpec[PipelineSpec](filename)
}
