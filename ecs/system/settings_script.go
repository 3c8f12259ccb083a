package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
	"github.com/milk9111/customrp/prefabs"
)

type settingsScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	err      error
}

// SettingsScriptSystem runs each camera's settings script once per frame.
// A script sees the globals `frame` (int) and `settings` (map) and edits
// `settings` in place; the edits are written back through the camera's
// RenderPipelineCamera.
type SettingsScriptSystem struct {
	// Load reads script source by path.
	Load func(path string) ([]byte, error)

	frame int
	cache map[ecs.Entity]*settingsScriptRuntime
}

func NewSettingsScriptSystem() *SettingsScriptSystem {
	return &SettingsScriptSystem{
		Load:  prefabs.LoadScript,
		cache: make(map[ecs.Entity]*settingsScriptRuntime),
	}
}

func (s *SettingsScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.frame++

	for e := range s.cache {
		if !ecs.IsAlive(w, e) {
			delete(s.cache, e)
		}
	}

	ecs.ForEach2(w, component.SettingsScriptComponent.Kind(), component.RenderPipelineCameraComponent.Kind(), func(e ecs.Entity, script *component.SettingsScript, holder *component.RenderPipelineCamera) {
		rt := s.runtime(e, script.Path)
		if rt.err != nil {
			return
		}
		if err := rt.apply(s.frame, holder.Settings()); err != nil {
			log.Printf("settings script: entity=%s %s: %v", e, script.Path, err)
		}
	})
}

// Invalidate drops compiled scripts for path so they are recompiled on the
// next update.
func (s *SettingsScriptSystem) Invalidate(path string) {
	for e, rt := range s.cache {
		if prefabs.PrefabName(rt.path) == prefabs.PrefabName(path) {
			delete(s.cache, e)
		}
	}
}

func (s *SettingsScriptSystem) runtime(e ecs.Entity, path string) *settingsScriptRuntime {
	if s.cache == nil {
		s.cache = make(map[ecs.Entity]*settingsScriptRuntime)
	}
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt
	}

	rt := &settingsScriptRuntime{path: path}
	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err == nil {
		rt.compiled, err = compileSettingsScript(src)
	}
	if err != nil {
		rt.err = err
		log.Printf("settings script: entity=%s load %s: %v", e, path, err)
	}
	s.cache[e] = rt
	return rt
}

func compileSettingsScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	if err := script.Add("frame", 0); err != nil {
		return nil, err
	}
	if err := script.Add("settings", map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// apply runs the script against a copy of settings and commits the result
// only if the run and every value it produced are valid.
func (rt *settingsScriptRuntime) apply(frame int, settings *render.CameraSettings) error {
	if err := rt.compiled.Set("frame", frame); err != nil {
		return err
	}
	if err := rt.compiled.Set("settings", settingsToScript(settings)); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return err
	}

	next := settings.Clone()
	if err := settingsFromScript(rt.compiled.Get("settings").Map(), next); err != nil {
		return err
	}
	*settings = *next
	return nil
}

func settingsToScript(s *render.CameraSettings) map[string]any {
	return map[string]any{
		"render_scale":         s.RenderScale,
		"render_scale_mode":    s.RenderScaleMode.String(),
		"copy_color":           s.CopyColor,
		"keep_alpha":           s.KeepAlpha,
		"allow_fxaa":           s.AllowFXAA,
		"rendering_layer_mask": int64(s.RenderingLayerMask),
	}
}

func settingsFromScript(m map[string]any, s *render.CameraSettings) error {
	if m == nil {
		return fmt.Errorf("settings is not a map")
	}
	for key, v := range m {
		switch key {
		case "render_scale":
			f, ok := toFloat(v)
			if !ok || f <= 0 {
				return fmt.Errorf("render_scale: want positive number, got %v", v)
			}
			s.RenderScale = f
		case "render_scale_mode":
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("render_scale_mode: want string, got %T", v)
			}
			mode, err := render.ParseRenderScaleMode(str)
			if err != nil {
				return err
			}
			s.RenderScaleMode = mode
		case "copy_color", "keep_alpha", "allow_fxaa":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%s: want bool, got %T", key, v)
			}
			switch key {
			case "copy_color":
				s.CopyColor = b
			case "keep_alpha":
				s.KeepAlpha = b
			default:
				s.AllowFXAA = b
			}
		case "rendering_layer_mask":
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("rendering_layer_mask: want int, got %T", v)
			}
			mask, err := render.LayerMask(n)
			if err != nil {
				return err
			}
			s.RenderingLayerMask = mask
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
