package system

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
)

func newScriptedCamera(t *testing.T, w *ecs.World, path string) *component.RenderPipelineCamera {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SettingsScriptComponent.Kind(), &component.SettingsScript{Path: path}); err != nil {
		t.Fatal(err)
	}
	holder, ok := ecs.Get(w, e, component.RenderPipelineCameraComponent.Kind())
	if !ok {
		t.Fatalf("settings script must attach a render pipeline camera")
	}
	return holder
}

func TestSettingsScriptEmbedded(t *testing.T) {
	w := ecs.NewWorld()
	holder := newScriptedCamera(t, w, "minimap_pulse.tengo")
	before := holder.Settings()

	s := NewSettingsScriptSystem()
	s.Update(w)

	after := holder.Settings()
	if after != before {
		t.Fatalf("script must edit settings in place")
	}
	if after.RenderScaleMode != render.RenderScaleOverride {
		t.Fatalf("expected override mode, got %v", after.RenderScaleMode)
	}
	want := 0.75 + 0.25*math.Sin(1.0/60.0)
	if math.Abs(after.RenderScale-want) > 1e-9 {
		t.Fatalf("expected render scale %v, got %v", want, after.RenderScale)
	}
	if after.CopyColor || after.RenderingLayerMask != 1 {
		t.Fatalf("unexpected settings %+v", *after)
	}
}

func TestSettingsScriptRejectsBadValues(t *testing.T) {
	sources := map[string]string{
		"bad_type.tengo":    `settings.keep_alpha = "yes"`,
		"bad_scale.tengo":   `settings.keep_alpha = true; settings.render_scale = -1`,
		"wide_mask.tengo":   `settings.keep_alpha = true; settings.rendering_layer_mask = 1 << 32`,
		"runtime.tengo":     `x := undefined_fn()`,
		"not_a_map.tengo":   `settings = 5`,
		"valid.tengo":       `settings.keep_alpha = true`,
		"signed_mask.tengo": `settings.keep_alpha = true; settings.rendering_layer_mask = -1`,
	}
	tests := []struct {
		path          string
		wantKeepAlpha bool
	}{
		{"bad_type.tengo", false},
		{"bad_scale.tengo", false},
		{"wide_mask.tengo", false},
		{"runtime.tengo", false},
		{"not_a_map.tengo", false},
		{"valid.tengo", true},
		{"signed_mask.tengo", true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			w := ecs.NewWorld()
			holder := newScriptedCamera(t, w, tc.path)
			s := NewSettingsScriptSystem()
			s.Load = func(path string) ([]byte, error) {
				src, ok := sources[path]
				if !ok {
					return nil, errors.New("missing")
				}
				return []byte(src), nil
			}
			s.Update(w)

			got := holder.Settings()
			if got.KeepAlpha != tc.wantKeepAlpha {
				t.Fatalf("expected keep_alpha=%v, got %v", tc.wantKeepAlpha, got.KeepAlpha)
			}
			if got.RenderScale != 1 {
				t.Fatalf("rejected runs must not change settings, got scale %v", got.RenderScale)
			}
			if got.RenderingLayerMask != render.AllRenderingLayers {
				t.Fatalf("expected every layer, got mask %#x", got.RenderingLayerMask)
			}
		})
	}
}

func TestSettingsScriptInvalidate(t *testing.T) {
	w := ecs.NewWorld()
	holder := newScriptedCamera(t, w, "live.tengo")

	src := `settings.render_scale = 0.5`
	s := NewSettingsScriptSystem()
	s.Load = func(string) ([]byte, error) { return []byte(src), nil }

	s.Update(w)
	if holder.Settings().RenderScale != 0.5 {
		t.Fatalf("expected 0.5, got %v", holder.Settings().RenderScale)
	}

	src = `settings.render_scale = 0.25`
	s.Update(w)
	if holder.Settings().RenderScale != 0.5 {
		t.Fatalf("cached script must keep running until invalidated")
	}

	s.Invalidate("prefabs/scripts/live.tengo")
	s.Update(w)
	if holder.Settings().RenderScale != 0.25 {
		t.Fatalf("expected recompiled script, got %v", holder.Settings().RenderScale)
	}
}

func TestSettingsScriptDropsDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	newScriptedCamera(t, w, "minimap_pulse.tengo")
	s := NewSettingsScriptSystem()
	s.Update(w)
	if len(s.cache) != 1 {
		t.Fatalf("expected one cached script, got %d", len(s.cache))
	}

	cam, _ := w.First(component.SettingsScriptComponent.Kind())
	ecs.DestroyEntity(w, cam)
	w.Events().Drain()

	s.Update(w)
	if len(s.cache) != 0 {
		t.Fatalf("cache must drop destroyed entities, got %d", len(s.cache))
	}
}
