package system

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
	"github.com/milk9111/customrp/prefabs"
)

// SettingsReloadSystem applies camera prefab edits to live cameras. It
// drains changed paths without blocking and replaces the settings of every
// camera built from a changed prefab.
type SettingsReloadSystem struct {
	events  <-chan string
	scripts *SettingsScriptSystem

	// applied holds the on-disk mod time of each prefab last reloaded from
	// an event, so repeated events for an unchanged file are skipped.
	applied map[string]time.Time
}

// NewSettingsReloadSystem reads changed paths from events, typically a
// prefabs.Watcher. scripts may be nil.
func NewSettingsReloadSystem(events <-chan string, scripts *SettingsScriptSystem) *SettingsReloadSystem {
	return &SettingsReloadSystem{events: events, scripts: scripts, applied: make(map[string]time.Time)}
}

func (s *SettingsReloadSystem) Update(w *ecs.World) {
	if s == nil || s.events == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.events:
			if !ok {
				s.events = nil
				return
			}
			if strings.EqualFold(filepath.Ext(path), ".tengo") {
				if s.scripts != nil {
					s.scripts.Invalidate(path)
				}
				continue
			}
			s.Reload(w, prefabs.PrefabName(path))
		default:
			return
		}
	}
}

func (s *SettingsReloadSystem) reloadChanged(w *ecs.World, prefab string) {
	mod, onDisk := prefabs.ModTime(prefab)
	if onDisk {
		if last, ok := s.applied[prefab]; ok && last.Equal(mod) {
			return
		}
	}
	if s.Reload(w, prefab) == 0 {
		return
	}
	if s.applied == nil {
		s.applied = make(map[string]time.Time)
	}
	if onDisk {
		s.applied[prefab] = mod
	} else {
		delete(s.applied, prefab)
	}
}

// Reload reloads a camera prefab and assigns its settings to each camera
// built from it. A prefab without a settings block clears the stored
// settings, so the next read builds defaults. On a load error the cameras
// keep their current settings. It returns the number of cameras updated.
func (s *SettingsReloadSystem) Reload(w *ecs.World, prefab string) int {
	var holders []*component.RenderPipelineCamera
	ecs.ForEach2(w, component.PrefabComponent.Kind(), component.RenderPipelineCameraComponent.Kind(), func(_ ecs.Entity, p *component.Prefab, holder *component.RenderPipelineCamera) {
		if p.Name == prefab {
			holders = append(holders, holder)
		}
	})
	if len(holders) == 0 {
		return 0
	}

	spec, err := prefabs.LoadCameraSpec(prefab)
	if err != nil {
		log.Printf("settings reload: %s: %v", prefab, err)
		return 0
	}

	var settings *render.CameraSettings
	if spec.Settings != nil {
		settings, err = spec.Settings.ToSettings()
		if err != nil {
			log.Printf("settings reload: %s: %v", prefab, err)
			return 0
		}
	}

	for _, holder := range holders {
		holder.SetSettings(settings.Clone())
	}
	log.Printf("settings reload: %s applied to %d camera(s)", prefab, len(holders))
	return len(holders)
}
