package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/entity"
	"github.com/milk9111/customrp/ecs/system"
	"github.com/milk9111/customrp/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// rpsettings prints the resolved render pipeline settings of camera prefabs.
func main() {
	cameraName := flag.String("camera", "", "camera prefab to resolve")
	sceneName := flag.String("scene", "scene.yaml", "scene prefab whose cameras are resolved when -camera is empty")
	frames := flag.Int("frames", 0, "run settings scripts for this many frames before printing")
	copyOut := flag.Bool("copy", false, "also copy the output to the clipboard")
	flag.Parse()

	w := ecs.NewWorld()
	if *cameraName != "" {
		if _, err := entity.NewCamera(w, *cameraName); err != nil {
			log.Fatal(err)
		}
	} else if _, err := entity.LoadScene(w, *sceneName); err != nil {
		log.Fatal(err)
	}

	scheduler := ecs.NewScheduler(system.NewSettingsScriptSystem())
	for i := 0; i < *frames; i++ {
		scheduler.Update(w)
	}

	out, err := dump(w)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		log.Fatal(err)
	}

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			log.Fatalf("rpsettings: clipboard: %v", err)
		}
		clipboard.Write(clipboard.FmtText, out)
	}
}

// dump writes one YAML document per camera, in entity order.
func dump(w *ecs.World) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range w.Query(component.CameraComponent.Kind(), component.RenderPipelineCameraComponent.Kind()) {
		holder, _ := ecs.Get(w, e, component.RenderPipelineCameraComponent.Kind())
		// Settings() stores a default, so read this first.
		assigned := holder.Assigned()

		name := e.String()
		if p, ok := ecs.Get(w, e, component.PrefabComponent.Kind()); ok {
			name = p.Name
		}
		data, err := yaml.Marshal(prefabs.SettingsSpecFrom(holder.Settings()))
		if err != nil {
			return nil, fmt.Errorf("rpsettings: %s: %w", name, err)
		}

		fmt.Fprintf(&buf, "---\n# %s (assigned: %v)\n", name, assigned)
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
