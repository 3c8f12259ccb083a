package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/entity"
	"github.com/milk9111/customrp/ecs/system"
	"github.com/milk9111/customrp/prefabs"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	heroSpeed = 4.0
)

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	cameras   *system.CameraSystem
	renderer  *system.CameraRenderSystem
	watcher   *prefabs.Watcher
	face      ebtext.Face

	inspector     *settingsInspector
	showInspector bool
}

func NewGame(sceneName string, debug, watch bool) (*Game, error) {
	w := ecs.NewWorld()
	scene, err := entity.LoadScene(w, sceneName)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		debug:    debug,
		world:    w,
		cameras:  system.NewCameraSystem(baseWidth, baseHeight),
		renderer: system.NewCameraRenderSystem(scene.Pipeline),
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
	}
	g.inspector = newSettingsInspector(w, scene.Cameras)

	scripts := system.NewSettingsScriptSystem()
	var changes <-chan string
	if watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = watcher
			changes = watcher.Events
			go logWatchErrors(watcher)
		}
	}

	g.scheduler = ecs.NewScheduler(
		heroInput{},
		g.cameras,
		system.NewSettingsReloadSystem(changes, scripts),
		scripts,
	)

	log.Printf("game: scene %s loaded with %d camera(s), %d sprite(s)", scene.Name, len(scene.Cameras), len(scene.Sprites))
	return g, nil
}

func logWatchErrors(w *prefabs.Watcher) {
	for err := range w.Errors {
		log.Printf("game: prefab watcher: %v", err)
	}
}

func (g *Game) Update() error {
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showInspector = !g.showInspector
	}

	g.scheduler.Update(g.world)

	if g.showInspector {
		g.inspector.refresh()
		g.inspector.ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)

	if g.debug {
		g.drawDebug(screen)
	}
	if g.showInspector {
		g.inspector.ui.Draw(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	b := screen.Bounds()
	y := 8.0
	g.drawText(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 8, y)
	for _, cp := range g.renderer.Plans(g.world, b.Dx(), b.Dy()) {
		y += 16
		plan := cp.Plan
		g.drawText(screen, fmt.Sprintf("camera %s depth=%d target=%dx%d scale=%.2f mask=%#x postfx=%v keep_alpha=%v",
			cp.Entity, cp.Camera.Depth, plan.TargetWidth, plan.TargetHeight, plan.Scale, plan.LayerMask, plan.PostFX != nil, plan.KeepAlpha), 8, y)

		if img := g.renderer.ColorCopy(cp.Entity); img != nil {
			op := &ebiten.DrawImageOptions{}
			ib := img.Bounds()
			op.GeoM.Scale(96/float64(ib.Dx()), 54/float64(ib.Dy()))
			op.GeoM.Translate(float64(b.Dx())-104, y-8)
			screen.DrawImage(img, op)
		}
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.cameras.SetScreenSize(baseWidth, baseHeight)
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// heroInput moves the entity named "hero" with the arrow keys.
type heroInput struct{}

func (heroInput) Update(w *ecs.World) {
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= heroSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += heroSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= heroSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += heroSpeed
	}
	if dx == 0 && dy == 0 {
		return
	}
	ecs.ForEach2(w, component.NameTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tag *component.NameTag, t *component.Transform) {
		if tag.Name == "hero" {
			t.X += dx
			t.Y += dy
		}
	})
}
