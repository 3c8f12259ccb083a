package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/customrp/ecs"
	"github.com/milk9111/customrp/ecs/component"
	"github.com/milk9111/customrp/ecs/render"
	"golang.org/x/image/font/basicfont"
)

const renderScaleStep = 0.1

// settingsInspector edits the settings of one camera at a time.
type settingsInspector struct {
	ui    *ebitenui.UI
	world *ecs.World

	cameras []ecs.Entity
	index   int

	title     *widget.Text
	mode      *widget.Button
	scale     *widget.Text
	copyColor *widget.Button
	keepAlpha *widget.Button
	fxaa      *widget.Button
}

func newSettingsInspector(w *ecs.World, cameras []ecs.Entity) *settingsInspector {
	in := &settingsInspector{world: w, cameras: cameras}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	newButton := func(label string, onClick func(s *render.CameraSettings)) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(196, 24), widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if holder := in.holder(); holder != nil {
					onClick(holder.Settings())
				}
				in.refresh()
			}),
		)
	}

	in.title = widget.NewText(widget.TextOpts.Text("", &face, white))
	in.scale = widget.NewText(widget.TextOpts.Text("", &face, white))

	next := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Next camera", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(196, 24), widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if len(in.cameras) > 0 {
				in.index = (in.index + 1) % len(in.cameras)
			}
			in.refresh()
		}),
	)

	in.mode = newButton("", func(s *render.CameraSettings) {
		s.RenderScaleMode = (s.RenderScaleMode + 1) % (render.RenderScaleOverride + 1)
	})
	scaleDown := newButton("Scale -", func(s *render.CameraSettings) {
		s.RenderScale = render.ClampRenderScale(s.RenderScale - renderScaleStep)
	})
	scaleUp := newButton("Scale +", func(s *render.CameraSettings) {
		s.RenderScale = render.ClampRenderScale(s.RenderScale + renderScaleStep)
	})
	in.copyColor = newButton("", func(s *render.CameraSettings) { s.CopyColor = !s.CopyColor })
	in.keepAlpha = newButton("", func(s *render.CameraSettings) { s.KeepAlpha = !s.KeepAlpha })
	in.fxaa = newButton("", func(s *render.CameraSettings) { s.AllowFXAA = !s.AllowFXAA })

	reset := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Reset to defaults", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(196, 24), widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if holder := in.holder(); holder != nil {
				holder.SetSettings(nil)
			}
			in.refresh()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)
	panel.AddChild(in.title)
	panel.AddChild(next)
	panel.AddChild(in.mode)
	panel.AddChild(in.scale)
	panel.AddChild(scaleDown)
	panel.AddChild(scaleUp)
	panel.AddChild(in.copyColor)
	panel.AddChild(in.keepAlpha)
	panel.AddChild(in.fxaa)
	panel.AddChild(reset)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	in.ui = &ebitenui.UI{Container: root}
	in.refresh()
	return in
}

func (in *settingsInspector) holder() *component.RenderPipelineCamera {
	if len(in.cameras) == 0 {
		return nil
	}
	holder, ok := ecs.Get(in.world, in.cameras[in.index], component.RenderPipelineCameraComponent.Kind())
	if !ok {
		return nil
	}
	return holder
}

func (in *settingsInspector) refresh() {
	holder := in.holder()
	if holder == nil {
		in.title.Label = "no camera"
		return
	}
	s := holder.Settings()
	in.title.Label = fmt.Sprintf("camera %s", in.cameras[in.index])
	in.mode.Text().Label = "Scale mode: " + s.RenderScaleMode.String()
	in.scale.Label = fmt.Sprintf("Render scale: %.2f", s.RenderScale)
	in.copyColor.Text().Label = "Copy color: " + onOff(s.CopyColor)
	in.keepAlpha.Text().Label = "Keep alpha: " + onOff(s.KeepAlpha)
	in.fxaa.Text().Label = "FXAA: " + onOff(s.AllowFXAA)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
