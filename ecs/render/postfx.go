package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2/colorm"
)

// PostFXSettings are the color adjustments applied to a camera target before
// it is composited.
type PostFXSettings struct {
	// Exposure in stops.
	Exposure float64
	// Contrast and Saturation are percentages in [-100, 100].
	Contrast    float64
	Saturation  float64
	ColorFilter color.Color
}

// IsIdentity reports whether applying the settings would leave colors unchanged.
func (p *PostFXSettings) IsIdentity() bool {
	if p == nil {
		return true
	}
	if p.Exposure != 0 || p.Contrast != 0 || p.Saturation != 0 {
		return false
	}
	if p.ColorFilter == nil {
		return true
	}
	r, g, b, _ := filterScale(p.ColorFilter)
	return r == 1 && g == 1 && b == 1
}

// ColorM builds the color matrix. Steps run in order: exposure, contrast,
// color filter, saturation.
func (p *PostFXSettings) ColorM() colorm.ColorM {
	var cm colorm.ColorM
	if p == nil {
		return cm
	}

	if p.Exposure != 0 {
		e := math.Pow(2, p.Exposure)
		cm.Scale(e, e, e, 1)
	}

	if p.Contrast != 0 {
		c := clampPercent(p.Contrast)*0.01 + 1
		cm.Scale(c, c, c, 1)
		offset := 0.5 * (1 - c)
		cm.Translate(offset, offset, offset, 0)
	}

	if p.ColorFilter != nil {
		r, g, b, _ := filterScale(p.ColorFilter)
		cm.Scale(r, g, b, 1)
	}

	if p.Saturation != 0 {
		cm.ChangeHSV(0, clampPercent(p.Saturation)*0.01+1, 1)
	}

	return cm
}

func filterScale(c color.Color) (r, g, b, a float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float64(n.R) / 0xff, float64(n.G) / 0xff, float64(n.B) / 0xff, float64(n.A) / 0xff
}

func clampPercent(v float64) float64 {
	return math.Max(-100, math.Min(100, v))
}
