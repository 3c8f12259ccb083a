package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

var blendFactorNames = map[BlendFactor]string{
	BlendZero:             "zero",
	BlendOne:              "one",
	BlendSrcColor:         "src_color",
	BlendOneMinusSrcColor: "one_minus_src_color",
	BlendSrcAlpha:         "src_alpha",
	BlendOneMinusSrcAlpha: "one_minus_src_alpha",
	BlendDstColor:         "dst_color",
	BlendOneMinusDstColor: "one_minus_dst_color",
	BlendDstAlpha:         "dst_alpha",
	BlendOneMinusDstAlpha: "one_minus_dst_alpha",
}

func (f BlendFactor) String() string {
	if name, ok := blendFactorNames[f]; ok {
		return name
	}
	return fmt.Sprintf("BlendFactor(%d)", int(f))
}

func ParseBlendFactor(s string) (BlendFactor, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	for f, name := range blendFactorNames {
		if name == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("render: unknown blend factor %q", s)
}

func (f BlendFactor) ebiten() ebiten.BlendFactor {
	switch f {
	case BlendOne:
		return ebiten.BlendFactorOne
	case BlendSrcColor:
		return ebiten.BlendFactorSourceColor
	case BlendOneMinusSrcColor:
		return ebiten.BlendFactorOneMinusSourceColor
	case BlendSrcAlpha:
		return ebiten.BlendFactorSourceAlpha
	case BlendOneMinusSrcAlpha:
		return ebiten.BlendFactorOneMinusSourceAlpha
	case BlendDstColor:
		return ebiten.BlendFactorDestinationColor
	case BlendOneMinusDstColor:
		return ebiten.BlendFactorOneMinusDestinationColor
	case BlendDstAlpha:
		return ebiten.BlendFactorDestinationAlpha
	case BlendOneMinusDstAlpha:
		return ebiten.BlendFactorOneMinusDestinationAlpha
	default:
		return ebiten.BlendFactorZero
	}
}

// FinalBlendMode controls how a camera's target is composited onto the screen.
// {One, Zero} overwrites, {One, OneMinusSrcAlpha} layers a camera over the ones below.
type FinalBlendMode struct {
	Source      BlendFactor
	Destination BlendFactor
}

// Blend maps the mode onto an additive ebiten blend applied to color and alpha alike.
func (m FinalBlendMode) Blend() ebiten.Blend {
	src := m.Source.ebiten()
	dst := m.Destination.ebiten()
	return ebiten.Blend{
		BlendFactorSourceRGB:        src,
		BlendFactorSourceAlpha:      src,
		BlendFactorDestinationRGB:   dst,
		BlendFactorDestinationAlpha: dst,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}
