package component

// RenderLayer sorts draw order by Index and selects cameras by Mask. A
// camera draws the entity when Mask shares a bit with its rendering layer
// mask. A zero Mask is treated as layer 0 (bit 1).
type RenderLayer struct {
	Index int
	Mask  uint32
}

func (l *RenderLayer) Visible(cameraMask uint32) bool {
	if l == nil {
		return cameraMask&1 != 0
	}
	mask := l.Mask
	if mask == 0 {
		mask = 1
	}
	return mask&cameraMask != 0
}

var RenderLayerComponent = NewComponent[RenderLayer]()
