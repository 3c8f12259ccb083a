package render

import "github.com/hajimehoshi/ebiten/v2"

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// TargetPool hands out offscreen images keyed by owner. An image is reused
// while the requested size stays the same and replaced when it changes.
type TargetPool struct {
	targets map[string]*ebiten.Image
}

func NewTargetPool() *TargetPool {
	return &TargetPool{targets: make(map[string]*ebiten.Image)}
}

// Acquire returns a cleared image of exactly w x h for key.
func (p *TargetPool) Acquire(key string, w, h int) *ebiten.Image {
	if p == nil || w <= 0 || h <= 0 {
		return nil
	}
	if p.targets == nil {
		p.targets = make(map[string]*ebiten.Image)
	}
	if img, ok := p.targets[key]; ok {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			img.Clear()
			return img
		}
		img.Deallocate()
	}
	img := ebiten.NewImage(w, h)
	p.targets[key] = img
	return img
}

// Peek returns the image held for key without clearing it.
func (p *TargetPool) Peek(key string) *ebiten.Image {
	if p == nil {
		return nil
	}
	return p.targets[key]
}

// Release deallocates and forgets the image held for key.
func (p *TargetPool) Release(key string) {
	if p == nil {
		return
	}
	if img, ok := p.targets[key]; ok {
		img.Deallocate()
		delete(p.targets, key)
	}
}

// Len returns the number of held targets.
func (p *TargetPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.targets)
}
