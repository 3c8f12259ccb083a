package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImage loads a PNG from disk and caches it by path.
func LoadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("render: empty image path")
	}
	if img := GetImage(path); img != nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		img := ebiten.NewImageFromImage(im)
		RegisterImage(path, img)
		return img, nil
	}
	return nil, fmt.Errorf("render: image %s not found", path)
}

// SolidImage returns a cached w x h image filled with c.
func SolidImage(w, h int, c color.Color) *ebiten.Image {
	r, g, b, a := c.RGBA()
	key := fmt.Sprintf("solid:%dx%d:%04x%04x%04x%04x", w, h, r, g, b, a)
	if img := GetImage(key); img != nil {
		return img
	}
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(c)
	RegisterImage(key, img)
	return img
}
