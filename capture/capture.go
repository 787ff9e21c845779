// Package capture grabs a screen region the way capture tools see it, so a
// protected window can be checked from the outside.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/kbinani/screenshot"
)

const (
	KindGDI  = "gdi"
	KindDXGI = "dxgi"
)

type Backend interface {
	Capture(rect image.Rectangle) (*image.RGBA, error)
	Close() error
}

// New returns the backend named kind: gdi works everywhere screenshot does,
// dxgi is Windows desktop duplication.
func New(kind string) (Backend, error) {
	switch kind {
	case "", KindGDI:
		return gdi{}, nil
	case KindDXGI:
		return newDuplicator()
	default:
		return nil, fmt.Errorf("unknown capture backend %q", kind)
	}
}

type gdi struct{}

func (gdi) Capture(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("empty capture rect %v", rect)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", rect, err)
	}
	return img, nil
}

func (gdi) Close() error { return nil }

// DisplayOf returns the index of the active display holding most of rect.
func DisplayOf(rect image.Rectangle) (int, image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return 0, image.Rectangle{}, fmt.Errorf("no active displays")
	}
	best, bestArea := -1, 0
	var bestBounds image.Rectangle
	for i := range n {
		bounds := screenshot.GetDisplayBounds(i)
		in := rect.Intersect(bounds)
		if area := in.Dx() * in.Dy(); area > bestArea {
			best, bestArea, bestBounds = i, area, bounds
		}
	}
	if best < 0 {
		return 0, image.Rectangle{}, fmt.Errorf("rect %v is off screen", rect)
	}
	return best, bestBounds, nil
}

// Crop copies the part of src inside rect into a new image anchored at the
// origin.
func Crop(src *image.RGBA, rect image.Rectangle) *image.RGBA {
	rect = rect.Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}

// Blank reports whether every pixel equals the first one, which is what a
// WDA_MONITOR window looks like to a capture tool.
func Blank(img *image.RGBA) bool {
	b := img.Bounds()
	if b.Empty() {
		return true
	}
	first := img.PixOffset(b.Min.X, b.Min.Y)
	px := img.Pix[first : first+4]
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if !bytes.Equal(row[i:i+4], px) {
				return false
			}
		}
	}
	return true
}

func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
