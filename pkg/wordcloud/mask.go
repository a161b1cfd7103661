// Package wordcloud lays out weighted words on a canvas and renders them.
package wordcloud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Mask marks the pixels words may not cover.
type Mask struct {
	Width   int
	Height  int
	blocked []bool
}

// NewMask returns a mask of the given size with every pixel free.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, blocked: make([]bool, width*height)}
}

// Blocked reports whether (x, y) is off limits.
func (m *Mask) Blocked(x, y int) bool {
	return m.blocked[y*m.Width+x]
}

func (m *Mask) block(x, y int) {
	m.blocked[y*m.Width+x] = true
}

// EllipseMask leaves the ellipse inscribed in the canvas, inset by padX and
// padY, free and blocks everything outside it.
func EllipseMask(width, height, padX, padY int) *Mask {
	m := NewMask(width, height)
	cx, cy := float64(width-1)/2, float64(height-1)/2
	rx, ry := float64(width-2*padX-1)/2, float64(height-2*padY-1)/2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rx <= 0 || ry <= 0 {
				m.block(x, y)
				continue
			}
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy > 1 {
				m.block(x, y)
			}
		}
	}
	return m
}

// TextMask blocks the fully covered pixels of text drawn centred on the
// canvas. Words are laid out around the letters.
func TextMask(width, height int, text string, f *opentype.Font, size float64) (*Mask, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("failed to create mask face: %w", err)
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, text)
	tw := (bounds.Max.X - bounds.Min.X).Ceil()
	th := (bounds.Max.Y - bounds.Min.Y).Ceil()

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	drawWord(dst, image.Opaque, face, text, bounds, (width-tw)/2, (height-th)/2)

	m := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if dst.AlphaAt(x, y).A == 0xff {
				m.block(x, y)
			}
		}
	}
	return m, nil
}

// ImageMask decodes an image and blocks its pure white pixels.
func ImageMask(r io.Reader) (*Mask, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mask image: %w", err)
	}

	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y == 0xff {
				m.block(x, y)
			}
		}
	}
	return m, nil
}

// drawWord draws text with the top-left corner of its ink box at (x, y).
func drawWord(dst draw.Image, src image.Image, face font.Face, text string, bounds fixed.Rectangle26_6, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y).Sub(bounds.Min),
	}
	d.DrawString(text)
}
