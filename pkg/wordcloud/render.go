package wordcloud

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
)

// Render draws cloud at opts.Scale times its layout size on a white, or
// with opts.Transparent a clear, background.
func Render(cloud *Cloud, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}

	f := opts.Font
	if f == nil {
		var err error
		if f, err = LoadFont(""); err != nil {
			return nil, err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, cloud.Width*scale, cloud.Height*scale))
	if !opts.Transparent {
		draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	}

	faces := newFaceCache(f)
	defer faces.Close()

	for _, p := range cloud.Words {
		face, err := faces.Get(p.Size * float64(scale))
		if err != nil {
			return nil, fmt.Errorf("failed to render %q: %w", p.Text, err)
		}
		bounds, _ := font.BoundString(face, p.Text)
		drawWord(img, image.NewUniform(p.Color), face, p.Text, bounds, p.X*scale, p.Y*scale)
	}
	return img, nil
}
