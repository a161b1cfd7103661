package render

import (
	"errors"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/dtnitsch/cohortviz/pkg/storage"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("nothing to draw")

const defaultDPI = 200

// savePNG rasterises one figure of widthIn x heightIn inches and writes it to path.
func savePNG(path string, widthIn, heightIn float64, dpi int, drawFn func(c draw.Canvas)) error {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	drawFn(draw.New(img))
	return storage.SavePNG(path, img.Image())
}
