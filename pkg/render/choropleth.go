package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/geo"
	"github.com/dtnitsch/cohortviz/pkg/regions"
)

// colour bar share of the figure width
const colorBarFraction = 0.12

var (
	boundaryColor = color.Gray{Y: 178}
	edgeColor     = color.Gray{Y: 153}
)

// Choropleth fills every matched region on a Blues ramp between vmin and vmax,
// outlines the rest, labels every region and adds a colour bar.
func Choropleth(path string, joined regions.JoinResult[geo.Region], cfg models.MapConfig, vmin, vmax float64, fonts *Fonts) error {
	if len(joined.Rows) == 0 {
		return ErrNoData
	}

	cmap, err := blues(vmin, vmax)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	if cfg.TitleSize > 0 {
		p.Title.TextStyle.Font.Size = vg.Points(cfg.TitleSize)
	}
	p.HideAxes()

	if err := addRegions(p, joined, cmap); err != nil {
		return err
	}

	layer := newLabelLayer(joined, cfg, fonts)
	p.Add(layer)
	fonts.Apply(p)

	widthIn, heightIn := mapSize(cfg)
	equalAspect(p, widthIn*(1-colorBarFraction), heightIn)

	bar := plot.New()
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})
	bar.Y.Tick.Label.Font.Size = vg.Points(labelSize(cfg))
	fonts.Apply(bar)

	return savePNG(path, widthIn, heightIn, cfg.DPI, func(c draw.Canvas) {
		w := c.Max.X - c.Min.X
		h := c.Max.Y - c.Min.Y
		barW := w * colorBarFraction

		p.Draw(draw.Crop(c, 0, -barW, 0, 0))
		bar.Draw(draw.Crop(c, w-barW+barW*0.3, -barW*0.2, h*0.15, -h*0.15))
	})
}

func addRegions(p *plot.Plot, joined regions.JoinResult[geo.Region], cmap palette.ColorMap) error {
	for _, row := range joined.Rows {
		var fill color.Color
		if row.HasValue {
			clr, err := cmap.At(row.Value)
			if err != nil {
				return fmt.Errorf("failed to colour %s: %w", row.Key, err)
			}
			fill = clr
		}

		for _, poly := range row.Feature.Polygons() {
			rings := make([]plotter.XYer, 0, len(poly))
			for _, ring := range poly {
				rings = append(rings, ringXYs(ring))
			}
			shape, err := plotter.NewPolygon(rings...)
			if err != nil {
				return fmt.Errorf("failed to build polygon for %s: %w", row.Key, err)
			}
			shape.Color = fill
			if fill != nil {
				shape.LineStyle.Color = edgeColor
				shape.LineStyle.Width = vg.Points(0.6)
			} else {
				shape.LineStyle.Color = boundaryColor
				shape.LineStyle.Width = vg.Points(0.8)
			}
			p.Add(shape)
		}
	}
	return nil
}

func ringXYs(ring orb.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(ring))
	for i, pt := range ring {
		xys[i].X = pt[0]
		xys[i].Y = pt[1]
	}
	return xys
}

// regionLabel is "name\nvalue" (or the name alone) drawn at At. When At was
// moved away from Anchor a leader line joins them.
type regionLabel struct {
	Anchor orb.Point
	At     orb.Point
	Text   string
	Leader bool
}

func newLabelLayer(joined regions.JoinResult[geo.Region], cfg models.MapConfig, fonts *Fonts) *labelLayer {
	layer := &labelLayer{
		Style:       fonts.Style(vg.Points(labelSize(cfg)), color.Black),
		Line:        draw.LineStyle{Color: color.Black, Width: vg.Points(0.6)},
		Alpha:       alphaOr(cfg.LabelAlpha, 0.5),
		OffsetAlpha: alphaOr(cfg.OffsetAlpha, 0.65),
	}

	for _, row := range joined.Rows {
		name := row.Key
		if cfg.LabelFullName {
			name = row.Feature.Name
		}
		label := name
		if row.HasValue {
			label = name + "\n" + strconv.Itoa(int(row.Value))
		}

		lbl := regionLabel{Anchor: row.Feature.Point, At: row.Feature.Point, Text: label}
		if off, ok := cfg.Offsets[row.Key]; ok {
			lbl.At = orb.Point{lbl.Anchor[0] + off[0], lbl.Anchor[1] + off[1]}
			lbl.Leader = true
		}
		layer.Labels = append(layer.Labels, lbl)
	}
	return layer
}

// labelLayer is a plot.Plotter drawing boxed region labels.
type labelLayer struct {
	Labels      []regionLabel
	Style       text.Style
	Line        draw.LineStyle
	Alpha       float64
	OffsetAlpha float64
}

func (l *labelLayer) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pad := l.Style.Font.Size * 0.25

	for _, lbl := range l.Labels {
		at := vg.Point{X: trX(lbl.At[0]), Y: trY(lbl.At[1])}
		alpha := l.Alpha
		if lbl.Leader {
			c.StrokeLine2(l.Line, trX(lbl.Anchor[0]), trY(lbl.Anchor[1]), at.X, at.Y)
			alpha = l.OffsetAlpha
		}

		box := l.Style.Rectangle(lbl.Text).Add(at)
		box.Min.X -= pad
		box.Min.Y -= pad
		box.Max.X += pad
		box.Max.Y += pad
		c.FillPolygon(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)}, []vg.Point{
			box.Min,
			{X: box.Max.X, Y: box.Min.Y},
			box.Max,
			{X: box.Min.X, Y: box.Max.Y},
		})
		c.FillText(l.Style, at, lbl.Text)
	}
}

// DataRange covers the label positions so moved labels stay on the canvas.
func (l *labelLayer) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, lbl := range l.Labels {
		for _, pt := range []orb.Point{lbl.Anchor, lbl.At} {
			xmin = math.Min(xmin, pt[0])
			xmax = math.Max(xmax, pt[0])
			ymin = math.Min(ymin, pt[1])
			ymax = math.Max(ymax, pt[1])
		}
	}
	return xmin, xmax, ymin, ymax
}

// equalAspect widens one axis so a degree of longitude and latitude have the
// same length on the canvas at the map's middle latitude.
func equalAspect(p *plot.Plot, widthIn, heightIn float64) {
	kx := math.Cos((p.Y.Min + p.Y.Max) / 2 * math.Pi / 180)
	if kx <= 0 {
		kx = 1
	}
	dx := (p.X.Max - p.X.Min) * kx
	dy := p.Y.Max - p.Y.Min
	if dx <= 0 || dy <= 0 || widthIn <= 0 || heightIn <= 0 {
		return
	}

	want := widthIn / heightIn
	if dx/dy > want {
		extra := dx/want - dy
		p.Y.Min -= extra / 2
		p.Y.Max += extra / 2
	} else {
		extra := (dy*want - dx) / kx
		p.X.Min -= extra / 2
		p.X.Max += extra / 2
	}
}

func mapSize(cfg models.MapConfig) (float64, float64) {
	w, h := cfg.WidthIn, cfg.HeightIn
	if w <= 0 {
		w = 12
	}
	if h <= 0 {
		h = 10
	}
	return w, h
}

func labelSize(cfg models.MapConfig) float64 {
	if cfg.LabelSize > 0 {
		return cfg.LabelSize
	}
	return 8
}

func alphaOr(v, def float64) float64 {
	if v <= 0 || v > 1 {
		return def
	}
	return v
}

// bluesControls run dark to light; moreland needs increasing luminance.
var bluesControls = []color.Color{
	color.NRGBA{R: 0x08, G: 0x30, B: 0x6b, A: 0xff},
	color.NRGBA{R: 0x21, G: 0x71, B: 0xb5, A: 0xff},
	color.NRGBA{R: 0x6b, G: 0xae, B: 0xd6, A: 0xff},
	color.NRGBA{R: 0xc6, G: 0xdb, B: 0xef, A: 0xff},
	color.NRGBA{R: 0xf7, G: 0xfb, B: 0xff, A: 0xff},
}

// blues maps vmin to the lightest and vmax to the darkest blue.
// Values outside the range are clamped.
func blues(vmin, vmax float64) (palette.ColorMap, error) {
	base, err := moreland.NewLuminance(bluesControls)
	if err != nil {
		return nil, fmt.Errorf("failed to build colour map: %w", err)
	}
	base.SetMax(vmax)
	base.SetMin(vmin)
	return reversed{base}, nil
}

type reversed struct {
	palette.ColorMap
}

func (r reversed) At(v float64) (color.Color, error) {
	lo, hi := r.Min(), r.Max()
	u := lo + hi - math.Max(lo, math.Min(hi, v))
	return r.ColorMap.At(math.Max(lo, math.Min(hi, u)))
}

func (r reversed) Palette(n int) palette.Palette {
	lo, hi := r.Min(), r.Max()
	out := make(colorList, n)
	for i := range out {
		v := lo
		if n > 1 {
			v = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		out[i], _ = r.At(v)
	}
	return out
}

type colorList []color.Color

func (l colorList) Colors() []color.Color { return l }
