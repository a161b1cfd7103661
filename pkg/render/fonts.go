// Package render draws bar charts and choropleth maps with gonum/plot.
package render

import (
	"image/color"

	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/glyphs"
)

// Fonts is the text configuration handed to every renderer.
type Fonts struct {
	Font    font.Font
	Handler text.Handler

	face *opentype.Font
}

// LoadFonts builds the render fonts from cfg. An empty path selects the
// Liberation Sans face, which has no CJK glyphs; see Missing.
func LoadFonts(cfg models.FontConfig) (*Fonts, error) {
	cache := font.NewCache(liberation.Collection())
	if cfg.Path == "" {
		fnt := font.Font{Typeface: "Liberation", Variant: "Sans"}
		return &Fonts{
			Font:    fnt,
			Handler: text.Plain{Fonts: cache},
			face:    cache.Lookup(fnt, 12).Face,
		}, nil
	}

	face, err := glyphs.Load(cfg.Path)
	if err != nil {
		return nil, err
	}

	typeface := font.Typeface(cfg.Typeface)
	if typeface == "" {
		typeface = "Custom"
	}
	fnt := font.Font{Typeface: typeface}
	cache.Add(font.Collection{{Font: fnt, Face: face}})

	return &Fonts{Font: fnt, Handler: text.Plain{Fonts: cache}, face: face}, nil
}

// Missing returns the characters of texts the font cannot draw.
func (f *Fonts) Missing(texts ...string) []rune {
	if f.face == nil {
		return nil
	}
	return glyphs.Missing(f.face, texts...)
}

// Style returns a centred text style of the given size.
func (f *Fonts) Style(size vg.Length, clr color.Color) text.Style {
	fnt := f.Font
	fnt.Size = size
	return text.Style{
		Color:   clr,
		Font:    fnt,
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: f.Handler,
	}
}

// Apply switches every text element of p to f, keeping the sizes already set.
func (f *Fonts) Apply(p *plot.Plot) {
	p.TextHandler = f.Handler
	for _, sty := range []*text.Style{
		&p.Title.TextStyle,
		&p.X.Label.TextStyle,
		&p.Y.Label.TextStyle,
		&p.X.Tick.Label,
		&p.Y.Tick.Label,
		&p.Legend.TextStyle,
	} {
		f.restyle(sty)
	}
}

func (f *Fonts) restyle(sty *text.Style) {
	size := sty.Font.Size
	sty.Font = f.Font
	sty.Font.Size = size
	sty.Handler = f.Handler
}
