package wordcloud

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/dtnitsch/cohortviz/pkg/glyphs"
)

// ErrEmptyCanvas is returned when neither a mask nor a size is given.
var ErrEmptyCanvas = errors.New("word cloud canvas has no size")

const (
	defaultMinFontSize = 4
	defaultFontStep    = 1
)

// Word is a word and its weight, usually a frequency.
type Word struct {
	Text   string
	Weight float64
}

// Options configure layout and rendering.
type Options struct {
	// Width and Height are ignored when Mask is set.
	Width  int
	Height int
	Mask   *Mask
	// Font defaults to Go Regular, which has no CJK glyphs.
	Font *opentype.Font

	MaxWords        int
	MinFontSize     float64
	MaxFontSize     float64
	FontStep        float64
	RelativeScaling float64
	Margin          int
	Palette         []color.Color
	Seed            int64

	Scale       int
	Transparent bool
}

// Placement is one word on the canvas. X and Y are the top-left corner of
// its ink box, which is W by H pixels at Size.
type Placement struct {
	Text  string
	Size  float64
	X     int
	Y     int
	W     int
	H     int
	Color color.Color
}

// Cloud is a finished layout in canvas pixels.
type Cloud struct {
	Width  int
	Height int
	Words  []Placement
}

// LoadFont parses a TrueType/OpenType font or the first face of a .ttc
// collection. An empty path returns Go Regular, which has no CJK glyphs.
func LoadFont(path string) (*opentype.Font, error) {
	if path == "" {
		return opentype.Parse(goregular.TTF)
	}
	return glyphs.Load(path)
}

// BoldFont returns Go Bold, used for text masks without a configured font.
func BoldFont() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
}

// Layout places words by descending weight. Each word starts at the size of
// the previous one adjusted by RelativeScaling and shrinks by FontStep until a
// random free position is found. Layout stops at the first word that does not
// fit at MinFontSize. The result depends only on the inputs and Seed.
func Layout(words []Word, opts Options) (*Cloud, error) {
	width, height := opts.Width, opts.Height
	if opts.Mask != nil {
		width, height = opts.Mask.Width, opts.Mask.Height
	}
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyCanvas
	}

	f := opts.Font
	if f == nil {
		var err error
		if f, err = LoadFont(""); err != nil {
			return nil, err
		}
	}

	cloud := &Cloud{Width: width, Height: height}
	sorted := rankWords(words, opts.MaxWords)
	if len(sorted) == 0 {
		return cloud, nil
	}

	faces := newFaceCache(f)
	defer faces.Close()

	rng := rand.New(rand.NewSource(opts.Seed))
	occ := newOccupancy(width, height, opts.Mask)
	canvas := image.NewAlpha(image.Rect(0, 0, width, height))

	size := opts.MaxFontSize
	if size <= 0 {
		size = float64(height)
	}
	minSize := opts.MinFontSize
	if minSize <= 0 {
		minSize = defaultMinFontSize
	}
	step := opts.FontStep
	if step <= 0 {
		step = defaultFontStep
	}
	rs := opts.RelativeScaling

	maxWeight := sorted[0].Weight
	lastFreq := 1.0
	for _, w := range sorted {
		freq := w.Weight / maxWeight
		if rs != 0 {
			size = math.Round((rs*(freq/lastFreq) + (1-rs)) * size)
		}

		var (
			x, y   int
			placed bool
			face   font.Face
			bounds fixed.Rectangle26_6
			err    error
		)
		for ; size >= minSize; size -= step {
			if face, err = faces.Get(size); err != nil {
				return nil, err
			}
			bounds, _ = font.BoundString(face, w.Text)
			bw := (bounds.Max.X - bounds.Min.X).Ceil() + opts.Margin
			bh := (bounds.Max.Y - bounds.Min.Y).Ceil() + opts.Margin
			if x, y, placed = occ.Sample(bw, bh, rng); placed {
				break
			}
		}
		if !placed {
			break
		}

		x += opts.Margin / 2
		y += opts.Margin / 2
		drawWord(canvas, image.Opaque, face, w.Text, bounds, x, y)
		occ.Update(canvas, x, y)

		cloud.Words = append(cloud.Words, Placement{
			Text:  w.Text,
			Size:  size,
			X:     x,
			Y:     y,
			W:     (bounds.Max.X - bounds.Min.X).Ceil(),
			H:     (bounds.Max.Y - bounds.Min.Y).Ceil(),
			Color: pickColor(opts.Palette, rng),
		})
		lastFreq = freq
	}
	return cloud, nil
}

// rankWords drops blank and non-positive entries and sorts by weight
// descending, keeping input order among equal weights.
func rankWords(words []Word, maxWords int) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" || w.Weight <= 0 {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	if maxWords > 0 && len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}

func pickColor(palette []color.Color, rng *rand.Rand) color.Color {
	if len(palette) == 0 {
		return color.Black
	}
	return palette[rng.Intn(len(palette))]
}

// faceCache keeps one face per font size.
type faceCache struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

func newFaceCache(f *opentype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[float64]font.Face)}
}

func (c *faceCache) Get(size float64) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at size %v: %w", size, err)
	}
	c.faces[size] = face
	return face, nil
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		face.Close()
	}
}
