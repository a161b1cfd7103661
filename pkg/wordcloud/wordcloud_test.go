package wordcloud

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"reflect"
	"testing"

	"golang.org/x/image/font"
)

var testWords = []Word{
	{Text: "li", Weight: 9},
	{Text: "wang", Weight: 7},
	{Text: "zhang", Weight: 5},
	{Text: "liu", Weight: 4},
	{Text: "chen", Weight: 3},
	{Text: "yang", Weight: 2},
	{Text: "zhao", Weight: 2},
	{Text: "wu", Weight: 1},
}

func testOptions() Options {
	return Options{
		Width:           240,
		Height:          120,
		MaxWords:        100,
		MinFontSize:     6,
		MaxFontSize:     60,
		FontStep:        2,
		RelativeScaling: 0.5,
		Palette:         []color.Color{color.NRGBA{R: 0, G: 0xA7, B: 0xEB, A: 0xff}},
		Seed:            7,
		Scale:           2,
	}
}

// inked draws one placement on its own canvas.
func inked(t *testing.T, faces *faceCache, p Placement, w, h int) *image.Alpha {
	t.Helper()
	face, err := faces.Get(p.Size)
	if err != nil {
		t.Fatalf("faces.Get() error = %v", err)
	}
	bounds, _ := font.BoundString(face, p.Text)
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	drawWord(dst, image.Opaque, face, p.Text, bounds, p.X, p.Y)
	return dst
}

func TestEllipseMask(t *testing.T) {
	m := EllipseMask(100, 50, 5, 5)

	tests := []struct {
		x, y int
		want bool
	}{
		{50, 25, false},
		{0, 0, true},
		{99, 49, true},
		{2, 25, true},
		{10, 25, false},
	}
	for _, tt := range tests {
		if got := m.Blocked(tt.x, tt.y); got != tt.want {
			t.Errorf("Blocked(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTextMask(t *testing.T) {
	f, err := BoldFont()
	if err != nil {
		t.Fatalf("BoldFont() error = %v", err)
	}
	m, err := TextMask(200, 80, "HI", f, 60)
	if err != nil {
		t.Fatalf("TextMask() error = %v", err)
	}

	blocked := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Blocked(x, y) {
				blocked++
				if x < 40 || x > 160 {
					t.Fatalf("pixel (%d, %d) blocked outside the centred text", x, y)
				}
			}
		}
	}
	if blocked == 0 {
		t.Error("no pixels blocked by text")
	}
}

func TestImageMask(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	src.SetGray(0, 0, color.Gray{Y: 255})
	src.SetGray(1, 0, color.Gray{Y: 254})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}

	m, err := ImageMask(&buf)
	if err != nil {
		t.Fatalf("ImageMask() error = %v", err)
	}
	if m.Width != 4 || m.Height != 2 {
		t.Fatalf("mask size = %dx%d, want 4x2", m.Width, m.Height)
	}
	if !m.Blocked(0, 0) || m.Blocked(1, 0) || m.Blocked(3, 1) {
		t.Error("only pure white pixels should be blocked")
	}
}

func TestImageMask_NotAnImage(t *testing.T) {
	if _, err := ImageMask(bytes.NewReader([]byte("not a png"))); err == nil {
		t.Error("ImageMask() error = nil for garbage input")
	}
}

func TestOccupancy_Sample(t *testing.T) {
	mask := NewMask(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 7 || y < 7 {
				mask.block(x, y)
			}
		}
	}
	occ := newOccupancy(10, 10, mask)
	rng := rand.New(rand.NewSource(1))

	x, y, ok := occ.Sample(3, 3, rng)
	if !ok || x != 7 || y != 7 {
		t.Errorf("Sample(3, 3) = (%d, %d, %v), want (7, 7, true)", x, y, ok)
	}
	if _, _, ok := occ.Sample(4, 3, rng); ok {
		t.Error("Sample(4, 3) found room in a 3x3 hole")
	}
	if _, _, ok := occ.Sample(11, 1, rng); ok {
		t.Error("Sample() placed a box wider than the canvas")
	}
}

func TestLayout_NoOverlap(t *testing.T) {
	opts := testOptions()
	cloud, err := Layout(testWords, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(cloud.Words) == 0 {
		t.Fatal("Layout() placed no words")
	}

	f, _ := LoadFont("")
	faces := newFaceCache(f)
	defer faces.Close()

	owner := make([]int, opts.Width*opts.Height)
	for i, p := range cloud.Words {
		if p.X < 0 || p.Y < 0 || p.X+p.W > opts.Width || p.Y+p.H > opts.Height {
			t.Errorf("%q box (%d,%d %dx%d) leaves the canvas", p.Text, p.X, p.Y, p.W, p.H)
		}
		img := inked(t, faces, p, opts.Width, opts.Height)
		for y := 0; y < opts.Height; y++ {
			for x := 0; x < opts.Width; x++ {
				if img.AlphaAt(x, y).A == 0 {
					continue
				}
				if prev := owner[y*opts.Width+x]; prev != 0 {
					t.Fatalf("%q overlaps %q at (%d, %d)", p.Text, cloud.Words[prev-1].Text, x, y)
				}
				owner[y*opts.Width+x] = i + 1
			}
		}
	}
}

func TestLayout_SizesFollowWeight(t *testing.T) {
	cloud, err := Layout(testWords, testOptions())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	for i := 1; i < len(cloud.Words); i++ {
		if cloud.Words[i].Size > cloud.Words[i-1].Size {
			t.Errorf("%q size %v larger than %q size %v",
				cloud.Words[i].Text, cloud.Words[i].Size, cloud.Words[i-1].Text, cloud.Words[i-1].Size)
		}
	}
	if cloud.Words[0].Text != "li" {
		t.Errorf("first word = %q, want li", cloud.Words[0].Text)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	a, err := Layout(testWords, testOptions())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	b, err := Layout(testWords, testOptions())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different layouts")
	}
}

func TestLayout_RespectsMask(t *testing.T) {
	opts := testOptions()
	opts.Mask = EllipseMask(opts.Width, opts.Height, 10, 10)

	cloud, err := Layout(testWords, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	f, _ := LoadFont("")
	faces := newFaceCache(f)
	defer faces.Close()

	for _, p := range cloud.Words {
		img := inked(t, faces, p, opts.Width, opts.Height)
		for y := 0; y < opts.Height; y++ {
			for x := 0; x < opts.Width; x++ {
				if img.AlphaAt(x, y).A > 0 && opts.Mask.Blocked(x, y) {
					t.Fatalf("%q covers masked pixel (%d, %d)", p.Text, x, y)
				}
			}
		}
	}
}

func TestLayout_MaxWordsAndBlanks(t *testing.T) {
	opts := testOptions()
	opts.MaxWords = 2
	words := append([]Word{{Text: "  ", Weight: 100}, {Text: "zero", Weight: 0}}, testWords...)

	cloud, err := Layout(words, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(cloud.Words) > 2 {
		t.Errorf("placed %d words, want at most 2", len(cloud.Words))
	}
	for _, p := range cloud.Words {
		if p.Text == "  " || p.Text == "zero" {
			t.Errorf("placed %q", p.Text)
		}
	}
}

func TestLayout_EmptyCanvas(t *testing.T) {
	if _, err := Layout(testWords, Options{}); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("Layout() error = %v, want ErrEmptyCanvas", err)
	}
}

func TestLayout_NoWords(t *testing.T) {
	cloud, err := Layout(nil, testOptions())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(cloud.Words) != 0 {
		t.Errorf("placed %d words from empty input", len(cloud.Words))
	}
}

func TestRender(t *testing.T) {
	opts := testOptions()
	cloud, err := Layout(testWords, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	img, err := Render(cloud, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 240 {
		t.Errorf("image size = %dx%d, want 480x240", b.Dx(), b.Dy())
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0xffff {
		t.Error("opaque render has a transparent corner")
	}

	opts.Transparent = true
	img, err = Render(cloud, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	painted := false
	for y := 0; y < img.Bounds().Dy() && !painted; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.RGBAAt(x, y).A > 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("transparent render has no visible words")
	}
}
