package wordcloud

import (
	"image"
	"math/rand"
)

// occupancy answers "is this box empty" in constant time with a summed-area
// table over the mask and the glyphs drawn so far.
type occupancy struct {
	w, h  int
	mask  *Mask
	table []uint32 // (w+1)*(h+1); table[y*(w+1)+x] sums cells [0,x) x [0,y)
}

func newOccupancy(w, h int, mask *Mask) *occupancy {
	o := &occupancy{w: w, h: h, mask: mask, table: make([]uint32, (w+1)*(h+1))}
	o.rebuild(nil, 0, 0)
	return o
}

func (o *occupancy) cell(glyphs *image.Alpha, x, y int) uint32 {
	if o.mask != nil && o.mask.Blocked(x, y) {
		return 1
	}
	if glyphs != nil && glyphs.AlphaAt(x, y).A > 0 {
		return 1
	}
	return 0
}

// rebuild recomputes the table for every cell at or below and right of (x0, y0).
func (o *occupancy) rebuild(glyphs *image.Alpha, x0, y0 int) {
	stride := o.w + 1
	for y := y0; y < o.h; y++ {
		for x := x0; x < o.w; x++ {
			o.table[(y+1)*stride+x+1] = o.cell(glyphs, x, y) +
				o.table[y*stride+x+1] +
				o.table[(y+1)*stride+x] -
				o.table[y*stride+x]
		}
	}
}

func (o *occupancy) sum(x, y, bw, bh int) uint32 {
	stride := o.w + 1
	return o.table[(y+bh)*stride+x+bw] -
		o.table[y*stride+x+bw] -
		o.table[(y+bh)*stride+x] +
		o.table[y*stride+x]
}

// Sample picks a uniformly random top-left corner of an empty bw x bh box.
func (o *occupancy) Sample(bw, bh int, rng *rand.Rand) (int, int, bool) {
	if bw <= 0 || bh <= 0 || bw > o.w || bh > o.h {
		return 0, 0, false
	}

	hits := 0
	for y := 0; y <= o.h-bh; y++ {
		for x := 0; x <= o.w-bw; x++ {
			if o.sum(x, y, bw, bh) == 0 {
				hits++
			}
		}
	}
	if hits == 0 {
		return 0, 0, false
	}

	pick := rng.Intn(hits)
	for y := 0; y <= o.h-bh; y++ {
		for x := 0; x <= o.w-bw; x++ {
			if o.sum(x, y, bw, bh) != 0 {
				continue
			}
			if pick == 0 {
				return x, y, true
			}
			pick--
		}
	}
	return 0, 0, false
}

// Update folds the glyphs drawn at (x, y) into the table.
func (o *occupancy) Update(glyphs *image.Alpha, x, y int) {
	o.rebuild(glyphs, max(0, x-1), max(0, y-1))
}
