// Package geo loads administrative boundary polygons from a GeoJSON source.
package geo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/dtnitsch/cohortviz/pkg/caching"
	"github.com/dtnitsch/cohortviz/pkg/fetcher"
)

// ErrNameColumnNotFound is returned when features carry neither a "name" nor a "NAME" property.
var ErrNameColumnNotFound = errors.New("region name property not found")

var nameKeys = []string{"name", "NAME"}

// Region is one administrative area.
type Region struct {
	Name     string
	Adcode   string
	Geometry orb.Geometry
	// Point is a representative point guaranteed to fall inside the region when one can be found.
	Point orb.Point
}

// Polygons returns the region's polygons.
func (r Region) Polygons() []orb.Polygon {
	switch g := r.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	}
	return nil
}

// Source fetches boundary files by administrative code.
type Source struct {
	// URLTemplate contains "{adcode}", e.g. https://geojson.cn/api/china/{adcode}.json
	URLTemplate string
	Fetcher     *fetcher.Fetcher
	// Cache is optional.
	Cache *caching.Cache
}

// URL returns the boundary URL for an adcode.
func (s *Source) URL(adcode string) string {
	return strings.ReplaceAll(s.URLTemplate, "{adcode}", adcode)
}

// Load returns the raw GeoJSON for adcode, reading through the cache when one is set.
func (s *Source) Load(ctx context.Context, adcode string) ([]byte, error) {
	url := s.URL(adcode)
	if s.Cache != nil {
		if data, ok := s.Cache.Get(url); ok {
			return data, nil
		}
	}

	data, err := s.Fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(url, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Options controls which features Parse keeps.
type Options struct {
	// AdcodeSuffix keeps only features whose adcode ends with it, e.g. "0000" for provinces.
	// Ignored when features have no adcode property.
	AdcodeSuffix string
}

// Parse decodes a FeatureCollection into polygon regions.
func Parse(data []byte, opts Options) ([]Region, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode GeoJSON: %w", err)
	}

	var polys []*geojson.Feature
	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			polys = append(polys, f)
		}
	}
	if len(polys) == 0 {
		return nil, nil
	}

	nameKey := findNameKey(polys)
	if nameKey == "" {
		return nil, fmt.Errorf("%w: have %s", ErrNameColumnNotFound, strings.Join(propertyKeys(polys), ", "))
	}

	regions := make([]Region, 0, len(polys))
	for _, f := range polys {
		adcode, hasAdcode := adcodeOf(f.Properties)
		if opts.AdcodeSuffix != "" && hasAdcode && !strings.HasSuffix(adcode, opts.AdcodeSuffix) {
			continue
		}
		regions = append(regions, Region{
			Name:     fmt.Sprint(f.Properties[nameKey]),
			Adcode:   adcode,
			Geometry: f.Geometry,
			Point:    RepresentativePoint(f.Geometry),
		})
	}
	return regions, nil
}

func findNameKey(features []*geojson.Feature) string {
	for _, key := range nameKeys {
		for _, f := range features {
			if _, ok := f.Properties[key]; ok {
				return key
			}
		}
	}
	return ""
}

func propertyKeys(features []*geojson.Feature) []string {
	set := make(map[string]struct{})
	for _, f := range features {
		for k := range f.Properties {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func adcodeOf(props geojson.Properties) (string, bool) {
	v, ok := props["adcode"]
	if !ok || v == nil {
		return "", false
	}
	switch a := v.(type) {
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64), true
	case string:
		return a, true
	default:
		return fmt.Sprint(a), true
	}
}

// Bound returns the bounding box of all regions.
func Bound(regions []Region) orb.Bound {
	if len(regions) == 0 {
		return orb.Bound{}
	}
	b := regions[0].Geometry.Bound()
	for _, r := range regions[1:] {
		b = b.Union(r.Geometry.Bound())
	}
	return b
}

// RepresentativePoint returns a point inside the largest polygon of g: its centroid when that
// falls inside, otherwise the middle of the widest horizontal span through the polygon's bbox centre.
func RepresentativePoint(g orb.Geometry) orb.Point {
	var poly orb.Polygon
	switch t := g.(type) {
	case orb.Polygon:
		poly = t
	case orb.MultiPolygon:
		best := -1.0
		for _, p := range t {
			if a := planar.Area(p); a > best {
				best, poly = a, p
			}
		}
	default:
		c, _ := planar.CentroidArea(g)
		return c
	}
	if len(poly) == 0 {
		return orb.Point{}
	}

	c, _ := planar.CentroidArea(poly)
	if planar.PolygonContains(poly, c) {
		return c
	}

	b := poly.Bound()
	y := (b.Min[1] + b.Max[1]) / 2
	xs := crossings(poly, y)
	if len(xs) < 2 {
		return c
	}

	bestWidth, mid := -1.0, c
	for i := 0; i+1 < len(xs); i += 2 {
		if w := xs[i+1] - xs[i]; w > bestWidth {
			bestWidth = w
			mid = orb.Point{(xs[i] + xs[i+1]) / 2, y}
		}
	}
	return mid
}

// crossings returns the sorted x coordinates where the horizontal line at y crosses poly's rings.
func crossings(poly orb.Polygon, y float64) []float64 {
	var xs []float64
	for _, ring := range poly {
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if (a[1] > y) == (b[1] > y) {
				continue
			}
			xs = append(xs, a[0]+(y-a[1])*(b[0]-a[0])/(b[1]-a[1]))
		}
	}
	sort.Float64s(xs)
	return xs
}
