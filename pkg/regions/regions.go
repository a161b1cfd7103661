// Package regions normalizes administrative region names and joins survey counts onto boundaries.
package regions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/tables"
)

// designators are removed wherever they appear. Longer designators come first
// so that "壮族自治区" is not cut down to "壮族".
var designators = strings.NewReplacer(
	"回族自治区", "",
	"维吾尔自治区", "",
	"壮族自治区", "",
	"特别行政区", "",
	"自治区", "",
	"省", "",
	"市", "",
)

// Normalize strips province, municipality, autonomous-region and SAR designators.
// "广西壮族自治区" -> "广西", "济南市" -> "济南".
func Normalize(name string) string {
	return strings.TrimSpace(designators.Replace(name))
}

// ReadValues reads region/value pairs from the named columns.
// Rows with an empty region are skipped; a non-numeric value is an error.
func ReadValues(t *tables.Table, regionColumn, valueColumn string) ([]models.RegionValue, error) {
	ri, err := t.Index(regionColumn)
	if err != nil {
		return nil, err
	}
	vi, err := t.Index(valueColumn)
	if err != nil {
		return nil, err
	}

	regions := t.ColumnAt(ri)
	values := t.ColumnAt(vi)

	out := make([]models.RegionValue, 0, len(regions))
	for i, region := range regions {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(values[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): invalid value %q: %w", i+2, region, values[i], err)
		}
		out = append(out, models.RegionValue{Region: region, Value: v})
	}
	return out, nil
}

// Joined is one boundary feature with the value joined onto it, if any.
type Joined[F any] struct {
	Feature  F
	Key      string
	Value    float64
	HasValue bool
}

// JoinResult is a left join of values onto features.
type JoinResult[F any] struct {
	Rows []Joined[F]
	// Unmatched lists data regions that matched no feature.
	Unmatched []string
}

// Values returns the joined values in feature order.
func (r JoinResult[F]) Values() []float64 {
	var vals []float64
	for _, row := range r.Rows {
		if row.HasValue {
			vals = append(vals, row.Value)
		}
	}
	return vals
}

// Join left-joins values onto features by normalized name.
// Every feature appears exactly once. When the data repeats a region the last value wins.
func Join[F any](features []F, name func(F) string, values []models.RegionValue) JoinResult[F] {
	byKey := make(map[string]float64, len(values))
	for _, v := range values {
		byKey[Normalize(v.Region)] = v.Value
	}

	used := make(map[string]bool, len(byKey))
	res := JoinResult[F]{Rows: make([]Joined[F], len(features))}
	for i, f := range features {
		key := Normalize(name(f))
		v, ok := byKey[key]
		res.Rows[i] = Joined[F]{Feature: f, Key: key, Value: v, HasValue: ok}
		if ok {
			used[key] = true
		}
	}

	seen := make(map[string]bool)
	for _, v := range values {
		key := Normalize(v.Region)
		if !used[key] && !seen[key] {
			seen[key] = true
			res.Unmatched = append(res.Unmatched, v.Region)
		}
	}
	return res
}
