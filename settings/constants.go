// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

// Range is an inclusive numeric range a property is constrained to.
type Range struct {
	Min, Max float64
}

// Clamp returns x limited to [r.Min, r.Max].
func (r Range) Clamp(x float64) float64 {
	if x < r.Min {
		return r.Min
	}
	if x > r.Max {
		return r.Max
	}
	return x
}

// Ranges are the numeric constraints on range-bound properties.
type Ranges struct {
	Precision           Range
	GridlineStrokeWidth Range
	AxisLineStrokeWidth Range
	ShapeStrokeWidth    Range
	BorderStrokeWidth   Range
	Spacing             Range
	NumberOfColumns     Range
	MultipleSize        Range
}

// Constants is read-only configuration shared by every component.
// Construct it once with DefaultConstants and pass it down.
type Constants struct {
	// TargetObjectVersion is the current settings schema version.
	TargetObjectVersion int

	// MinPx is the smallest viewport width or height, in pixels,
	// for which a full layout is attempted.
	MinPx float64

	Ranges Ranges

	// Paddings, in pixels, around the legend, axis titles and
	// axis labels, and the width of a legend marker.
	LegendPadding     float64
	LegendMarkerWidth float64
	TitlePadding      float64
	AxisLabelPadding  float64
	HeadingPadding    float64

	// MinTickSpacing is the minimum vertical distance between
	// value axis ticks, and MaxTicks the most ticks ever drawn.
	MinTickSpacing float64
	MaxTicks       int

	// Debug exposes the features group regardless of settings.
	Debug bool
}

// DefaultConstants returns the standard constants.
func DefaultConstants() *Constants {
	return &Constants{
		TargetObjectVersion: 2,
		MinPx:               100,
		Ranges: Ranges{
			Precision:           Range{0, 10},
			GridlineStrokeWidth: Range{1, 5},
			AxisLineStrokeWidth: Range{1, 5},
			ShapeStrokeWidth:    Range{1, 10},
			BorderStrokeWidth:   Range{1, 10},
			Spacing:             Range{0, 50},
			NumberOfColumns:     Range{1, 20},
			MultipleSize:        Range{50, 1000},
		},
		LegendPadding:     5,
		LegendMarkerWidth: 10,
		TitlePadding:      5,
		AxisLabelPadding:  5,
		HeadingPadding:    4,
		MinTickSpacing:    30,
		MaxTicks:          10,
	}
}
