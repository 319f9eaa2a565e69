// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"fmt"
	"math"
)

// Validate brings s into a consistent state: range-bound properties
// are clamped to c.Ranges and enumerated properties with unknown
// values are reset to their defaults. It returns a note for every
// correction it made. Validate is part of constructing Settings and
// must run before s is handed to other components.
//
// Non-finite value axis bounds are dropped. Otherwise Validate does
// not check the value axis range: an inverted or empty explicit range
// is resolved against the data by the view model.
func (s *Settings) Validate(c *Constants) (notes []string) {
	def := Defaults()
	clamp := func(name string, p *float64, r Range) {
		if math.IsNaN(*p) {
			notes = append(notes, fmt.Sprintf("%s is NaN; using %g", name, r.Min))
			*p = r.Min
			return
		}
		if v := r.Clamp(*p); v != *p {
			notes = append(notes, fmt.Sprintf("%s %g out of range [%g,%g]; using %g", name, *p, r.Min, r.Max, v))
			*p = v
		}
	}
	oneOf := func(name string, p *string, def string, allowed ...string) {
		for _, a := range allowed {
			if *p == a {
				return
			}
		}
		notes = append(notes, fmt.Sprintf("%s %q is not one of %q; using %q", name, *p, allowed, def))
		*p = def
	}

	r := &c.Ranges
	l := &s.Layout
	oneOf("layout.horizontalGrid", &l.HorizontalGrid, def.Layout.HorizontalGrid, HorizontalColumn, HorizontalWidth)
	oneOf("layout.verticalGrid", &l.VerticalGrid, def.Layout.VerticalGrid, VerticalFit, VerticalHeight)
	cols := float64(l.NumberOfColumns)
	clamp("layout.numberOfColumns", &cols, r.NumberOfColumns)
	l.NumberOfColumns = int(cols)
	clamp("layout.multipleWidth", &l.MultipleWidth, r.MultipleSize)
	clamp("layout.multipleHeight", &l.MultipleHeight, r.MultipleSize)
	clamp("layout.spacingBetweenColumns", &l.SpacingBetweenColumns, r.Spacing)
	clamp("layout.spacingBetweenRows", &l.SpacingBetweenRows, r.Spacing)

	for _, ax := range []*AxisSettings{&s.ValueAxis, &s.CategoryAxis} {
		name := ObjValueAxis
		if ax.Axis == CategoryAxisKind {
			name = ObjCategoryAxis
		}
		clamp(name+".gridlineStrokeWidth", &ax.GridlineStrokeWidth, r.GridlineStrokeWidth)
		if ax.Axis == CategoryAxisKind {
			clamp(name+".axisLineStrokeWidth", &ax.AxisLineStrokeWidth, r.AxisLineStrokeWidth)
		}
	}
	va := &s.ValueAxis
	for _, b := range []struct {
		name string
		p    **float64
	}{{"valueAxis.start", &va.Start}, {"valueAxis.end", &va.End}} {
		if *b.p != nil && (math.IsNaN(**b.p) || math.IsInf(**b.p, 0)) {
			notes = append(notes, fmt.Sprintf("%s %g is not finite; using the data range", b.name, **b.p))
			*b.p = nil
		}
	}
	if va.Precision != nil {
		p := float64(*va.Precision)
		clamp("valueAxis.precision", &p, r.Precision)
		*va.Precision = int(p)
	}
	oneOf("valueAxis.titleStyle", &va.TitleStyle, def.ValueAxis.TitleStyle, TitleStyleTitle, TitleStyleUnit, TitleStyleBoth)

	oneOf("legend.position", &s.Legend.Position, def.Legend.Position, PositionTop, PositionBottom, PositionLeft, PositionRight)
	oneOf("heading.position", &s.Heading.Position, def.Heading.Position, PositionTop, PositionBottom)
	clamp("smallMultiple.borderStrokeWidth", &s.SmallMultiple.BorderStrokeWidth, r.BorderStrokeWidth)
	clamp("lines.strokeWidth", &s.Lines.StrokeWidth, r.ShapeStrokeWidth)
	return notes
}
