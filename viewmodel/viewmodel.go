// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewmodel maps a data view and settings to the scale-ready
// model of a small multiples chart: the shared axis domains, the
// measures and their styles, one Multiple per distinct value of the
// multiple column, and the legend.
//
// Building never fails. A data view that cannot be charted produces
// a ViewModel with Valid set to false, which callers treat as "show
// the landing page".
package viewmodel

import (
	"github.com/aclements/smallmultiples/dataview"
	"github.com/aclements/smallmultiples/format"
)

// ViewModel is the result of Build.
type ViewModel struct {
	// Valid is false if the data view lacks the data needed to
	// draw a chart. Err then says why and nothing else is set.
	Valid bool
	Err   error

	// Categories are the distinct category axis keys in the order
	// they first appear in the data.
	Categories []string

	// Measures are the plotted series in column order.
	Measures []*Measure

	// Multiples are the panels in the order their key first
	// appears in the data.
	Multiples []*Multiple

	// ValueAxis is the master value axis domain.
	ValueAxis *Domain

	MultipleColumn, CategoryColumn *dataview.Column

	// ValueAxisTitle and CategoryAxisTitle are the resolved axis
	// titles, or "" if the title is not shown.
	ValueAxisTitle, CategoryAxisTitle string

	Legend Legend

	// Notes are non-fatal diagnostics from the build, such as a
	// user axis range that had to be ignored.
	Notes []string
}

// Measure is the display metadata of one plotted series.
type Measure struct {
	Index int

	// Column is the table column holding the measure's values.
	Column string

	DisplayName string

	// QueryName is the measure's stable selector. Style
	// overrides are persisted against it.
	QueryName string

	Stroke                 string
	StrokeWidth            float64
	ShowArea               bool
	BackgroundTransparency float64
	LineShape              string
	LineStyle              string

	// Format is how values of this measure are rendered. Its
	// unit is resolved against the whole data set.
	Format format.Format
}

// Domain is a continuous value axis domain.
type Domain struct {
	Start, End float64

	// Explicit is set if Start and End come from settings
	// rather than the data.
	Explicit bool

	// Format renders tick labels. Its unit is resolved from the
	// magnitude of the whole chart.
	Format format.Format

	Ticks  []float64
	Labels []string
}

// Multiple is one panel of the chart.
type Multiple struct {
	Index int

	// Name is the panel's key in the multiple column.
	Name string

	// Rows are the table rows belonging to this panel.
	Rows []int

	// Series holds one entry per Measure, in the same order.
	Series []Series

	// Domain is the value domain this panel is drawn against. It
	// is the master domain unless independent value axes are
	// enabled.
	Domain *Domain
}

// Series is one measure's values within a Multiple.
type Series struct {
	Measure *Measure

	// Values is indexed by category index. Categories this panel
	// has no value for are NaN.
	Values []float64
}

// Legend is the chart's single shared legend.
type Legend struct {
	// Title is "" if no title should be drawn.
	Title   string
	Entries []LegendEntry
}

// LegendEntry is one measure's legend item.
type LegendEntry struct {
	Name    string
	Color   string
	Measure *Measure
}
