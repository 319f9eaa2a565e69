// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout carves a viewport into the pieces of a small
// multiples chart: the legend, axis titles, axis label strips, and a
// grid of panels, one per multiple.
//
// Layout is a pipeline of stages. Each stage takes the State left by
// the previous one and returns a new State with less remaining space.
// If at any point the chart cannot be drawn sensibly, the State
// becomes Minimised and later stages leave it alone.
package layout

import (
	"github.com/aclements/smallmultiples/settings"
	"github.com/aclements/smallmultiples/viewmodel"
)

// Input is the fixed input to every stage.
type Input struct {
	VM        *viewmodel.ViewModel
	Settings  *settings.Settings
	Constants *settings.Constants
	Measurer  Measurer
}

// State is the layout as of some stage. Stages never modify the
// State they are given.
type State struct {
	// Viewport is the space the host gave the chart.
	Viewport Rect

	// Remaining is the space not yet claimed by any stage.
	Remaining Rect

	// Minimised is set if the chart is too small to lay out.
	// Reason says why.
	Minimised bool
	Reason    string

	Legend *LegendBox

	// ValueTitle and CategoryTitle are the axis title boxes, or
	// nil if the title is not shown.
	ValueTitle, CategoryTitle *TitleBox

	// ValueLabelWidth and CategoryLabelHeight are the space
	// reserved for axis tick labels.
	ValueLabelWidth, CategoryLabelHeight float64

	// ChartArea is the space available to the grid of panels.
	ChartArea Rect

	Grid Grid

	Panels []Panel
}

// LegendBox is the placed legend.
type LegendBox struct {
	Rect     Rect
	Position string

	// Title is the placed legend title. Its Text is "" if there
	// is no title.
	Title TitleBox
	Items []LegendItem

	FontSize float64
}

// LegendItem is one placed legend entry. Marker is the color swatch
// and Label the entry's text.
type LegendItem struct {
	Entry  viewmodel.LegendEntry
	Marker Rect
	Label  Rect
}

// TitleBox is a placed piece of text. Rotated titles read bottom to
// top.
type TitleBox struct {
	Text    string
	Rect    Rect
	Rotated bool
}

// Grid is the resolved geometry of the panel grid.
type Grid struct {
	Columns, Rows  int
	PanelW, PanelH float64

	// Bounds encloses every panel. It extends below the chart
	// area if the grid overflows.
	Bounds Rect

	// Overflow is set if fixed-height rows do not fit in the
	// chart area. The grid then extends below it.
	Overflow bool
}

// Panel is one placed multiple.
type Panel struct {
	Multiple *viewmodel.Multiple
	Row, Col int

	// Rect is the whole panel. Heading and Plot lie within it.
	Rect Rect

	// Heading is the heading strip, or empty if headings are off.
	Heading Rect

	// Plot is the area the series are drawn in.
	Plot Rect

	// ValueLabels and CategoryLabels say whether this panel draws
	// tick labels. If so, they are drawn in ValueLabelBox and
	// CategoryLabelBox.
	ValueLabels, CategoryLabels     bool
	ValueLabelBox, CategoryLabelBox Rect

	// Ticks and Labels are the value axis ticks that fit this
	// panel's plot height.
	Ticks  []float64
	Labels []string

	// Alternate is set on every other row or column when zebra
	// striping is on.
	Alternate bool
}

// Result is a finished layout.
type Result struct {
	State

	// Trace names the stages that ran, in order.
	Trace []string
}

// Height returns the height of everything drawn. It exceeds the
// viewport height if the grid overflows.
func (r *Result) Height() float64 {
	h := r.Viewport.H
	for _, p := range r.Panels {
		if b := p.Rect.Bottom() + r.CategoryLabelHeight; b > h {
			h = b
		}
	}
	return h
}

// A Stage is one step of the layout pipeline.
type Stage struct {
	Name string
	Run  func(st State, in *Input) State
}

// Pipeline is the sequence of stages Resolve runs.
var Pipeline = []Stage{
	{"checkMinimum", CheckMinimum},
	{"carveLegend", CarveLegend},
	{"carveAxisTitles", CarveAxisTitles},
	{"resolveChartArea", ResolveChartArea},
	{"resolveGrid", ResolveGrid},
	{"assignMultiples", AssignMultiples},
	{"placeMasterAxes", PlaceMasterAxes},
}

// Initial returns the State for a viewport of w by h pixels.
func Initial(w, h float64) State {
	vp := Rect{0, 0, w, h}
	return State{Viewport: vp, Remaining: vp}
}

// Resolve lays out vm in a w by h viewport.
//
// vm should be valid. An invalid view model has no entries or
// multiples, so its layout has no legend and no panels.
func Resolve(vm *viewmodel.ViewModel, s *settings.Settings, c *settings.Constants, m Measurer, w, h float64) *Result {
	in := &Input{vm, s, c, m}
	res := &Result{State: Initial(w, h)}
	for _, stage := range Pipeline {
		res.State = stage.Run(res.State, in)
		res.Trace = append(res.Trace, stage.Name)
	}
	return res
}
