// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws laid-out small multiples charts: as SVG, as a
// raster image, as a terminal preview, or into a Recorder for tests.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/smallmultiples/viewmodel"
	"github.com/aclements/smallmultiples/visual"
)

// ErrNoChart is returned when asked to draw a frame without a
// resolved layout.
var ErrNoChart = errors.New("render: frame has no chart")

// SVG writes the chart in f to w as SVG. The panels are faceted in
// the layout's column count, in multiple order, and share the master
// value axis unless each multiple has its own domain.
func SVG(w io.Writer, f *visual.Frame) error {
	vm, lay := f.VM, f.Layout
	if vm == nil || !vm.Valid || lay == nil || lay.Minimised {
		return ErrNoChart
	}

	t := seriesTable(vm)
	if t.Len() == 0 {
		return placeholderSVG(w, lay.Viewport.W, lay.Viewport.H, "No values to plot")
	}
	p := gg.NewPlot(t)

	independent := false
	for _, m := range vm.Multiples {
		if m.Domain != vm.ValueAxis {
			independent = true
		}
	}
	cols := max(lay.Grid.Columns, 1)
	if independent {
		// FacetWrap cannot split scales, so lay the grid out
		// by row and column and give every band its own y
		// scale. Rows are labeled with their multiples.
		p = gg.NewPlot(withGridCells(t, cols))
		p.SetScale("y", gg.NewLinearScaler())
		rowNames := func(x interface{}) string { return rowLabel(vm, x.(int), cols) }
		blank := func(interface{}) string { return "" }
		p.Add(gg.FacetY{Col: "row", SplitYScales: true, Labeler: rowNames},
			gg.FacetX{Col: "col", SplitYScales: true, Labeler: blank})
	} else {
		names := func(x interface{}) string { return vm.Multiples[x.(int)].Name }
		p.Add(gg.FacetWrap{Col: "multiple", Cols: cols, Labeler: names})
		d := vm.ValueAxis
		p.SetScale("y", gg.NewLinearScaler().SetMin(d.Start).SetMax(d.End))
	}
	p.SetScale("x", gg.NewLinearScaler().SetMin(0).SetMax(math.Max(1, float64(len(vm.Categories)-1))))

	// Keep each measure's points on their own path even if two
	// measures share a color.
	p.GroupBy("measure")
	p.Add(gg.LayerArea{X: "category", Upper: "value", Fill: "fill"})
	p.Add(gg.LayerLines{X: "category", Y: "value", Color: "stroke"})

	if vm.CategoryAxisTitle != "" {
		p.Add(gg.AxisLabel("x", vm.CategoryAxisTitle))
	}
	if vm.ValueAxisTitle != "" {
		p.Add(gg.AxisLabel("y", vm.ValueAxisTitle))
	}
	if t := vm.Legend.Title; t != "" && f.Settings.Legend.Show {
		p.Add(gg.Title(t))
	}
	return p.WriteSVG(w, int(lay.Viewport.W), int(math.Ceil(lay.Height())))
}

// seriesTable flattens vm into one row per finite point.
func seriesTable(vm *viewmodel.ViewModel) *table.Table {
	var (
		multiple, category, measure []int
		value                       []float64
		stroke, fill                []color.Color
	)
	for _, m := range vm.Multiples {
		for _, s := range m.Series {
			line := parseColor(s.Measure.Stroke)
			area := color.NRGBA{}
			if s.Measure.ShowArea {
				area = line
				area.A = uint8(255 * (100 - s.Measure.BackgroundTransparency) / 100)
			}
			for ci, v := range s.Values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				multiple = append(multiple, m.Index)
				category = append(category, ci)
				measure = append(measure, s.Measure.Index)
				value = append(value, v)
				stroke = append(stroke, line)
				fill = append(fill, area)
			}
		}
	}
	return new(table.Builder).
		Add("multiple", multiple).
		Add("category", category).
		Add("measure", measure).
		Add("value", value).
		Add("stroke", stroke).
		Add("fill", fill).
		Done()
}

// withGridCells adds the row and column of each point's multiple
// in a grid of cols columns.
func withGridCells(t *table.Table, cols int) *table.Table {
	multiple := t.MustColumn("multiple").([]int)
	row, col := make([]int, len(multiple)), make([]int, len(multiple))
	for i, m := range multiple {
		row[i], col[i] = m/cols, m%cols
	}
	return table.NewBuilder(t).Add("row", row).Add("col", col).Done()
}

// rowLabel names the multiples in grid row r, left to right.
func rowLabel(vm *viewmodel.ViewModel, r, cols int) string {
	var names []string
	for i := r * cols; i < min((r+1)*cols, len(vm.Multiples)); i++ {
		names = append(names, vm.Multiples[i].Name)
	}
	return strings.Join(names, " | ")
}

// parseColor parses a "#rrggbb" or "#rgb" color. Anything else is
// black.
func parseColor(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// placeholderSVG writes a viewport-sized SVG holding a single
// centered message.
func placeholderSVG(w io.Writer, width, height float64, msg string) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g">
<text x="%g" y="%g" text-anchor="middle" font-family="sans-serif" font-size="12" fill="#777777">%s</text>
</svg>
`, width, height, width/2, height/2, html.EscapeString(msg))
	return err
}

// SVGSurface is a visual.Surface that renders each frame to SVG. The
// last frame is held in Buf.
type SVGSurface struct {
	Width, Height float64
	Buf           bytes.Buffer
}

func (s *SVGSurface) Clear() {
	s.Buf.Reset()
}

func (s *SVGSurface) DrawLanding(f *visual.Frame) {
	msg := "Add a small multiple, a category and at least one measure to get started"
	if f.VM != nil && f.VM.Err != nil {
		msg = f.VM.Err.Error()
	}
	placeholderSVG(&s.Buf, s.Width, s.Height, msg)
}

func (s *SVGSurface) DrawMinimised(f *visual.Frame) {
	placeholderSVG(&s.Buf, s.Width, s.Height, "Enlarge to view the chart")
}

func (s *SVGSurface) Draw(f *visual.Frame) error {
	return SVG(&s.Buf, f)
}
