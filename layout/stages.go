// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"math"

	"fortio.org/safecast"
	"github.com/aclements/smallmultiples/settings"
)

func minimise(st State, format string, args ...interface{}) State {
	st.Minimised = true
	st.Reason = fmt.Sprintf(format, args...)
	st.Panels = nil
	return st
}

// CheckMinimum minimises the layout if the viewport is smaller than
// the minimum usable size in either dimension.
func CheckMinimum(st State, in *Input) State {
	minPx := in.Constants.MinPx
	if !st.Viewport.Valid() || st.Viewport.W < minPx || st.Viewport.H < minPx {
		return minimise(st, "viewport %gx%g is below the %gpx minimum", st.Viewport.W, st.Viewport.H, minPx)
	}
	return st
}

// CarveLegend claims space for the legend at its configured edge. A
// legend that does not fit is dropped. The legend is placed even in
// a minimised layout if there is room.
func CarveLegend(st State, in *Input) State {
	ls := &in.Settings.Legend
	if !ls.Show || len(in.VM.Legend.Entries) == 0 || !st.Remaining.Valid() {
		return st
	}
	box := legendBox(st.Remaining, in)
	if !box.Rect.Valid() {
		return st
	}
	var size, room float64
	if box.Position == settings.PositionLeft || box.Position == settings.PositionRight {
		size, room = box.Rect.W, st.Remaining.W
	} else {
		size, room = box.Rect.H, st.Remaining.H
	}
	if size >= room {
		return st
	}
	_, st.Remaining = st.Remaining.Cut(box.Position, size)
	st.Legend = box
	return st
}

// legendBox lays out the legend against the edge of r. Entries flow
// left to right and wrap when the legend is at the top or bottom and
// stack vertically when it is at the left or right.
func legendBox(r Rect, in *Input) *LegendBox {
	ls, c, m := &in.Settings.Legend, in.Constants, in.Measurer
	pad := c.LegendPadding
	box := &LegendBox{Position: ls.Position, FontSize: ls.FontSize}
	_, lead := m.Measure("", ls.FontSize)
	title := in.VM.Legend.Title

	vertical := ls.Position == settings.PositionLeft || ls.Position == settings.PositionRight
	// Items are placed relative to (0, 0) and shifted once the
	// box's size is known.
	x, y, maxW := pad, pad, 0.0
	if title != "" {
		tw, _ := m.Measure(title, ls.FontSize)
		box.Title = TitleBox{Text: title, Rect: Rect{x, y, tw, lead}}
		if vertical {
			y += lead
			maxW = tw
		} else {
			x += tw + pad
		}
	}
	for _, e := range in.VM.Legend.Entries {
		tw, _ := m.Measure(e.Name, ls.FontSize)
		w := c.LegendMarkerWidth + pad + tw
		if vertical {
			if w > maxW {
				maxW = w
			}
		} else if x > pad && x+w > r.W-pad {
			x, y = pad, y+lead
		}
		box.Items = append(box.Items, LegendItem{
			Entry:  e,
			Marker: Rect{x, y + (lead-c.LegendMarkerWidth)/2, c.LegendMarkerWidth, c.LegendMarkerWidth},
			Label:  Rect{x + c.LegendMarkerWidth + pad, y, tw, lead},
		})
		if vertical {
			y += lead
		} else {
			x += w + pad
		}
	}

	size := y + lead + pad
	if vertical {
		size = maxW + 2*pad
	}
	strip, _ := r.Cut(ls.Position, size)
	box.Rect = strip
	shift := func(q Rect) Rect { return Rect{q.X + strip.X, q.Y + strip.Y, q.W, q.H} }
	box.Title.Rect = shift(box.Title.Rect)
	for i := range box.Items {
		box.Items[i].Marker = shift(box.Items[i].Marker)
		box.Items[i].Label = shift(box.Items[i].Label)
	}
	return box
}

// CarveAxisTitles claims space for the value axis title along the
// left edge and the category axis title along the bottom edge. A
// title too long for the remaining space is omitted.
func CarveAxisTitles(st State, in *Input) State {
	if st.Minimised {
		return st
	}
	pad := in.Constants.TitlePadding
	if t := in.VM.ValueAxisTitle; t != "" {
		px := in.Settings.ValueAxis.TitleFontSize
		tw, lead := in.Measurer.Measure(t, px)
		if tw <= st.Remaining.H && lead+pad < st.Remaining.W {
			var strip Rect
			strip, st.Remaining = st.Remaining.CutLeft(lead + pad)
			st.ValueTitle = &TitleBox{Text: t, Rect: Rect{strip.X, strip.Y, lead, strip.H}, Rotated: true}
		}
	}
	if t := in.VM.CategoryAxisTitle; t != "" {
		px := in.Settings.CategoryAxis.TitleFontSize
		tw, lead := in.Measurer.Measure(t, px)
		if tw <= st.Remaining.W && lead+pad < st.Remaining.H {
			var strip Rect
			strip, st.Remaining = st.Remaining.CutBottom(lead + pad)
			st.CategoryTitle = &TitleBox{Text: t, Rect: Rect{strip.X, strip.Y + pad, strip.W, lead}}
		}
	}
	return st
}

// ResolveChartArea sizes the axis label strips and settles the chart
// area. With master axes the strips are claimed once, along the left
// and bottom of the chart. Otherwise each panel reserves its own.
func ResolveChartArea(st State, in *Input) State {
	if st.Minimised {
		return st
	}
	s, pad := in.Settings, in.Constants.AxisLabelPadding
	if s.ValueAxis.ShowLabels {
		maxW := 0.0
		for _, l := range valueLabels(in) {
			if w, _ := in.Measurer.Measure(l, s.ValueAxis.FontSize); w > maxW {
				maxW = w
			}
		}
		if maxW > 0 {
			st.ValueLabelWidth = maxW + pad
		}
	}
	if s.CategoryAxis.ShowLabels {
		_, lead := in.Measurer.Measure("", s.CategoryAxis.FontSize)
		st.CategoryLabelHeight = lead + pad
	}

	st.ChartArea = st.Remaining
	if s.SmallMultiple.MasterAxes {
		_, st.ChartArea = st.ChartArea.CutLeft(st.ValueLabelWidth)
		_, st.ChartArea = st.ChartArea.CutBottom(st.CategoryLabelHeight)
	}
	st.Remaining = Rect{}
	if !st.ChartArea.Valid() {
		return minimise(st, "no room for the chart area (%v)", st.ChartArea)
	}
	return st
}

// valueLabels returns every value axis label any panel might draw.
func valueLabels(in *Input) []string {
	var out []string
	seen := make(map[interface{}]bool)
	if d := in.VM.ValueAxis; d != nil {
		out = append(out, d.Labels...)
		seen[d] = true
	}
	for _, m := range in.VM.Multiples {
		if d := m.Domain; d != nil && !seen[d] {
			out = append(out, d.Labels...)
			seen[d] = true
		}
	}
	return out
}

// ResolveGrid computes the number of rows and columns and the size
// of each panel according to the grid policies.
func ResolveGrid(st State, in *Input) State {
	if st.Minimised {
		return st
	}
	ls := &in.Settings.Layout
	area := st.ChartArea
	n := len(in.VM.Multiples)
	sc, sr := ls.SpacingBetweenColumns, ls.SpacingBetweenRows

	var g Grid
	switch ls.HorizontalGrid {
	case settings.HorizontalWidth:
		g.PanelW = ls.MultipleWidth
		cols, err := safecast.Convert[int](math.Floor((area.W + sc) / (g.PanelW + sc)))
		if err != nil {
			return minimise(st, "cannot fit %gpx panels in %gpx: %v", g.PanelW, area.W, err)
		}
		g.Columns = max(cols, 1)
	default:
		g.Columns = ls.NumberOfColumns
		if g.Columns < 1 {
			return minimise(st, "invalid column count %d", g.Columns)
		}
		g.PanelW = (area.W - float64(g.Columns-1)*sc) / float64(g.Columns)
	}
	g.Rows = max((n+g.Columns-1)/g.Columns, 1)

	switch ls.VerticalGrid {
	case settings.VerticalHeight:
		g.PanelH = ls.MultipleHeight
	default:
		g.PanelH = (area.H - float64(g.Rows-1)*sr) / float64(g.Rows)
	}

	g.Bounds = Rect{
		area.X, area.Y,
		float64(g.Columns)*g.PanelW + float64(g.Columns-1)*sc,
		float64(g.Rows)*g.PanelH + float64(g.Rows-1)*sr,
	}
	if !g.Bounds.Valid() || !(Rect{W: g.PanelW, H: g.PanelH}).Valid() {
		return minimise(st, "%d by %d grid does not fit in %v", g.Columns, g.Rows, area)
	}
	g.Overflow = g.Bounds.H > area.H+1e-9
	st.Grid = g
	return st
}

// AssignMultiples places the multiples in the grid in row-major order
// and carves each panel into its heading strip and plot area.
func AssignMultiples(st State, in *Input) State {
	if st.Minimised {
		return st
	}
	s, c, g := in.Settings, in.Constants, st.Grid
	ls := &s.Layout

	var headingH float64
	if s.Heading.Show {
		_, lead := in.Measurer.Measure("", s.Heading.FontSize)
		headingH = lead + c.HeadingPadding
	}

	panels := make([]Panel, len(in.VM.Multiples))
	for i, m := range in.VM.Multiples {
		p := Panel{Multiple: m, Row: i / g.Columns, Col: i % g.Columns}
		p.Rect = Rect{
			g.Bounds.X + float64(p.Col)*(g.PanelW+ls.SpacingBetweenColumns),
			g.Bounds.Y + float64(p.Row)*(g.PanelH+ls.SpacingBetweenRows),
			g.PanelW, g.PanelH,
		}
		p.Plot = p.Rect
		if headingH > 0 {
			pos := settings.PositionTop
			if s.Heading.Position == settings.PositionBottom {
				pos = settings.PositionBottom
			}
			p.Heading, p.Plot = p.Plot.Cut(pos, headingH)
		}
		if !s.SmallMultiple.MasterAxes {
			p.ValueLabelBox, p.Plot = p.Plot.CutLeft(st.ValueLabelWidth)
			p.CategoryLabelBox, p.Plot = p.Plot.CutBottom(st.CategoryLabelHeight)
		}
		if !p.Plot.Valid() {
			return minimise(st, "panel %q has no room to plot (%v)", m.Name, p.Plot)
		}
		if s.SmallMultiple.ZebraStripe {
			if s.SmallMultiple.ZebraStripeApply == "row" {
				p.Alternate = p.Row%2 == 1
			} else {
				p.Alternate = p.Col%2 == 1
			}
		}
		if d := m.Domain; d != nil {
			p.Ticks, p.Labels = thin(d.Ticks, d.Labels, maxTicks(p.Plot.H, c))
		}
		panels[i] = p
	}
	st.Panels = panels
	return st
}

// maxTicks returns how many ticks fit in a plot h pixels tall.
func maxTicks(h float64, c *settings.Constants) int {
	n := c.MaxTicks
	if c.MinTickSpacing > 0 {
		n = min(n, int(h/c.MinTickSpacing)+1)
	}
	return max(n, 2)
}

// thin keeps every k'th tick so at most n remain. The first tick is
// always kept.
func thin(ticks []float64, labels []string, n int) ([]float64, []string) {
	if len(ticks) <= n {
		return ticks, labels
	}
	k := (len(ticks) + n - 1) / n
	var t []float64
	var l []string
	for i := 0; i < len(ticks); i += k {
		t = append(t, ticks[i])
		l = append(l, labels[i])
	}
	return t, l
}

// PlaceMasterAxes decides which panels draw tick labels. With master
// axes, value labels appear only in the first column and category
// labels only under the last panel of each column. Otherwise every
// panel draws both.
func PlaceMasterAxes(st State, in *Input) State {
	if st.Minimised || len(st.Panels) == 0 {
		return st
	}
	panels := append([]Panel(nil), st.Panels...)
	n, cols := len(panels), st.Grid.Columns
	master := in.Settings.SmallMultiple.MasterAxes
	for i := range panels {
		p := &panels[i]
		if !master {
			p.ValueLabels = st.ValueLabelWidth > 0
			p.CategoryLabels = st.CategoryLabelHeight > 0
			continue
		}
		if p.Col == 0 && st.ValueLabelWidth > 0 {
			p.ValueLabels = true
			p.ValueLabelBox = Rect{p.Rect.X - st.ValueLabelWidth, p.Plot.Y, st.ValueLabelWidth, p.Plot.H}
		}
		if i+cols >= n && st.CategoryLabelHeight > 0 {
			p.CategoryLabels = true
			p.CategoryLabelBox = Rect{p.Plot.X, p.Rect.Bottom(), p.Plot.W, st.CategoryLabelHeight}
		}
	}
	st.Panels = panels
	return st
}
