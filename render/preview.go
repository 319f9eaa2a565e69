// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aclements/smallmultiples/layout"
	"github.com/aclements/smallmultiples/viewmodel"
	"github.com/aclements/smallmultiples/visual"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CellW and CellH are the size in pixels of one terminal cell when
// previewing a layout.
const (
	CellW = 7
	CellH = 14
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// Preview renders the chart in f for a terminal. Each panel is a
// bordered box sized from its layout rectangle, holding its heading
// and one sparkline per measure.
func Preview(f *visual.Frame) string {
	vm, lay := f.VM, f.Layout
	switch {
	case vm == nil || !vm.Valid:
		msg := "no chart"
		if vm != nil && vm.Err != nil {
			msg = vm.Err.Error()
		}
		return muted.Render(msg) + "\n"
	case lay == nil:
		return muted.Render("no layout") + "\n"
	case lay.Minimised:
		return legendLine(vm, lay) + muted.Render("minimised: "+lay.Reason) + "\n"
	}

	var b strings.Builder
	b.WriteString(legendLine(vm, lay))
	if lay.ValueTitle != nil {
		fmt.Fprintf(&b, "%s\n", muted.Render("↑ "+lay.ValueTitle.Text))
	}

	cols := lay.Grid.Columns
	var rows []string
	for start := 0; start < len(lay.Panels); start += cols {
		end := min(start+cols, len(lay.Panels))
		var boxes []string
		for i := start; i < end; i++ {
			boxes = append(boxes, panelBox(f, &lay.Panels[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	if lay.CategoryTitle != nil {
		fmt.Fprintf(&b, "%s\n", muted.Render(lay.CategoryTitle.Text+" →"))
	}
	if lay.Grid.Overflow {
		fmt.Fprintf(&b, "%s\n", muted.Render("(grid overflows the viewport)"))
	}
	return b.String()
}

var muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

func legendLine(vm *viewmodel.ViewModel, lay *layout.Result) string {
	if lay.Legend == nil {
		return ""
	}
	var parts []string
	if t := lay.Legend.Title.Text; t != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(t))
	}
	for _, it := range lay.Legend.Items {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Entry.Color)).Render("■")
		parts = append(parts, sw+" "+it.Entry.Name)
	}
	return strings.Join(parts, "  ") + "\n"
}

// cells converts a pixel extent to terminal cells, at least least.
func cells(px, per float64, least int) int {
	return max(int(math.Round(px/per)), least)
}

func panelBox(f *visual.Frame, p *layout.Panel) string {
	s := f.Settings
	w := cells(p.Rect.W, CellW, 4) - 2
	var lines []string
	if !p.Heading.Empty() {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Heading.FontColor))
		if p.Alternate {
			st = st.Foreground(lipgloss.Color(s.Heading.FontColourAlternate))
		}
		lines = append(lines, st.Render(truncate(p.Multiple.Name, w)))
	}
	labelW := 0
	if p.ValueLabels && len(p.Labels) > 0 {
		for _, l := range []string{p.Labels[0], p.Labels[len(p.Labels)-1]} {
			labelW = max(labelW, runewidth.StringWidth(l))
		}
	}
	d := p.Multiple.Domain
	for _, series := range p.Multiple.Series {
		spark := sparkline(series.Values, d, max(w-labelW-1, 1))
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(series.Measure.Stroke))
		line := st.Render(spark)
		if labelW > 0 {
			line = fmt.Sprintf("%*s %s", labelW, "", line)
		}
		lines = append(lines, line)
	}
	if p.ValueLabels && len(p.Labels) > 0 {
		lines = append(lines, muted.Render(fmt.Sprintf("%*s..%s", labelW, p.Labels[0], p.Labels[len(p.Labels)-1])))
	}
	if p.CategoryLabels && len(f.VM.Categories) > 0 {
		cats := f.VM.Categories
		lines = append(lines, muted.Render(truncate(cats[0]+"…"+cats[len(cats)-1], w)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(w).
		Height(max(cells(p.Rect.H, CellH, len(lines)), 1))
	if s.SmallMultiple.Border {
		box = box.BorderForeground(lipgloss.Color(s.SmallMultiple.BorderColor))
	} else {
		box = box.BorderForeground(lipgloss.Color("8"))
	}
	return box.Render(strings.Join(lines, "\n"))
}

// sparkline draws values in width cells, scaled to d. Missing values
// are blank.
func sparkline(values []float64, d *viewmodel.Domain, width int) string {
	if len(values) == 0 {
		return ""
	}
	span := d.End - d.Start
	out := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		v := values[i*len(values)/width]
		if math.IsNaN(v) {
			out = append(out, ' ')
			continue
		}
		frac := 0.0
		if span > 0 {
			frac = (v - d.Start) / span
		}
		k := int(math.Round(frac * float64(len(sparks)-1)))
		k = max(0, min(k, len(sparks)-1))
		out = append(out, sparks[k])
	}
	return string(out)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PreviewSurface is a visual.Surface that writes terminal previews.
type PreviewSurface struct {
	W io.Writer
}

func (s *PreviewSurface) Clear() {}

func (s *PreviewSurface) DrawLanding(f *visual.Frame) {
	io.WriteString(s.W, Preview(f))
}

func (s *PreviewSurface) DrawMinimised(f *visual.Frame) {
	io.WriteString(s.W, Preview(f))
}

func (s *PreviewSurface) Draw(f *visual.Frame) error {
	_, err := io.WriteString(s.W, Preview(f))
	return err
}
