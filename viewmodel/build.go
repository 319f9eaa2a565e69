// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewmodel

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/smallmultiples/dataview"
	"github.com/aclements/smallmultiples/format"
	"github.com/aclements/smallmultiples/settings"
)

// palette colors measures without an explicit stroke.
var palette = []string{
	"#01B8AA", "#374649", "#FD625E", "#F2C80F",
	"#5F6B6D", "#8AD4EB", "#FE9666", "#A66999",
}

// Build maps dv to a ViewModel under settings s.
func Build(dv *dataview.DataView, s *settings.Settings, c *settings.Constants, f format.Formatter) *ViewModel {
	if err := dv.Validate(); err != nil {
		return &ViewModel{Err: err}
	}

	vm := &ViewModel{Valid: true}
	vm.MultipleColumn = dv.ColumnsFor(dataview.RoleMultiple)[0]
	vm.CategoryColumn = dv.ColumnsFor(dataview.RoleCategory)[0]

	// Categories, in first-seen order.
	catKeys := dv.Keys(vm.CategoryColumn.Name)
	catIndex := make(map[string]int)
	for _, k := range catKeys {
		if _, ok := catIndex[k]; !ok {
			catIndex[k] = len(vm.Categories)
			vm.Categories = append(vm.Categories, k)
		}
	}

	// Measures, in column order.
	for i, col := range dv.ColumnsFor(dataview.RoleValues) {
		vm.Measures = append(vm.Measures, vm.measure(i, col, s))
	}

	// Multiples, in first-seen order.
	byName := make(map[string]*Multiple)
	for row, k := range dv.Keys(vm.MultipleColumn.Name) {
		m := byName[k]
		if m == nil {
			m = &Multiple{Index: len(vm.Multiples), Name: k}
			byName[k] = m
			vm.Multiples = append(vm.Multiples, m)
		}
		m.Rows = append(m.Rows, row)
	}
	values := make([][]float64, len(vm.Measures))
	for i, meas := range vm.Measures {
		values[i] = dv.Floats(meas.Column)
	}
	for _, m := range vm.Multiples {
		m.Series = make([]Series, len(vm.Measures))
		for i, meas := range vm.Measures {
			vals := make([]float64, len(vm.Categories))
			for j := range vals {
				vals[j] = math.NaN()
			}
			for _, row := range m.Rows {
				vals[catIndex[catKeys[row]]] = values[i][row]
			}
			m.Series[i] = Series{Measure: meas, Values: vals}
		}
	}

	vm.resolveDomains(s, c, f)
	vm.resolveTitles(s)
	vm.populateLegend(s)
	return vm
}

func (vm *ViewModel) note(format string, args ...interface{}) {
	vm.Notes = append(vm.Notes, fmt.Sprintf(format, args...))
}

func (vm *ViewModel) measure(i int, col *dataview.Column, s *settings.Settings) *Measure {
	style := s.Lines
	if style.Stroke == "" {
		style.Stroke = palette[i%len(palette)]
	}
	if o := col.Objects[settings.ObjLines]; o != nil {
		if err := settings.Overlay(&style, o); err != nil {
			vm.note("ignoring style overrides for %s: %v", col.QueryName, err)
			style = s.Lines
			style.Stroke = palette[i%len(palette)]
		}
	}
	name := col.DisplayName
	if name == "" {
		name = col.Name
	}
	return &Measure{
		Index:                  i,
		Column:                 col.Name,
		DisplayName:            name,
		QueryName:              col.QueryName,
		Stroke:                 style.Stroke,
		StrokeWidth:            style.StrokeWidth,
		ShowArea:               style.ShowArea,
		BackgroundTransparency: style.BackgroundTransparency,
		LineShape:              style.LineShape,
		LineStyle:              style.LineStyle,
		Format:                 format.ParseFormatString(col.Format),
	}
}

// finite returns the finite values of every series in ms.
func finite(ms ...*Multiple) []float64 {
	var xs []float64
	for _, m := range ms {
		for _, s := range m.Series {
			for _, v := range s.Values {
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					xs = append(xs, v)
				}
			}
		}
	}
	return xs
}

// autoRange returns the data range of ms. A range with no extent is
// widened to include zero so the axis is drawable.
func autoRange(ms ...*Multiple) (lo, hi float64) {
	xs := finite(ms...)
	if len(xs) == 0 {
		return 0, 1
	}
	lo, hi = stats.Bounds(xs)
	if lo == hi {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
		if lo == hi {
			hi = 1
		}
	}
	return lo, hi
}

// usableRange reports whether [lo, hi] is a non-empty range whose
// bounds and span are finite.
func usableRange(lo, hi float64) bool {
	span := hi - lo
	return span > 0 && !math.IsInf(span, 0) && !math.IsNaN(lo) && !math.IsNaN(hi)
}

func (vm *ViewModel) resolveDomains(s *settings.Settings, c *settings.Constants, f format.Formatter) {
	va := &s.ValueAxis
	autoLo, autoHi := autoRange(vm.Multiples...)

	master := &Domain{Start: autoLo, End: autoHi}
	if va.Start != nil || va.End != nil {
		lo, hi := autoLo, autoHi
		if va.Start != nil {
			lo = *va.Start
		}
		if va.End != nil {
			hi = *va.End
		}
		switch {
		case lo < hi && usableRange(lo, hi):
			master.Start, master.End, master.Explicit = lo, hi, true
		case lo < hi:
			vm.note("value axis range [%g, %g] is not finite; using data range [%g, %g]", lo, hi, autoLo, autoHi)
		default:
			vm.note("value axis range [%g, %g] is empty or inverted; using data range [%g, %g]", lo, hi, autoLo, autoHi)
		}
	}
	if !usableRange(master.Start, master.End) {
		vm.note("value axis range [%g, %g] is too wide for ticks", master.Start, master.End)
	}

	// The display unit and precision are chosen once, from the
	// whole chart, so every panel formats labels alike.
	unit := format.Resolve(format.DisplayUnit(va.LabelDisplayUnits), math.Max(math.Abs(master.Start), math.Abs(master.End)))
	base := format.Format{Unit: unit, Precision: -1}
	if va.Precision != nil {
		base.Precision = *va.Precision
	} else if len(vm.Measures) > 0 {
		base.Percent = vm.Measures[0].Format.Percent
	}
	for _, m := range vm.Measures {
		m.Format.Unit = unit
		if va.Precision != nil {
			m.Format.Precision = *va.Precision
		}
	}

	master.Format = base
	master.ticks(c.MaxTicks, f)
	vm.ValueAxis = master

	for _, m := range vm.Multiples {
		m.Domain = master
		if s.SmallMultiple.IndependentValueAxis && !master.Explicit {
			lo, hi := autoRange(m)
			d := &Domain{Start: lo, End: hi, Format: base}
			d.ticks(c.MaxTicks, f)
			m.Domain = d
		}
	}
}

// ticks computes at most max major ticks and their labels for d.
func (d *Domain) ticks(max int, f format.Formatter) {
	d.Ticks, d.Labels = Ticks(d, max, f)
}

// Ticks returns at most max major ticks over d and their labels. If
// d's format has no fixed precision, the labels use just enough
// fraction digits to tell the ticks apart.
func Ticks(d *Domain, max int, f format.Formatter) ([]float64, []string) {
	if !usableRange(d.Start, d.End) {
		return nil, nil
	}
	if max < 1 {
		max = 1
	}
	ls := scale.Linear{Min: d.Start, Max: d.End}
	major, _ := ls.Ticks(scale.TickOptions{Max: max})
	fm := d.Format
	if fm.Precision < 0 {
		fm.Precision = tickPrecision(major, fm)
	}
	labels := make([]string, len(major))
	for i, t := range major {
		labels[i] = f.Format(t, fm)
	}
	return major, labels
}

func tickPrecision(ticks []float64, f format.Format) int {
	unit := float64(f.Unit)
	if unit == 0 {
		unit = 1
	}
	if f.Percent {
		unit /= 100
	}
	for p := 0; p < 6; p++ {
		mul := math.Pow(10, float64(p))
		ok := true
		for _, t := range ticks {
			v := t / unit * mul
			if math.Abs(v-math.Round(v)) > 1e-6 {
				ok = false
				break
			}
		}
		if ok {
			return p
		}
	}
	return 6
}

func (vm *ViewModel) resolveTitles(s *settings.Settings) {
	if va := &s.ValueAxis; va.ShowTitle {
		text := va.TitleText
		if text == "" {
			var names []string
			for _, m := range vm.Measures {
				names = append(names, m.DisplayName)
			}
			text = strings.Join(names, ", ")
		}
		unit := vm.ValueAxis.Format.Unit.Title()
		switch {
		case unit == "":
			// No unit to show; the style falls back to title.
		case va.TitleStyle == settings.TitleStyleUnit:
			text = unit
		case va.TitleStyle == settings.TitleStyleBoth:
			text = fmt.Sprintf("%s (%s)", text, unit)
		}
		vm.ValueAxisTitle = text
	}
	if ca := &s.CategoryAxis; ca.ShowTitle {
		text := ca.TitleText
		if text == "" {
			text = vm.CategoryColumn.DisplayName
			if text == "" {
				text = vm.CategoryColumn.Name
			}
		}
		vm.CategoryAxisTitle = text
	}
}

func (vm *ViewModel) populateLegend(s *settings.Settings) {
	if s.Legend.ShowTitle {
		vm.Legend.Title = s.Legend.TitleText
	}
	for _, m := range vm.Measures {
		vm.Legend.Entries = append(vm.Legend.Entries, LegendEntry{
			Name:    m.DisplayName,
			Color:   m.Stroke,
			Measure: m,
		})
	}
}
