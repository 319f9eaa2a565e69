// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewmodel

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/aclements/smallmultiples/dataview"
	"github.com/aclements/smallmultiples/format"
	"github.com/aclements/smallmultiples/settings"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

const salesCSV = `region,month,sales,cost
North,Jan,10,5
North,Feb,20,8
South,Feb,90,30
South,Jan,40,12
East,Mar,55,
`

func load(t *testing.T, csv string) *dataview.DataView {
	t.Helper()
	dv, err := dataview.FromCSV(strings.NewReader(csv), dataview.Mapping{
		Multiple: "region", Category: "month", Values: []string{"sales", "cost"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return dv
}

func build(t *testing.T, csv string, s *settings.Settings) *ViewModel {
	t.Helper()
	if s == nil {
		s = settings.Defaults()
	}
	return Build(load(t, csv), s, settings.DefaultConstants(), format.NewPrinter(language.English))
}

func TestBuildOrder(t *testing.T) {
	vm := build(t, salesCSV, nil)
	if !vm.Valid {
		t.Fatalf("want valid view model; got %v", vm.Err)
	}
	if diff := cmp.Diff([]string{"Jan", "Feb", "Mar"}, vm.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
	var names []string
	for _, m := range vm.Multiples {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"North", "South", "East"}, names); diff != "" {
		t.Errorf("multiples (-want +got):\n%s", diff)
	}

	// South lists Feb before Jan; values are still indexed by
	// category.
	south := vm.Multiples[1].Series[0].Values
	if south[0] != 40 || south[1] != 90 || !math.IsNaN(south[2]) {
		t.Errorf("South sales = %v, want [40 90 NaN]", south)
	}
	if east := vm.Multiples[2].Series[1].Values; !math.IsNaN(east[2]) {
		t.Errorf("East blank cost = %v, want NaN", east[2])
	}
}

func TestBuildSharedAxis(t *testing.T) {
	vm := build(t, salesCSV, nil)
	d := vm.ValueAxis
	if d.Start != 5 || d.End != 90 || d.Explicit {
		t.Errorf("value axis = [%g, %g] explicit=%v, want [5, 90] auto", d.Start, d.End, d.Explicit)
	}
	for _, m := range vm.Multiples {
		if m.Domain != d {
			t.Errorf("multiple %s has its own domain; want master", m.Name)
		}
	}
	if len(d.Ticks) == 0 || len(d.Ticks) != len(d.Labels) {
		t.Fatalf("ticks %v labels %v", d.Ticks, d.Labels)
	}
	if len(d.Ticks) > settings.DefaultConstants().MaxTicks {
		t.Errorf("%d ticks exceeds maximum", len(d.Ticks))
	}
	for _, tk := range d.Ticks {
		if tk < d.Start || tk > d.End {
			t.Errorf("tick %g outside [%g, %g]", tk, d.Start, d.End)
		}
	}
}

func TestBuildExplicitRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name       string
		start, end *float64
		want       [2]float64
		explicit   bool
		notes      int
	}{
		{"start", f(0), nil, [2]float64{0, 90}, true, 0},
		{"both", f(-10), f(200), [2]float64{-10, 200}, true, 0},
		// A zero-width explicit range falls back to the data.
		{"zero", f(0), f(0), [2]float64{5, 90}, false, 1},
		{"inverted", f(100), f(50), [2]float64{5, 90}, false, 1},
		{"infinite start", f(math.Inf(-1)), f(10), [2]float64{5, 90}, false, 1},
		{"infinite end", nil, f(math.Inf(1)), [2]float64{5, 90}, false, 1},
		{"span overflows", f(-1e308), f(1e308), [2]float64{5, 90}, false, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := settings.Defaults()
			s.ValueAxis.Start, s.ValueAxis.End = test.start, test.end
			vm := build(t, salesCSV, s)
			got := [2]float64{vm.ValueAxis.Start, vm.ValueAxis.End}
			if got != test.want || vm.ValueAxis.Explicit != test.explicit {
				t.Errorf("got %v explicit=%v, want %v explicit=%v", got, vm.ValueAxis.Explicit, test.want, test.explicit)
			}
			if len(vm.Notes) != test.notes {
				t.Errorf("got notes %q, want %d", vm.Notes, test.notes)
			}
		})
	}
}

func TestBuildExtremeData(t *testing.T) {
	const csv = `region,month,sales,cost
North,Jan,-1e308,1
North,Feb,1e308,2
South,Jan,3,4
`
	for _, independent := range []bool{false, true} {
		s := settings.Defaults()
		s.SmallMultiple.IndependentValueAxis = independent
		vm := build(t, csv, s)
		if !vm.Valid {
			t.Fatalf("independent=%v: invalid view model: %v", independent, vm.Err)
		}
		if len(vm.ValueAxis.Ticks) != 0 {
			t.Errorf("independent=%v: got ticks %v for an overflowing range", independent, vm.ValueAxis.Ticks)
		}
		if len(vm.Notes) != 1 {
			t.Errorf("independent=%v: got notes %q, want 1", independent, vm.Notes)
		}
		if south := vm.Multiples[1].Domain; independent && len(south.Ticks) == 0 {
			t.Errorf("South has a finite range but no ticks")
		}
	}
}

func TestBuildIndependentAxis(t *testing.T) {
	s := settings.Defaults()
	s.SmallMultiple.IndependentValueAxis = true
	vm := build(t, salesCSV, s)
	north := vm.Multiples[0].Domain
	if north == vm.ValueAxis {
		t.Fatal("want independent domain for North")
	}
	if north.Start != 5 || north.End != 20 {
		t.Errorf("North domain = [%g, %g], want [5, 20]", north.Start, north.End)
	}

	// An explicit range pins every panel to the master axis.
	zero := 0.0
	s.ValueAxis.Start = &zero
	vm = build(t, salesCSV, s)
	for _, m := range vm.Multiples {
		if m.Domain != vm.ValueAxis {
			t.Errorf("multiple %s not on master axis", m.Name)
		}
	}
}

func TestBuildConstantData(t *testing.T) {
	vm := build(t, "region,month,sales,cost\nA,Jan,7,7\n", nil)
	if vm.ValueAxis.Start != 0 || vm.ValueAxis.End != 7 {
		t.Errorf("got [%g, %g], want [0, 7]", vm.ValueAxis.Start, vm.ValueAxis.End)
	}
	vm = build(t, "region,month,sales,cost\nA,Jan,,\n", nil)
	if vm.ValueAxis.Start != 0 || vm.ValueAxis.End != 1 {
		t.Errorf("all blank: got [%g, %g], want [0, 1]", vm.ValueAxis.Start, vm.ValueAxis.End)
	}
}

func TestBuildInvalid(t *testing.T) {
	vm := build(t, "region,month,sales,cost\n", nil)
	if vm.Valid {
		t.Fatal("want invalid view model for empty data")
	}
	if !errors.Is(vm.Err, dataview.ErrNoRows) {
		t.Errorf("got error %v, want ErrNoRows", vm.Err)
	}
	if vm.Multiples != nil || vm.ValueAxis != nil {
		t.Errorf("invalid view model should be empty")
	}
}

func TestBuildTitles(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *settings.Settings)
		csv   string
		value string
		cat   string
	}{
		{"default", func(s *settings.Settings) {}, salesCSV, "sales, cost", "month"},
		{"text", func(s *settings.Settings) {
			s.ValueAxis.TitleText = "Revenue"
			s.CategoryAxis.TitleText = "Period"
		}, salesCSV, "Revenue", "Period"},
		{"hidden", func(s *settings.Settings) {
			s.ValueAxis.ShowTitle = false
			s.CategoryAxis.ShowTitle = false
		}, salesCSV, "", ""},
		{"unit", func(s *settings.Settings) {
			s.ValueAxis.TitleStyle = settings.TitleStyleUnit
		}, "region,month,sales,cost\nA,Jan,5000,9000\n", "Thousands", "month"},
		{"both", func(s *settings.Settings) {
			s.ValueAxis.TitleStyle = settings.TitleStyleBoth
		}, "region,month,sales,cost\nA,Jan,5000,9000\n", "sales, cost (Thousands)", "month"},
		// Without a display unit the title is shown alone.
		{"unit none", func(s *settings.Settings) {
			s.ValueAxis.TitleStyle = settings.TitleStyleUnit
		}, salesCSV, "sales, cost", "month"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := settings.Defaults()
			s.ValueAxis.ShowTitle = true
			s.CategoryAxis.ShowTitle = true
			test.setup(s)
			vm := build(t, test.csv, s)
			if vm.ValueAxisTitle != test.value {
				t.Errorf("value title = %q, want %q", vm.ValueAxisTitle, test.value)
			}
			if vm.CategoryAxisTitle != test.cat {
				t.Errorf("category title = %q, want %q", vm.CategoryAxisTitle, test.cat)
			}
		})
	}
}

func TestBuildLegend(t *testing.T) {
	s := settings.Defaults()
	s.Legend.TitleText = "Measures"
	vm := build(t, salesCSV, s)
	if vm.Legend.Title != "Measures" {
		t.Errorf("legend title = %q", vm.Legend.Title)
	}
	var got []string
	for _, e := range vm.Legend.Entries {
		got = append(got, e.Name+" "+e.Color)
	}
	if diff := cmp.Diff([]string{"sales #01B8AA", "cost #374649"}, got); diff != "" {
		t.Errorf("legend (-want +got):\n%s", diff)
	}

	s.Legend.ShowTitle = false
	if vm := build(t, salesCSV, s); vm.Legend.Title != "" {
		t.Errorf("hidden legend title = %q, want empty", vm.Legend.Title)
	}
}

func TestBuildStyleOverride(t *testing.T) {
	dv := load(t, salesCSV)
	for i := range dv.Columns {
		if dv.Columns[i].Name == "cost" {
			dv.Columns[i].Objects = settings.Objects{
				settings.ObjLines: {"stroke": "#123456", "strokeWidth": 4},
			}
		}
	}
	vm := Build(dv, settings.Defaults(), settings.DefaultConstants(), format.NewPrinter(language.English))
	cost := vm.Measures[1]
	if cost.Stroke != "#123456" || cost.StrokeWidth != 4 {
		t.Errorf("cost style = %s/%g, want #123456/4", cost.Stroke, cost.StrokeWidth)
	}
	if sales := vm.Measures[0]; sales.Stroke != "#01B8AA" || sales.StrokeWidth != 2 {
		t.Errorf("sales style = %s/%g, want defaults", sales.Stroke, sales.StrokeWidth)
	}
}

func TestTickLabels(t *testing.T) {
	p := format.NewPrinter(language.English)
	d := &Domain{Start: 0, End: 1, Format: format.Format{Unit: format.None, Precision: -1}}
	ticks, labels := Ticks(d, 5, p)
	if len(ticks) == 0 {
		t.Fatal("no ticks")
	}
	if ticks[1]-ticks[0] >= 1 {
		t.Fatalf("want fractional ticks; got %v", ticks)
	}
	for _, l := range labels {
		if !strings.Contains(l, ".") && l != "0" && l != "1" {
			t.Errorf("label %q lacks fraction digits", l)
		}
	}

	d = &Domain{Start: 0, End: 4000, Format: format.Format{Unit: format.Thousands, Precision: 0}}
	_, labels = Ticks(d, 5, p)
	if labels[len(labels)-1] != "4K" {
		t.Errorf("last label = %q, want 4K", labels[len(labels)-1])
	}
}
