// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.ValueAxis.Axis != ValueAxisKind || s.CategoryAxis.Axis != CategoryAxisKind {
		t.Fatalf("axis variants not tagged: %v %v", s.ValueAxis.Axis, s.CategoryAxis.Axis)
	}
	if s.Layout.HorizontalGrid != HorizontalColumn || s.Layout.VerticalGrid != VerticalFit {
		t.Errorf("want column/fit grid policy; got %s/%s", s.Layout.HorizontalGrid, s.Layout.VerticalGrid)
	}
	if s.ValueAxis.Start != nil || s.ValueAxis.End != nil {
		t.Errorf("default value axis range should be automatic")
	}

	// Defaults must hand out independent copies.
	s.Layout.NumberOfColumns = 99
	if Defaults().Layout.NumberOfColumns == 99 {
		t.Errorf("Defaults shares state between calls")
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(Objects{
		"layout": {
			"numberOfColumns":       float64(3),
			"spacingBetweenColumns": 8,
		},
		"valueAxis": {
			"start": 0,
			"end":   100.5,
		},
		// Legacy v1 key; ignored until migrated.
		"smallMultiple": {
			"maximumMultiplesPerRow": 7,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout.NumberOfColumns != 3 {
		t.Errorf("numberOfColumns: want 3; got %d", s.Layout.NumberOfColumns)
	}
	if s.Layout.SpacingBetweenColumns != 8 {
		t.Errorf("spacingBetweenColumns: want 8; got %g", s.Layout.SpacingBetweenColumns)
	}
	if s.Layout.SpacingBetweenRows != Defaults().Layout.SpacingBetweenRows {
		t.Errorf("spacingBetweenRows should keep its default; got %g", s.Layout.SpacingBetweenRows)
	}
	if s.ValueAxis.Start == nil || *s.ValueAxis.Start != 0 || s.ValueAxis.End == nil || *s.ValueAxis.End != 100.5 {
		t.Errorf("value axis range not parsed: %v %v", s.ValueAxis.Start, s.ValueAxis.End)
	}
	if !s.ValueAxis.ShowLabels {
		t.Errorf("valueAxis.showLabels lost its default")
	}
	if s.CategoryAxis.Axis != CategoryAxisKind {
		t.Errorf("category axis lost its variant tag")
	}
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Defaults(), s); diff != "" {
		t.Errorf("Parse(nil) differs from defaults (-want +got):\n%s", diff)
	}
}

func TestParseBadType(t *testing.T) {
	_, err := Parse(Objects{"layout": {"numberOfColumns": "many"}})
	if err == nil {
		t.Fatalf("want error for non-numeric numberOfColumns")
	}
}

func TestDecodeTOML(t *testing.T) {
	s, err := DecodeTOML(`
[layout]
horizontalGrid = "width"
multipleWidth = 200.0
`)
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout.HorizontalGrid != HorizontalWidth || s.Layout.MultipleWidth != 200 {
		t.Errorf("got %+v", s.Layout)
	}
	if _, err := DecodeTOML("[layout]\nbogus = 1\n"); err == nil {
		t.Errorf("want error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	c := DefaultConstants()
	s := Defaults()
	s.Layout.NumberOfColumns = 0
	s.Layout.SpacingBetweenRows = -4
	s.Layout.HorizontalGrid = "diagonal"
	s.Legend.Position = "middle"
	notes := s.Validate(c)

	if s.Layout.NumberOfColumns != 1 {
		t.Errorf("numberOfColumns: want 1; got %d", s.Layout.NumberOfColumns)
	}
	if s.Layout.SpacingBetweenRows != 0 {
		t.Errorf("spacingBetweenRows: want 0; got %g", s.Layout.SpacingBetweenRows)
	}
	if s.Layout.HorizontalGrid != HorizontalColumn {
		t.Errorf("horizontalGrid: want default; got %q", s.Layout.HorizontalGrid)
	}
	if s.Legend.Position != PositionTop {
		t.Errorf("legend.position: want default; got %q", s.Legend.Position)
	}
	if len(notes) != 4 {
		t.Errorf("want 4 notes; got %d:\n%s", len(notes), strings.Join(notes, "\n"))
	}

	if notes := Defaults().Validate(c); len(notes) != 0 {
		t.Errorf("defaults should validate cleanly; got %v", notes)
	}
}

func TestValidateAxisBounds(t *testing.T) {
	c := DefaultConstants()
	start, end := math.Inf(-1), 10.0
	s := Defaults()
	s.ValueAxis.Start, s.ValueAxis.End = &start, &end
	notes := s.Validate(c)
	if s.ValueAxis.Start != nil {
		t.Errorf("valueAxis.start: want nil; got %g", *s.ValueAxis.Start)
	}
	if s.ValueAxis.End == nil || *s.ValueAxis.End != 10 {
		t.Errorf("valueAxis.end: want 10; got %v", s.ValueAxis.End)
	}
	if len(notes) != 1 {
		t.Errorf("want 1 note; got %v", notes)
	}

	nan := math.NaN()
	s = Defaults()
	s.ValueAxis.End = &nan
	s.Validate(c)
	if s.ValueAxis.End != nil {
		t.Errorf("NaN valueAxis.end survived validation")
	}
}

func TestGroup(t *testing.T) {
	s := Defaults()
	props, ok := s.Group(ObjLayout)
	if !ok {
		t.Fatalf("layout group not found")
	}
	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	want := []string{"horizontalGrid", "numberOfColumns", "multipleWidth", "verticalGrid", "multipleHeight", "spacingBetweenColumns", "spacingBetweenRows"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("layout properties (-want +got):\n%s", diff)
	}

	has := func(props []Property, name string) bool {
		for _, p := range props {
			if p.Name == name {
				return true
			}
		}
		return false
	}
	va, _ := s.Group(ObjValueAxis)
	ca, _ := s.Group(ObjCategoryAxis)
	if !has(va, "precision") || has(ca, "precision") {
		t.Errorf("precision should only be a value axis property")
	}
	if has(va, "showAxisLine") || !has(ca, "showAxisLine") {
		t.Errorf("showAxisLine should only be a category axis property")
	}
	if _, ok := s.Group("nonsense"); ok {
		t.Errorf("unknown group reported as found")
	}
}

func TestObjectVersion(t *testing.T) {
	for _, test := range []struct {
		objs Objects
		want int
	}{
		{nil, 0},
		{Objects{"features": {}}, 0},
		{Objects{"features": {"objectVersion": 2}}, 2},
		{Objects{"features": {"objectVersion": float64(1)}}, 1},
		{Objects{"features": {"objectVersion": int8(2)}}, 2},
		{Objects{"features": {"objectVersion": "2"}}, 0},
	} {
		if got := test.objs.ObjectVersion(); got != test.want {
			t.Errorf("%v.ObjectVersion() = %d; want %d", test.objs, got, test.want)
		}
	}
}

func TestOverlay(t *testing.T) {
	l := Defaults().Lines
	if err := Overlay(&l, Object{"stroke": "#FF0000", "showArea": false}); err != nil {
		t.Fatal(err)
	}
	if l.Stroke != "#FF0000" || l.ShowArea {
		t.Errorf("overrides not applied: %+v", l)
	}
	if l.StrokeWidth != Defaults().Lines.StrokeWidth {
		t.Errorf("strokeWidth lost its default: %g", l.StrokeWidth)
	}
}
