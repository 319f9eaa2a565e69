// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aclements/smallmultiples/dataview"
	"github.com/aclements/smallmultiples/enumerate"
	"github.com/aclements/smallmultiples/format"
	"github.com/aclements/smallmultiples/layout"
	"github.com/aclements/smallmultiples/migrate"
	"github.com/aclements/smallmultiples/render"
	"github.com/aclements/smallmultiples/settings"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadObjects(t *testing.T) {
	files := map[string]string{
		"chart.toml": "[layout]\nnumberOfColumns = 3\n\n[legend]\nposition = \"bottom\"\n",
		"chart.yaml": "layout:\n  numberOfColumns: 3\nlegend:\n  position: bottom\n",
	}
	for name, data := range files {
		objs, err := loadObjects(writeFile(t, name, data))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s, err := settings.Parse(objs)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Layout.NumberOfColumns != 3 || s.Legend.Position != "bottom" {
			t.Errorf("%s: got columns %d, legend %q; want 3, bottom", name, s.Layout.NumberOfColumns, s.Legend.Position)
		}
	}

	if _, err := loadObjects(writeFile(t, "chart.json", "{}")); err == nil {
		t.Errorf("want error for unknown settings format")
	}
}

func TestMerge(t *testing.T) {
	a := settings.Objects{"layout": {"numberOfColumns": 2, "spacingBetweenRows": 4}}
	b := settings.Objects{"layout": {"numberOfColumns": 3}, "legend": {"show": false}}
	got := merge(a, b)
	want := settings.Objects{
		"layout": {"numberOfColumns": 3, "spacingBetweenRows": 4},
		"legend": {"show": false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge (-want +got):\n%s", diff)
	}
	if a["layout"]["numberOfColumns"] != 2 {
		t.Errorf("merge modified its input")
	}
}

const salesCSV = `region,month,sales
North,Jan,10
North,Feb,20
South,Jan,30
South,Feb,40
`

func TestLoadData(t *testing.T) {
	path := writeFile(t, "sales.csv", salesCSV)
	m := dataview.Mapping{Multiple: "region", Category: "month", Values: []string{"sales"}}
	dv, err := loadData(path, "", m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{10, 20, 30, 40}, dv.Floats("sales")); diff != "" {
		t.Errorf("sales (-want +got):\n%s", diff)
	}

	if _, err := loadData(path, "", dataview.Mapping{Multiple: "region"}); err == nil {
		t.Errorf("want error for incomplete mapping")
	}
}

func testChart(t *testing.T, objs settings.Objects) *chart {
	t.Helper()
	dv, err := dataview.FromCSV(strings.NewReader(salesCSV),
		dataview.Mapping{Multiple: "region", Category: "month", Values: []string{"sales"}})
	if err != nil {
		t.Fatal(err)
	}
	dv.Objects = objs
	return &chart{
		dv:        dv,
		width:     400,
		height:    300,
		persister: new(migrate.MemoryStore),
		constants: settings.DefaultConstants(),
		formatter: format.NewPrinter(language.English),
	}
}

func TestRunLayout(t *testing.T) {
	c := testChart(t, settings.Objects{"layout": {"numberOfColumns": 2}})
	v, err := c.run(new(render.Recorder))
	if err != nil {
		t.Fatal(err)
	}
	f := v.Frame()
	if f == nil || f.Layout == nil {
		t.Fatal("no layout")
	}
	var buf bytes.Buffer
	if err := printLayout(&buf, f.Layout); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"viewport", "grid", "North", "South"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintMinimised(t *testing.T) {
	res := &layout.Result{}
	res.Minimised = true
	res.Reason = "viewport too small"
	var buf bytes.Buffer
	if err := printLayout(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "viewport too small") {
		t.Errorf("want reason in output; got:\n%s", buf.String())
	}
}

func TestInstanceNode(t *testing.T) {
	inst := enumerate.Instance{
		ObjectName: "layout",
		Properties: []settings.Property{
			{Name: "horizontalGrid", Value: "column"},
			{Name: "numberOfColumns", Value: 2},
		},
		Ranges: map[string]settings.Range{"numberOfColumns": {Min: 1, Max: 50}},
	}
	out, err := yaml.Marshal(instanceNode(inst))
	if err != nil {
		t.Fatal(err)
	}
	want := `object: layout
properties:
    horizontalGrid: column
    numberOfColumns: 2
ranges:
    numberOfColumns:
        - 1
        - 50
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("instance YAML (-want +got):\n%s", diff)
	}
}

func TestMigrateStores(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.msgpack")
	newPath := filepath.Join(dir, "new.msgpack")
	old := &migrate.FileStore{Path: oldPath}
	if err := old.Save(settings.Objects{"smallMultiple": {"maximumMultiplesPerRow": 3}}); err != nil {
		t.Fatal(err)
	}
	cur := &migrate.FileStore{Path: newPath}
	if err := cur.Save(settings.Objects{"features": {"objectVersion": 2}}); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.msgpack")
	paths := []string{oldPath, newPath, missing}

	// Checking must not write.
	res, err := migrateStores(context.Background(), paths, 2, true, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res[0].Migrated || res[1].Migrated || res[2].Err == nil {
		t.Errorf("check results: %+v", res)
	}
	objs, err := old.Load()
	if err != nil {
		t.Fatal(err)
	}
	if migrate.Needed(objs, 2) == false {
		t.Errorf("check rewrote %s", oldPath)
	}

	res, err = migrateStores(context.Background(), paths, 2, false, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res[0].Migrated || res[0].Err != nil || res[1].Migrated {
		t.Errorf("migrate results: %+v", res)
	}
	objs, err = old.Load()
	if err != nil {
		t.Fatal(err)
	}
	s, err := settings.Parse(objs)
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout.NumberOfColumns != 3 {
		t.Errorf("migrated numberOfColumns = %d, want 3", s.Layout.NumberOfColumns)
	}
	if _, ok := objs.Get("smallMultiple", "maximumMultiplesPerRow"); ok {
		t.Errorf("legacy property survived migration")
	}
}

func TestETA(t *testing.T) {
	t0 := mustTime(t, "2026-01-02T15:04:00Z")
	now := mustTime(t, "2026-01-02T15:04:10Z")
	end := eta(t0, now, 0.25)
	if got := formatETA(end, now); got != "30s" {
		t.Errorf("formatETA = %q, want 30s", got)
	}
	if got := formatETA(eta(t0, now, 0), now); got != "unknown" {
		t.Errorf("formatETA with no progress = %q, want unknown", got)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return tm
}
