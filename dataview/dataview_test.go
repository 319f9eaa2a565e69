// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataview

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

const salesCSV = `region,month,sales,gross margin
North,Jan,10,1
North,Feb,20,2
South,Jan,30,
South,Feb,"1,040",4
`

var salesMapping = Mapping{Multiple: "region", Category: "month", Values: []string{"sales", "gross margin"}}

func TestFromCSV(t *testing.T) {
	dv, err := FromCSV(strings.NewReader(salesCSV), salesMapping)
	if err != nil {
		t.Fatal(err)
	}
	if err := dv.Validate(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"North", "North", "South", "South"}, dv.Keys("region")); diff != "" {
		t.Errorf("region (-want +got):\n%s", diff)
	}
	sales := dv.Floats("sales")
	if diff := cmp.Diff([]float64{10, 20, 30, 1040}, sales); diff != "" {
		t.Errorf("sales (-want +got):\n%s", diff)
	}
	if gm := dv.Floats("gross margin"); !math.IsNaN(gm[2]) {
		t.Errorf("blank cell should be NaN; got %v", gm[2])
	}
	var names []string
	for _, c := range dv.ColumnsFor(RoleValues) {
		names = append(names, c.QueryName)
	}
	if diff := cmp.Diff([]string{"data.sales", "data.gross margin"}, names); diff != "" {
		t.Errorf("measure query names (-want +got):\n%s", diff)
	}
}

func TestFromCSVErrors(t *testing.T) {
	_, err := FromCSV(strings.NewReader(salesCSV), Mapping{Multiple: "country", Category: "month"})
	if err == nil {
		t.Errorf("want error for unknown column")
	}
	_, err = FromCSV(strings.NewReader("a,b,c\nx,y,zz\n"), Mapping{"a", "b", []string{"c"}})
	if err == nil {
		t.Errorf("want error for non-numeric measure")
	}
}

func TestValidate(t *testing.T) {
	full := func() *DataView {
		dv, err := FromCSV(strings.NewReader(salesCSV), salesMapping)
		if err != nil {
			t.Fatal(err)
		}
		return dv
	}

	if err := (*DataView)(nil).Validate(); err != ErrNoTable {
		t.Errorf("nil data view: got %v", err)
	}

	dv := full()
	dv.Columns = dv.Columns[1:] // drop the multiple column
	var re *RoleError
	if err := dv.Validate(); !errors.Is(err, ErrMissingRole) || !errors.As(err, &re) || re.Role != RoleMultiple {
		t.Errorf("missing multiple role: got %v", err)
	}

	empty, err := FromRecords([]string{"region", "month", "sales"}, nil, Mapping{"region", "month", []string{"sales"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := empty.Validate(); err != ErrNoRows {
		t.Errorf("no rows: got %v", err)
	}

	dv = full()
	dv.Table = new(table.Builder).Add("region", []string{"x"}).Done()
	if err := dv.Validate(); err == nil {
		t.Errorf("want error for role column absent from table")
	}
}

func TestParseValues(t *testing.T) {
	got, err := ParseValues(`sales "gross margin" 'net, total'`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"sales", "gross margin", "net, total"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ParseValues(`"unterminated`); err == nil {
		t.Errorf("want error for unterminated quote")
	}
}

func TestFromXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"region", "month", "sales"},
		{"North", "Jan", 10},
		{"South", "Jan", 30},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	dv, err := FromXLSX(path, "", Mapping{"region", "month", []string{"sales"}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{10, 30}, dv.Floats("sales")); diff != "" {
		t.Errorf("sales (-want +got):\n%s", diff)
	}
}
