// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataview

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/kballard/go-shellquote"
	"github.com/xuri/excelize/v2"
)

// Mapping binds header names in a flat file to chart roles.
type Mapping struct {
	Multiple string
	Category string
	Values   []string
}

// ParseValues splits a shell-quoted list of measure column names,
// such as `sales "gross margin"`.
func ParseValues(s string) ([]string, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parsing value columns %q: %w", s, err)
	}
	return words, nil
}

// FromRecords builds a DataView from a header row and data records.
// Measure cells are parsed as numbers; blank cells become NaN.
func FromRecords(header []string, records [][]string, m Mapping) (*DataView, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	find := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("no column %q in header %q", name, header)
		}
		return i, nil
	}

	cell := func(rec []string, i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	keyCol := func(name string) ([]string, error) {
		i, err := find(name)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(records))
		for r, rec := range records {
			out[r] = cell(rec, i)
		}
		return out, nil
	}

	dv := &DataView{}
	b := new(table.Builder)
	for _, k := range []struct {
		name string
		role Role
	}{{m.Multiple, RoleMultiple}, {m.Category, RoleCategory}} {
		col, err := keyCol(k.name)
		if err != nil {
			return nil, err
		}
		b.Add(k.name, col)
		dv.Columns = append(dv.Columns, Column{
			Name:        k.name,
			DisplayName: k.name,
			QueryName:   "data." + k.name,
			Roles:       []Role{k.role},
		})
	}
	for _, name := range m.Values {
		i, err := find(name)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(records))
		for r, rec := range records {
			s := strings.ReplaceAll(cell(rec, i), ",", "")
			if s == "" {
				vals[r] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", r+1, name, err)
			}
			vals[r] = v
		}
		b.Add(name, vals)
		dv.Columns = append(dv.Columns, Column{
			Name:        name,
			DisplayName: name,
			QueryName:   "data." + name,
			Roles:       []Role{RoleValues},
		})
	}
	dv.Table = b.Done()
	return dv, nil
}

// FromCSV reads a DataView from CSV data with a header row.
func FromCSV(r io.Reader, m Mapping) (*DataView, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	return FromRecords(records[0], records[1:], m)
}

// FromXLSX reads a DataView from a worksheet of an Excel workbook.
// The first row of the sheet is the header. If sheet is "", the first
// sheet is used.
func FromXLSX(path, sheet string, m Mapping) (*DataView, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q has no header row", path, sheet)
	}
	return FromRecords(rows[0], rows[1:], m)
}
