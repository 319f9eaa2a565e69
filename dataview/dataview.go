// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataview models the tabular data handed to a small
// multiples chart by its host: a table of rows plus metadata saying
// which role each column plays.
package dataview

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/smallmultiples/settings"
)

// Role is the part a column plays in the chart.
type Role string

const (
	// RoleMultiple partitions rows into multiples.
	RoleMultiple Role = "smallMultiple"
	// RoleCategory is the category (horizontal) axis.
	RoleCategory Role = "category"
	// RoleValues columns are measures plotted against the value
	// axis.
	RoleValues Role = "values"
)

// Column is the metadata of one table column.
type Column struct {
	// Name is the column's name in the table.
	Name string

	// DisplayName is shown in legends and titles.
	DisplayName string

	// QueryName identifies the column stably across updates.
	// Per-series property overrides are keyed by it.
	QueryName string

	Roles []Role

	// Format is the host's format string for values, if any.
	Format string

	// Objects are the properties persisted against this column,
	// such as a measure's line style.
	Objects settings.Objects
}

// Has reports whether c plays role r.
func (c *Column) Has(r Role) bool {
	for _, cr := range c.Roles {
		if cr == r {
			return true
		}
	}
	return false
}

// DataView is one update's data.
type DataView struct {
	Table   *table.Table
	Columns []Column

	// Objects are the chart's persisted properties.
	Objects settings.Objects
}

var (
	ErrNoTable     = errors.New("data view has no table")
	ErrMissingRole = errors.New("data view is missing a required role")
	ErrNoRows      = errors.New("data view has no rows")
)

// RoleError reports a required role with no columns.
type RoleError struct {
	Role Role
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("no column has role %q", e.Role)
}

func (e *RoleError) Is(target error) bool {
	return target == ErrMissingRole
}

// Columns returns the columns playing role r, in declaration order.
func (dv *DataView) ColumnsFor(r Role) []*Column {
	var out []*Column
	for i := range dv.Columns {
		if dv.Columns[i].Has(r) {
			out = append(out, &dv.Columns[i])
		}
	}
	return out
}

// Validate checks that dv carries the minimum data needed to draw a
// chart: one multiple column, one category column, at least one
// measure, and at least one row.
func (dv *DataView) Validate() error {
	if dv == nil || dv.Table == nil {
		return ErrNoTable
	}
	for _, r := range []Role{RoleMultiple, RoleCategory, RoleValues} {
		cols := dv.ColumnsFor(r)
		if len(cols) == 0 {
			return &RoleError{r}
		}
		for _, c := range cols {
			if dv.Table.Column(c.Name) == nil {
				return fmt.Errorf("column %q with role %q is not in the table", c.Name, r)
			}
		}
	}
	if dv.Table.Len() == 0 {
		return ErrNoRows
	}
	return nil
}

// Keys returns the values of column col formatted as strings.
func (dv *DataView) Keys(col string) []string {
	v := reflect.ValueOf(dv.Table.MustColumn(col))
	out := make([]string, v.Len())
	for i := range out {
		out[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return out
}

// Floats returns the values of column col as float64s. The column
// must be numeric.
func (dv *DataView) Floats(col string) []float64 {
	var out []float64
	slice.Convert(&out, dv.Table.MustColumn(col))
	return out
}
