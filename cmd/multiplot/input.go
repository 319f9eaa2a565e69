// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aclements/smallmultiples/dataview"
	"github.com/aclements/smallmultiples/format"
	"github.com/aclements/smallmultiples/layout"
	"github.com/aclements/smallmultiples/migrate"
	"github.com/aclements/smallmultiples/settings"
	"github.com/aclements/smallmultiples/visual"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var warn = color.New(color.FgYellow)

func addChartFlags(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		f := cmd.Flags()
		f.String("multiple", "", "`column` whose values become panels")
		f.String("category", "", "`column` along each panel's category axis")
		f.String("values", "", "shell-quoted list of measure `columns`")
		f.String("sheet", "", "worksheet to read from an Excel workbook (default first)")
		f.String("settings", "", "read chart settings from TOML or YAML `file`")
		f.String("objects", "", "read and migrate chart properties in msgpack `file`")
		f.Float64("width", 800, "viewport width in pixels")
		f.Float64("height", 600, "viewport height in pixels")
		f.String("lang", "en", "locale for number formatting")
	}
}

// chart is everything a command needs to run the chart engine.
type chart struct {
	dv            *dataview.DataView
	width, height float64
	persister     migrate.Persister
	constants     *settings.Constants
	formatter     format.Formatter
}

// loadChart reads the data and settings named by cmd's flags. If
// args names no data file, the data view only carries the settings,
// or is nil if there are none.
func loadChart(cmd *cobra.Command, args []string) (*chart, error) {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	c := &chart{constants: settings.DefaultConstants(), persister: new(migrate.MemoryStore)}
	c.width, _ = f.GetFloat64("width")
	c.height, _ = f.GetFloat64("height")
	c.constants.Debug, _ = cmd.Root().PersistentFlags().GetBool("debug")

	tag, err := language.Parse(str("lang"))
	if err != nil {
		return nil, fmt.Errorf("bad -lang: %w", err)
	}
	c.formatter = format.NewPrinter(tag)

	var objs settings.Objects
	if path := str("objects"); path != "" {
		store := &migrate.FileStore{Path: path}
		if objs, err = store.Load(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		c.persister = store
	}
	if path := str("settings"); path != "" {
		fileObjs, err := loadObjects(path)
		if err != nil {
			return nil, err
		}
		objs = merge(objs, fileObjs)
	}

	if len(args) > 0 {
		values, err := dataview.ParseValues(str("values"))
		if err != nil {
			return nil, err
		}
		m := dataview.Mapping{Multiple: str("multiple"), Category: str("category"), Values: values}
		if c.dv, err = loadData(args[0], str("sheet"), m); err != nil {
			return nil, err
		}
		c.dv.Objects = objs
	} else if objs != nil {
		c.dv = &dataview.DataView{Objects: objs}
	}
	return c, nil
}

// merge overlays the properties in b onto a copy of a.
func merge(a, b settings.Objects) settings.Objects {
	if a == nil {
		return b
	}
	out := a.Clone()
	for name, o := range b {
		if out[name] == nil {
			out[name] = settings.Object{}
		}
		for k, v := range o {
			out[name][k] = v
		}
	}
	return out
}

// loadObjects reads settings groups from a TOML or YAML file.
func loadObjects(path string) (settings.Objects, error) {
	var objs settings.Objects
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &objs); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &objs); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unknown settings format %q", path, ext)
	}
	if objs == nil {
		objs = settings.Objects{}
	}
	return objs, nil
}

// loadData reads a data view from a CSV file or an Excel workbook.
func loadData(path, sheet string, m dataview.Mapping) (*dataview.DataView, error) {
	if m.Multiple == "" || m.Category == "" || len(m.Values) == 0 {
		return nil, fmt.Errorf("-multiple, -category and -values are required")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return dataview.FromXLSX(path, sheet, m)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dv, err := dataview.FromCSV(f, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dv, nil
}

// events reports rendering failures to the command.
type events struct {
	err error
}

func (e *events) RenderingStarted(*visual.UpdateOptions)  {}
func (e *events) RenderingFinished(*visual.UpdateOptions) {}
func (e *events) RenderingFailed(_ *visual.UpdateOptions, err error) {
	e.err = err
}

// run performs one full update of c on surface s.
func (c *chart) run(s visual.Surface) (*visual.Visual, error) {
	ev := new(events)
	v := &visual.Visual{
		Constants: c.constants,
		Events:    ev,
		Surface:   s,
		Persister: c.persister,
		Measurer:  layout.DefaultMeasurer(),
		Formatter: c.formatter,
		Log:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	v.Update(&visual.UpdateOptions{Type: visual.All, Width: c.width, Height: c.height, DataView: c.dv})
	if ev.err != nil {
		return nil, ev.err
	}
	if f := v.Frame(); f != nil && (f.VM.Valid || c.dv != nil && c.dv.Table != nil) {
		warnFrame(f)
	}
	return v, nil
}

// warnFrame prints the conditions a user most likely wants to fix.
func warnFrame(f *visual.Frame) {
	switch {
	case !f.VM.Valid:
		warn.Fprintf(os.Stderr, "warning: nothing to chart: %v\n", f.VM.Err)
	case f.Layout != nil && f.Layout.Minimised:
		warn.Fprintf(os.Stderr, "warning: chart minimised: %s\n", f.Layout.Reason)
	case f.Layout != nil && f.Layout.Grid.Overflow:
		warn.Fprintf(os.Stderr, "warning: %d rows of panels overflow the viewport\n", f.Layout.Grid.Rows)
	}
	for _, note := range f.VM.Notes {
		warn.Fprintf(os.Stderr, "warning: %s\n", note)
	}
}
