// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visual drives a small multiples chart through its host's
// update cycle: it parses and migrates settings, maps data to a view
// model, lays the chart out, and hands the result to a Surface.
//
// A Visual is not safe for concurrent use. The host must not issue
// overlapping updates.
package visual

import (
	"fmt"
	"log/slog"

	"github.com/aclements/smallmultiples/dataview"
	"github.com/aclements/smallmultiples/enumerate"
	"github.com/aclements/smallmultiples/format"
	"github.com/aclements/smallmultiples/layout"
	"github.com/aclements/smallmultiples/migrate"
	"github.com/aclements/smallmultiples/settings"
	"github.com/aclements/smallmultiples/viewmodel"
)

// UpdateType says what changed since the last update.
type UpdateType int

const (
	Data UpdateType = 1 << iota
	Resize
	ViewMode
	Style
	All = Data | Resize | ViewMode | Style
)

func (t UpdateType) String() string {
	switch t {
	case Data:
		return "data"
	case Resize:
		return "resize"
	case ViewMode:
		return "viewMode"
	case Style:
		return "style"
	case All:
		return "all"
	}
	return fmt.Sprintf("UpdateType(%d)", int(t))
}

// UpdateOptions is the input to one update.
type UpdateOptions struct {
	Type UpdateType

	// Width and Height are the viewport size in pixels.
	Width, Height float64

	// DataView carries the data and the persisted settings. It
	// may be nil before the user has bound any fields.
	DataView *dataview.DataView
}

// EventService receives rendering lifecycle signals.
type EventService interface {
	RenderingStarted(opts *UpdateOptions)
	RenderingFinished(opts *UpdateOptions)
	RenderingFailed(opts *UpdateOptions, err error)
}

// A Frame is everything a Surface needs to paint one update.
type Frame struct {
	Settings *settings.Settings
	VM       *viewmodel.ViewModel

	// Layout is nil on the landing page.
	Layout *layout.Result
}

// Surface paints frames. Each update clears the surface before
// drawing exactly one of the landing page, the minimised chart, or
// the full chart.
type Surface interface {
	Clear()

	// DrawLanding shows the page displayed when there is not
	// enough data for a chart.
	DrawLanding(f *Frame)

	// DrawMinimised shows a compact placeholder and, if the
	// layout placed one, the legend.
	DrawMinimised(f *Frame)

	Draw(f *Frame) error
}

// RenderError is a failed update.
type RenderError struct {
	// Stage is the step of the update that failed.
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering failed in %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Visual is a small multiples chart bound to a host.
type Visual struct {
	Constants *settings.Constants
	Events    EventService
	Surface   Surface
	Persister migrate.Persister
	Measurer  layout.Measurer
	Formatter format.Formatter

	// Log receives failures, and debug output when the
	// constants or the settings enable debugging. If nil,
	// nothing is logged.
	Log *slog.Logger

	settings *settings.Settings
	vm       *viewmodel.ViewModel
	frame    *Frame
}

func (v *Visual) debug() bool {
	return v.Constants.Debug || v.settings != nil && v.settings.Features.Debug
}

func (v *Visual) trace(msg string, args ...any) {
	if v.Log == nil || !v.debug() {
		return
	}
	v.Log.Info(msg, args...)
}

// Settings returns the settings of the last update, or the defaults
// if there has been none.
func (v *Visual) Settings() *settings.Settings {
	if v.settings == nil {
		return settings.Defaults()
	}
	return v.settings
}

// ViewModel returns the view model of the last update that mapped
// data, or nil.
func (v *Visual) ViewModel() *viewmodel.ViewModel {
	return v.vm
}

// Frame returns the last frame drawn, or nil.
func (v *Visual) Frame() *Frame {
	return v.frame
}

// Update runs one update cycle. Failures are reported through
// RenderingFailed, in which case the surface keeps showing the last
// frame that was drawn.
func (v *Visual) Update(opts *UpdateOptions) {
	v.Events.RenderingStarted(opts)
	defer func() {
		if r := recover(); r != nil {
			v.fail(opts, &RenderError{"update", fmt.Errorf("panic: %v", r)})
		}
	}()
	if err := v.update(opts); err != nil {
		v.fail(opts, err)
		return
	}
	v.Events.RenderingFinished(opts)
}

func (v *Visual) fail(opts *UpdateOptions, err error) {
	if v.Log != nil {
		v.Log.Error("rendering failed", "err", err)
	}
	v.Events.RenderingFailed(opts, err)
}

func (v *Visual) update(opts *UpdateOptions) error {
	s, notes, err := v.parseSettings(opts.DataView)
	if err != nil {
		return err
	}
	v.settings = s
	v.trace("update", "type", opts.Type, "width", opts.Width, "height", opts.Height)
	for _, note := range notes {
		v.trace("settings", "note", note)
	}

	if opts.Type&Data != 0 || v.vm == nil {
		v.trace("mapping data view")
		v.vm = viewmodel.Build(opts.DataView, s, v.Constants, v.Formatter)
		for _, note := range v.vm.Notes {
			v.trace("view model", "note", note)
		}
	} else {
		v.trace("reusing view model")
	}
	vm := v.vm

	if !vm.Valid {
		v.trace("landing page", "reason", vm.Err)
		f := &Frame{Settings: s, VM: vm}
		v.Surface.Clear()
		v.Surface.DrawLanding(f)
		v.frame = f
		return nil
	}

	lay := layout.Resolve(vm, s, v.Constants, v.Measurer, opts.Width, opts.Height)
	f := &Frame{Settings: s, VM: vm, Layout: lay}
	if lay.Minimised {
		v.trace("minimised", "reason", lay.Reason)
		v.Surface.Clear()
		v.Surface.DrawMinimised(f)
		v.frame = f
		return nil
	}
	if lay.Grid.Overflow {
		v.trace("grid overflows chart area", "px", lay.Grid.Bounds.Bottom()-lay.ChartArea.Bottom())
	}

	v.Surface.Clear()
	if err := v.Surface.Draw(f); err != nil {
		return &RenderError{"draw", err}
	}
	v.frame = f
	return nil
}

// parseSettings migrates the persisted settings if they predate the
// current schema and merges them over the defaults. It returns notes
// on anything it had to correct.
func (v *Visual) parseSettings(dv *dataview.DataView) (*settings.Settings, []string, error) {
	var objs settings.Objects
	if dv != nil {
		objs = dv.Objects
	}
	// Absent objects mean nothing was ever persisted, so there is
	// nothing to migrate.
	var notes []string
	if objs != nil {
		var migrated bool
		var err error
		objs, migrated, err = migrate.Migrate(objs, migrate.V1ToV2, v.Constants.TargetObjectVersion, v.Persister)
		if err != nil {
			return nil, nil, &RenderError{"migrate", err}
		}
		if migrated {
			notes = append(notes, fmt.Sprintf("migrated properties to version %d", v.Constants.TargetObjectVersion))
		}
	}
	s, err := settings.Parse(objs)
	if err != nil {
		return nil, nil, &RenderError{"settings", err}
	}
	notes = append(notes, s.Validate(v.Constants)...)
	return s, notes, nil
}

// Enumerate returns the property instances the host should offer for
// settings group object.
func (v *Visual) Enumerate(object string) []enumerate.Instance {
	return enumerate.Enumerate(object, v.Settings(), v.vm, v.Constants)
}

// Discard is an EventService that ignores every signal.
var Discard EventService = discard{}

type discard struct{}

func (discard) RenderingStarted(*UpdateOptions)       {}
func (discard) RenderingFinished(*UpdateOptions)      {}
func (discard) RenderingFailed(*UpdateOptions, error) {}
