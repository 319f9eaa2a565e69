// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package enumerate answers which settings properties the host
// should offer for editing given the current settings and data.
//
// Every group is described by a table of rules. A rule names some
// properties and says when they are hidden, what numeric range they
// accept, or which values they are restricted to. Enumerate evaluates
// the table afresh on each call and has no side effects.
package enumerate

import (
	"github.com/aclements/smallmultiples/format"
	"github.com/aclements/smallmultiples/settings"
	"github.com/aclements/smallmultiples/viewmodel"
)

// An Instance is one block of properties shown to the user.
type Instance struct {
	ObjectName string

	// DisplayName labels the instance. It is "" for a group's
	// single default instance.
	DisplayName string

	// Selector identifies the series the instance's properties
	// are persisted against, or "" if they apply to the whole
	// chart.
	Selector string

	// Heading marks an instance that only titles the instances
	// after it. It has no editable properties.
	Heading bool

	Properties []settings.Property

	// Ranges constrains numeric properties.
	Ranges map[string]settings.Range

	// ValidValues restricts enumerated properties.
	ValidValues map[string][]string
}

// Has returns whether inst offers property name.
func (inst *Instance) Has(name string) bool {
	_, ok := inst.Get(name)
	return ok
}

// Get returns the value of property name.
func (inst *Instance) Get(name string) (interface{}, bool) {
	for _, p := range inst.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// State is what rules are evaluated against.
type State struct {
	Settings  *settings.Settings
	VM        *viewmodel.ViewModel
	Constants *settings.Constants

	// Measure is the series being enumerated, for per-series
	// groups.
	Measure *viewmodel.Measure
}

// A Rule applies to the properties named in Props.
type Rule struct {
	Props []string

	// Hide, if non-nil, removes the properties when it returns
	// true.
	Hide func(st *State) bool

	// Range, if non-nil, selects the numeric range the
	// properties accept.
	Range func(r *settings.Ranges) settings.Range

	// Restrict, if non-nil and returning ok, pins the
	// properties to value and limits them to valid.
	Restrict func(st *State) (value string, valid []string, ok bool)
}


// labelProps are the properties controlled by an axis's label toggle.
var labelProps = []string{"labelPlacement", "fontColor", "fontSize", "fontFamily", "labelDisplayUnits", "precision"}

var gridlineProps = []string{"gridlineColor", "gridlineStrokeWidth", "gridlineStrokeLineStyle"}

var titleProps = []string{"titleStyle", "titleColor", "titleText", "titleFontSize", "titleFontFamily"}

// Rules is the rule table for each settings group.
var Rules = map[string][]Rule{
	settings.ObjValueAxis: {
		{Props: []string{"precision"}, Range: func(r *settings.Ranges) settings.Range { return r.Precision }},
		{Props: []string{"gridlineStrokeWidth"}, Range: func(r *settings.Ranges) settings.Range { return r.GridlineStrokeWidth }},
		{Props: labelProps, Hide: func(st *State) bool { return !st.Settings.ValueAxis.ShowLabels }},
		{Props: gridlineProps, Hide: func(st *State) bool { return !st.Settings.ValueAxis.Gridlines }},
		{Props: titleProps, Hide: func(st *State) bool { return !st.Settings.ValueAxis.ShowTitle }},
		{Props: []string{"titleStyle"}, Restrict: unitlessTitle},
		{Props: []string{"labelPlacement"}, Hide: noLabelPlacement},
	},
	settings.ObjCategoryAxis: {
		{Props: []string{"gridlineStrokeWidth"}, Range: func(r *settings.Ranges) settings.Range { return r.GridlineStrokeWidth }},
		{Props: []string{"axisLineStrokeWidth"}, Range: func(r *settings.Ranges) settings.Range { return r.AxisLineStrokeWidth }},
		{Props: labelProps, Hide: func(st *State) bool { return !st.Settings.CategoryAxis.ShowLabels }},
		{Props: gridlineProps, Hide: func(st *State) bool { return !st.Settings.CategoryAxis.Gridlines }},
		{Props: titleProps, Hide: func(st *State) bool { return !st.Settings.CategoryAxis.ShowTitle }},
		{Props: []string{"axisLineColor", "axisLineStrokeWidth"}, Hide: func(st *State) bool { return !st.Settings.CategoryAxis.ShowAxisLine }},
		{Props: []string{"labelPlacement"}, Hide: noLabelPlacement},
	},
	settings.ObjLines: {
		{Props: []string{"strokeWidth"}, Range: func(r *settings.Ranges) settings.Range { return r.ShapeStrokeWidth }},
		{Props: []string{"backgroundTransparency"}, Hide: func(st *State) bool { return !st.Measure.ShowArea }},
	},
	settings.ObjLegend: {
		{Props: []string{"titleText", "includeRanges"}, Hide: func(st *State) bool { return !st.Settings.Legend.ShowTitle }},
	},
	settings.ObjLayout: {
		{Props: []string{"spacingBetweenColumns", "spacingBetweenRows"}, Range: func(r *settings.Ranges) settings.Range { return r.Spacing }},
		{Props: []string{"numberOfColumns"}, Range: func(r *settings.Ranges) settings.Range { return r.NumberOfColumns }},
		{Props: []string{"multipleWidth", "multipleHeight"}, Range: func(r *settings.Ranges) settings.Range { return r.MultipleSize }},
		// These mirror the grid policies in the layout package.
		{Props: []string{"multipleWidth"}, Hide: columnPolicy},
		{Props: []string{"numberOfColumns"}, Hide: func(st *State) bool { return !columnPolicy(st) }},
		{Props: []string{"multipleHeight"}, Hide: func(st *State) bool {
			return st.Settings.Layout.VerticalGrid != settings.VerticalHeight
		}},
	},
	settings.ObjHeading: {
		{Props: []string{"fontColourAlternate"}, Hide: func(st *State) bool { return !st.Settings.SmallMultiple.ZebraStripe }},
	},
	settings.ObjSmallMultiple: {
		{Props: []string{"borderStrokeWidth"}, Range: func(r *settings.Ranges) settings.Range { return r.BorderStrokeWidth }},
		{Props: []string{"zebraStripeApply", "backgroundColorAlternate"}, Hide: func(st *State) bool { return !st.Settings.SmallMultiple.ZebraStripe }},
		{Props: []string{"borderColor", "borderStrokeWidth", "borderStyle"}, Hide: func(st *State) bool { return !st.Settings.SmallMultiple.Border }},
	},
}

func noLabelPlacement(st *State) bool {
	return !st.Settings.Features.AxisLabelPlacement
}

func columnPolicy(st *State) bool {
	return st.Settings.Layout.HorizontalGrid != settings.HorizontalWidth
}

// unitlessTitle restricts the title style to the plain title when
// the value axis has no display unit to show.
func unitlessTitle(st *State) (string, []string, bool) {
	unitless := format.DisplayUnit(st.Settings.ValueAxis.LabelDisplayUnits) == format.None
	if vm := st.VM; vm == nil || !vm.Valid || vm.ValueAxis == nil || vm.ValueAxis.Format.Unit == format.None {
		unitless = true
	}
	if !unitless {
		return "", nil, false
	}
	return settings.TitleStyleTitle, []string{settings.TitleStyleTitle}, true
}

// Enumerate returns the instances the host should show for settings
// group object. vm may be nil or invalid if no data has been mapped.
func Enumerate(object string, s *settings.Settings, vm *viewmodel.ViewModel, c *settings.Constants) []Instance {
	st := &State{Settings: s, VM: vm, Constants: c}
	switch object {
	case settings.ObjColorSelector:
		// Superseded by per-series line styles.
		return nil
	case settings.ObjFeatures:
		if !c.Debug && !s.Features.Debug {
			return nil
		}
	case settings.ObjLines:
		return enumerateLines(st)
	}
	props, ok := s.Group(object)
	if !ok {
		return nil
	}
	return []Instance{apply(Instance{ObjectName: object, Properties: props}, Rules[object], st)}
}

// enumerateLines replaces the default lines instance with a heading
// and a style instance for every measure, selected by query name.
func enumerateLines(st *State) []Instance {
	if st.VM == nil || !st.VM.Valid {
		return nil
	}
	var out []Instance
	for _, m := range st.VM.Measures {
		out = append(out, Instance{
			ObjectName:  settings.ObjLines,
			DisplayName: m.DisplayName,
			Selector:    m.QueryName,
			Heading:     true,
		})
		mst := *st
		mst.Measure = m
		inst := Instance{
			ObjectName: settings.ObjLines,
			Selector:   m.QueryName,
			Properties: []settings.Property{
				{Name: "stroke", Value: m.Stroke},
				{Name: "strokeWidth", Value: m.StrokeWidth},
				{Name: "showArea", Value: m.ShowArea},
				{Name: "backgroundTransparency", Value: m.BackgroundTransparency},
				{Name: "lineShape", Value: m.LineShape},
				{Name: "lineStyle", Value: m.LineStyle},
			},
		}
		out = append(out, apply(inst, Rules[settings.ObjLines], &mst))
	}
	return out
}

// apply evaluates rules against inst. Hidden properties are removed
// before ranges and restrictions are attached, so those only ever
// describe properties that are offered.
func apply(inst Instance, rules []Rule, st *State) Instance {
	hidden := make(map[string]bool)
	for _, r := range rules {
		if r.Hide != nil && r.Hide(st) {
			for _, p := range r.Props {
				hidden[p] = true
			}
		}
	}
	var props []settings.Property
	for _, p := range inst.Properties {
		if !hidden[p.Name] {
			props = append(props, p)
		}
	}
	inst.Properties = props

	for _, r := range rules {
		for _, name := range r.Props {
			i := index(inst.Properties, name)
			if i < 0 {
				continue
			}
			if r.Range != nil {
				if inst.Ranges == nil {
					inst.Ranges = make(map[string]settings.Range)
				}
				inst.Ranges[name] = r.Range(&st.Constants.Ranges)
			}
			if r.Restrict != nil {
				if v, valid, ok := r.Restrict(st); ok {
					inst.Properties[i].Value = v
					if inst.ValidValues == nil {
						inst.ValidValues = make(map[string][]string)
					}
					inst.ValidValues[name] = valid
				}
			}
		}
	}
	return inst
}

func index(props []settings.Property, name string) int {
	for i, p := range props {
		if p.Name == name {
			return i
		}
	}
	return -1
}
