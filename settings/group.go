// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Property is one named property of a settings group and its
// current value.
type Property struct {
	Name  string
	Value interface{}
}

// Group returns the properties of the settings group named object in
// declaration order. It returns false if there is no such group.
// Axis groups only include the properties that apply to their
// variant.
func (s *Settings) Group(object string) ([]Property, bool) {
	var v interface{}
	var axis *AxisSettings
	switch object {
	case ObjFeatures:
		v = s.Features
	case ObjValueAxis:
		v, axis = s.ValueAxis, &s.ValueAxis
	case ObjCategoryAxis:
		v, axis = s.CategoryAxis, &s.CategoryAxis
	case ObjLegend:
		v = s.Legend
	case ObjLayout:
		v = s.Layout
	case ObjSmallMultiple:
		v = s.SmallMultiple
	case ObjHeading:
		v = s.Heading
	case ObjLines:
		v = s.Lines
	case ObjColorSelector:
		return nil, true
	default:
		return nil, false
	}

	// Encoding to a node (rather than reflecting over the struct)
	// gives us the persisted property names in field order.
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		panic(fmt.Sprintf("settings: encoding %s: %v", object, err))
	}
	var props []Property
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if axis != nil && !axis.Applies(name) {
			continue
		}
		var val interface{}
		if err := n.Content[i+1].Decode(&val); err != nil {
			panic(fmt.Sprintf("settings: decoding %s.%s: %v", object, name, err))
		}
		props = append(props, Property{name, val})
	}
	return props, true
}
