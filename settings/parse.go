// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Objects is a persisted properties object: settings group name to
// group properties. It is what the host stores and hands back on
// every update.
type Objects map[string]Object

// Object is the set of persisted properties of one settings group.
type Object map[string]interface{}

// Get returns objs[object][prop].
func (objs Objects) Get(object, prop string) (interface{}, bool) {
	o, ok := objs[object]
	if !ok {
		return nil, false
	}
	v, ok := o[prop]
	return v, ok
}

// Clone returns a copy of objs that shares no maps with it.
func (objs Objects) Clone() Objects {
	if objs == nil {
		return nil
	}
	out := make(Objects, len(objs))
	for name, o := range objs {
		no := make(Object, len(o))
		for k, v := range o {
			no[k] = v
		}
		out[name] = no
	}
	return out
}

// ObjectVersion returns the schema version marker stored in objs, or
// 0 if there is none.
func (objs Objects) ObjectVersion() int {
	v, ok := objs.Get(ObjFeatures, "objectVersion")
	if !ok {
		return 0
	}
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Parse merges objs over the defaults. Properties objs does not
// mention keep their default values, and properties unknown to
// Settings (such as legacy keys awaiting migration) are ignored.
func Parse(objs Objects) (*Settings, error) {
	s := Defaults()
	if len(objs) == 0 {
		return s, nil
	}
	buf, err := yaml.Marshal(objs)
	if err != nil {
		return nil, fmt.Errorf("settings: marshaling objects: %w", err)
	}
	if err := yaml.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("settings: parsing objects: %w", err)
	}
	s.tag()
	return s, nil
}

// DecodeYAML decodes a YAML settings document over a copy of the
// defaults.
func DecodeYAML(doc []byte) (*Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(doc, s); err != nil {
		return nil, err
	}
	s.tag()
	return s, nil
}

// Overlay merges the properties in o over dst, which must be a
// pointer to one of the group structs (such as *Lines). It is used
// for per-series overrides persisted against a measure.
func Overlay(dst interface{}, o Object) error {
	if len(o) == 0 {
		return nil
	}
	buf, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, dst)
}
