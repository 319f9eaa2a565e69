// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package migrate moves persisted settings from older schema versions
// into their current locations.
//
// Version 1 of the settings schema kept most small multiple options in
// a single "smallMultiple" group. Version 2 moved them into "layout"
// and "heading". Migration copies each legacy property to its new
// location and removes the legacy key, so that "reset to default" in
// the property pane does not fall back to a pre-migration value. The
// schema version marker (features.objectVersion) is stamped at the
// end so that migration runs at most once.
package migrate

import (
	"fmt"

	"github.com/aclements/smallmultiples/settings"
)

// Ref names a single persisted property.
type Ref struct {
	Object, Property string
}

func (r Ref) String() string {
	return r.Object + "." + r.Property
}

// Rule moves the property From to To.
type Rule struct {
	From, To Ref
}

// Table is an ordered set of migration rules.
type Table []Rule

// V1ToV2 migrates version 1 settings to version 2.
var V1ToV2 = Table{
	{Ref{"smallMultiple", "showMultipleLabel"}, Ref{"heading", "show"}},
	{Ref{"smallMultiple", "labelPosition"}, Ref{"heading", "position"}},
	{Ref{"smallMultiple", "labelAlignment"}, Ref{"heading", "alignment"}},
	{Ref{"smallMultiple", "fontSize"}, Ref{"heading", "fontSize"}},
	{Ref{"smallMultiple", "fontFamily"}, Ref{"heading", "fontFamily"}},
	{Ref{"smallMultiple", "fontColor"}, Ref{"heading", "fontColor"}},
	{Ref{"smallMultiple", "fontColorAlternate"}, Ref{"heading", "fontColourAlternate"}},
	{Ref{"smallMultiple", "maximumMultiplesPerRow"}, Ref{"layout", "numberOfColumns"}},
	{Ref{"smallMultiple", "spacingBetweenColumns"}, Ref{"layout", "spacingBetweenColumns"}},
	{Ref{"smallMultiple", "spacingBetweenRows"}, Ref{"layout", "spacingBetweenRows"}},
}

// Changes is a set of property edits to persist. Replace holds the
// new values of properties; Remove names properties to delete.
type Changes struct {
	Replace settings.Objects
	Remove  []Ref
}

// A Persister writes property changes back to the host's settings
// store.
type Persister interface {
	Persist(c Changes) error
}

// Needed reports whether objs must be migrated to reach target: its
// version marker is absent or older than target.
func Needed(objs settings.Objects, target int) bool {
	return objs.ObjectVersion() < target
}

// Migrate applies table to objs and stamps the version marker with
// target. It returns the migrated properties and whether anything was
// done. objs is not modified.
//
// If objs is nil there is nothing to migrate and Migrate returns nil,
// false. If the marker in objs is already at target, objs is returned
// unchanged and p is not called. Otherwise the changes are persisted
// through p before returning.
func Migrate(objs settings.Objects, table Table, target int, p Persister) (settings.Objects, bool, error) {
	if objs == nil {
		return nil, false, nil
	}
	if !Needed(objs, target) {
		return objs, false, nil
	}

	out := objs.Clone()
	changes := Changes{Replace: settings.Objects{}}
	set := func(obj, prop string, v interface{}) {
		if out[obj] == nil {
			out[obj] = settings.Object{}
		}
		out[obj][prop] = v
		if changes.Replace[obj] == nil {
			changes.Replace[obj] = settings.Object{}
		}
		changes.Replace[obj][prop] = v
	}
	for _, rule := range table {
		v, ok := out.Get(rule.From.Object, rule.From.Property)
		if !ok {
			continue
		}
		set(rule.To.Object, rule.To.Property, v)
		delete(out[rule.From.Object], rule.From.Property)
		if len(out[rule.From.Object]) == 0 {
			delete(out, rule.From.Object)
		}
		changes.Remove = append(changes.Remove, rule.From)
	}
	set(settings.ObjFeatures, "objectVersion", target)

	if p != nil {
		if err := p.Persist(changes); err != nil {
			return nil, false, fmt.Errorf("persisting migrated properties: %w", err)
		}
	}
	return out, true, nil
}
