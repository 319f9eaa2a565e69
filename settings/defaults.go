// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML string

var (
	defaultsOnce sync.Once
	defaults     *Settings
)

// Defaults returns a fresh copy of the default settings.
func Defaults() *Settings {
	defaultsOnce.Do(func() {
		s, err := decodeTOML(defaultsTOML, &Settings{})
		if err != nil {
			// defaults.toml is compiled in, so this is a
			// programming error.
			panic(fmt.Sprintf("settings: bad defaults.toml: %v", err))
		}
		defaults = s
	})
	return defaults.Clone()
}

// DecodeTOML decodes a TOML settings document over a copy of the
// defaults. Groups and properties absent from doc keep their default
// values.
func DecodeTOML(doc string) (*Settings, error) {
	return decodeTOML(doc, Defaults())
}

func decodeTOML(doc string, s *Settings) (*Settings, error) {
	md, err := toml.Decode(doc, s)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("unknown settings %v", undec)
	}
	s.tag()
	return s, nil
}

// tag stamps the axis variants. They are not persisted.
func (s *Settings) tag() {
	s.ValueAxis.Axis = ValueAxisKind
	s.CategoryAxis.Axis = CategoryAxisKind
}
