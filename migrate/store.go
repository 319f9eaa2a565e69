// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/aclements/smallmultiples/settings"
	"github.com/vmihailenco/msgpack/v5"
)

// Apply applies c to objs and returns the result. objs may be nil.
func (c Changes) Apply(objs settings.Objects) settings.Objects {
	if objs == nil {
		objs = settings.Objects{}
	}
	for _, r := range c.Remove {
		if o := objs[r.Object]; o != nil {
			delete(o, r.Property)
			if len(o) == 0 {
				delete(objs, r.Object)
			}
		}
	}
	for name, o := range c.Replace {
		if objs[name] == nil {
			objs[name] = settings.Object{}
		}
		for k, v := range o {
			objs[name][k] = v
		}
	}
	return objs
}

// MemoryStore is a Persister that keeps properties in memory.
type MemoryStore struct {
	Objects settings.Objects

	// Calls counts calls to Persist.
	Calls int
}

func (m *MemoryStore) Persist(c Changes) error {
	m.Calls++
	m.Objects = c.Apply(m.Objects)
	return nil
}

// FileStore is a Persister that keeps properties in a msgpack file.
type FileStore struct {
	Path string

	mu sync.Mutex
}

// Load reads the properties stored in s. A missing file holds no
// properties and is not an error.
func (s *FileStore) Load() (settings.Objects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (settings.Objects, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var objs settings.Objects
	if err := msgpack.NewDecoder(f).Decode(&objs); err != nil {
		return nil, err
	}
	return objs, nil
}

// Save replaces the properties stored in s with objs.
func (s *FileStore) Save(objs settings.Objects) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(objs)
}

func (s *FileStore) save(objs settings.Objects) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(objs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Replace atomically so a reader never sees a partial file.
	return os.Rename(f.Name(), s.Path)
}

func (s *FileStore) Persist(c Changes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objs, err := s.load()
	if err != nil {
		return err
	}
	return s.save(c.Apply(objs))
}
