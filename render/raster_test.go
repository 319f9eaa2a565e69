// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/aclements/smallmultiples/settings"
)

func TestRaster(t *testing.T) {
	s := settings.Defaults()
	s.Layout.NumberOfColumns = 2
	f := frame(t, s, 400, 300)
	img, err := Raster(f)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 400, 300); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}

	// The first panel's plot must hold some ink.
	p := f.Layout.Panels[0].Plot
	r := image.Rect(int(p.X), int(p.Y), int(p.Right()), int(p.Bottom()))
	ink := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R != 0xff || c.G != 0xff || c.B != 0xff {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Errorf("no series drawn in %v", p)
	}
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, frame(t, settings.Defaults(), 320, 240)); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 320 {
		t.Errorf("width = %d, want 320", got)
	}

	if err := PNG(new(bytes.Buffer), frame(t, settings.Defaults(), 50, 50)); !errors.Is(err, ErrNoChart) {
		t.Errorf("minimised: got %v, want ErrNoChart", err)
	}
}

func TestPNGSurface(t *testing.T) {
	s := new(PNGSurface)
	if err := s.Draw(frame(t, settings.Defaults(), 320, 240)); err != nil {
		t.Fatal(err)
	}
	if s.Image == nil {
		t.Fatal("no image after Draw")
	}
	s.Clear()
	if s.Image != nil {
		t.Errorf("Clear kept the image")
	}
}
