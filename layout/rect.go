// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"math"
)

// A Rect is an axis-aligned rectangle in pixels. The origin is the
// top-left corner of the viewport.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.W, r.H, r.X, r.Y)
}

// Valid returns whether r has finite coordinates and a positive
// width and height.
func (r Rect) Valid() bool {
	for _, v := range []float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.W > 0 && r.H > 0
}

// Empty returns whether r has no area.
func (r Rect) Empty() bool {
	return !(r.W > 0 && r.H > 0)
}

// Right and Bottom return the far edges of r.
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CutTop splits a strip of height h off the top of r. It returns the
// strip and what remains.
func (r Rect) CutTop(h float64) (strip, rest Rect) {
	return Rect{r.X, r.Y, r.W, h}, Rect{r.X, r.Y + h, r.W, r.H - h}
}

func (r Rect) CutBottom(h float64) (strip, rest Rect) {
	return Rect{r.X, r.Bottom() - h, r.W, h}, Rect{r.X, r.Y, r.W, r.H - h}
}

func (r Rect) CutLeft(w float64) (strip, rest Rect) {
	return Rect{r.X, r.Y, w, r.H}, Rect{r.X + w, r.Y, r.W - w, r.H}
}

func (r Rect) CutRight(w float64) (strip, rest Rect) {
	return Rect{r.Right() - w, r.Y, w, r.H}, Rect{r.X, r.Y, r.W - w, r.H}
}

// Cut splits a strip of size n off side pos of r, where pos is one
// of "top", "bottom", "left", or "right".
func (r Rect) Cut(pos string, n float64) (strip, rest Rect) {
	switch pos {
	case "bottom":
		return r.CutBottom(n)
	case "left":
		return r.CutLeft(n)
	case "right":
		return r.CutRight(n)
	}
	return r.CutTop(n)
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{r.X + d, r.Y + d, r.W - 2*d, r.H - 2*d}
}
