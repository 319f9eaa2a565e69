// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// A Measurer reports the pixel extent of text.
type Measurer interface {
	// Measure returns the width and line height of s set in a
	// font of pixel size px.
	Measure(s string, px float64) (w, h float64)
}

// FaceMeasurer measures text using the advances of a font.Face
// designed at pixel size Size, scaled linearly to the requested size.
type FaceMeasurer struct {
	Face font.Face
	Size float64
}

// DefaultMeasurer measures text with the fixed-width 7x13 basic font.
func DefaultMeasurer() FaceMeasurer {
	return FaceMeasurer{basicfont.Face7x13, 13}
}

func (m FaceMeasurer) Measure(s string, px float64) (w, h float64) {
	adv := font.MeasureString(m.Face, s)
	// 1.25 em is a reasonable leading for UI text.
	return float64(adv.Ceil()) * px / m.Size, 1.25 * px
}
