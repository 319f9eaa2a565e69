// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/smallmultiples/layout"
	"github.com/aclements/smallmultiples/viewmodel"
	"github.com/aclements/smallmultiples/visual"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Supersample is the factor panels and series are drawn at before
// being scaled down to the viewport.
const Supersample = 2

// Raster draws the chart in f into an image the size of the laid-out
// chart. Geometry is drawn supersampled and scaled down; text is
// drawn at the final size.
func Raster(f *visual.Frame) (*image.RGBA, error) {
	vm, lay := f.VM, f.Layout
	if vm == nil || !vm.Valid || lay == nil || lay.Minimised {
		return nil, ErrNoChart
	}
	s := f.Settings
	w, h := int(math.Ceil(lay.Viewport.W)), int(math.Ceil(lay.Height()))

	big := image.NewRGBA(image.Rect(0, 0, w*Supersample, h*Supersample))
	draw.Draw(big, big.Bounds(), image.White, image.Point{}, draw.Src)
	c := &canvas{img: big, scale: Supersample}
	for i := range lay.Panels {
		p := &lay.Panels[i]
		bg := s.SmallMultiple.BackgroundColor
		if p.Alternate {
			bg = s.SmallMultiple.BackgroundColorAlternate
		}
		if bg != "" {
			c.fill(p.Rect, parseColor(bg))
		}
		if s.SmallMultiple.Border {
			c.frame(p.Rect, parseColor(s.SmallMultiple.BorderColor), s.SmallMultiple.BorderStrokeWidth)
		}
		for _, series := range p.Multiple.Series {
			c.series(p.Plot, series, p.Multiple.Domain, len(vm.Categories))
		}
	}
	if lg := lay.Legend; lg != nil {
		for _, it := range lg.Items {
			c.fill(it.Marker, parseColor(it.Entry.Color))
		}
	}

	// Scale down by the supersampling factor.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Src, nil)

	t := &font.Drawer{Dst: dst, Face: basicfont.Face7x13}
	for i := range lay.Panels {
		p := &lay.Panels[i]
		if !p.Heading.Empty() {
			col := s.Heading.FontColor
			if p.Alternate {
				col = s.Heading.FontColourAlternate
			}
			drawText(t, p.Multiple.Name, p.Heading, parseColor(col))
		}
		if p.ValueLabels {
			d := p.Multiple.Domain
			for j, v := range p.Ticks {
				y := plotY(p.Plot, d, v)
				box := layout.Rect{X: p.ValueLabelBox.X, Y: y - 6, W: p.ValueLabelBox.W, H: 13}
				drawText(t, p.Labels[j], box, parseColor(s.ValueAxis.FontColor))
			}
		}
		if p.CategoryLabels && len(vm.Categories) > 0 {
			cats := vm.Categories
			box := p.CategoryLabelBox
			drawText(t, cats[0], box, parseColor(s.CategoryAxis.FontColor))
			if len(cats) > 1 {
				last := cats[len(cats)-1]
				lw := float64(font.MeasureString(t.Face, last).Ceil())
				box.X = box.Right() - lw
				drawText(t, last, box, parseColor(s.CategoryAxis.FontColor))
			}
		}
	}
	if lg := lay.Legend; lg != nil {
		if lg.Title.Text != "" {
			drawText(t, lg.Title.Text, lg.Title.Rect, parseColor(s.Legend.FontColor))
		}
		for _, it := range lg.Items {
			drawText(t, it.Entry.Name, it.Label, parseColor(s.Legend.FontColor))
		}
	}
	for _, tb := range []*layout.TitleBox{lay.ValueTitle, lay.CategoryTitle} {
		if tb != nil {
			drawTitle(t, tb)
		}
	}
	return dst, nil
}

// PNG writes the chart in f to w as a PNG image.
func PNG(w io.Writer, f *visual.Frame) error {
	img, err := Raster(f)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// canvas draws in layout coordinates onto an image scaled by scale.
type canvas struct {
	img   draw.Image
	scale float64
}

func (c *canvas) px(r layout.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X*c.scale)), int(math.Floor(r.Y*c.scale)),
		int(math.Ceil(r.Right()*c.scale)), int(math.Ceil(r.Bottom()*c.scale)))
}

func (c *canvas) fill(r layout.Rect, col color.Color) {
	draw.Draw(c.img, c.px(r), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *canvas) frame(r layout.Rect, col color.Color, width float64) {
	r1, _ := r.CutTop(width)
	r2, _ := r.CutBottom(width)
	r3, _ := r.CutLeft(width)
	r4, _ := r.CutRight(width)
	for _, edge := range []layout.Rect{r1, r2, r3, r4} {
		c.fill(edge, col)
	}
}

// series draws one measure's values in plot against domain d. Each
// of n categories is evenly spaced along plot; missing values break
// the line.
func (c *canvas) series(plot layout.Rect, s viewmodel.Series, d *viewmodel.Domain, n int) {
	m := s.Measure
	stroke := parseColor(m.Stroke)
	x := func(i int) float64 {
		if n <= 1 {
			return plot.X + plot.W/2
		}
		return plot.X + plot.W*float64(i)/float64(n-1)
	}
	clip := c.px(plot)

	if m.ShowArea {
		area := stroke
		area.A = uint8(255 * (100 - m.BackgroundTransparency) / 100)
		for i := 0; i+1 < len(s.Values); i++ {
			v0, v1 := s.Values[i], s.Values[i+1]
			if !finite(v0) || !finite(v1) {
				continue
			}
			x0, x1 := x(i)*c.scale, x(i+1)*c.scale
			for px := int(x0); px < int(x1); px++ {
				frac := (float64(px) - x0) / (x1 - x0)
				y := plotY(plot, d, v0+(v1-v0)*frac) * c.scale
				col := image.Rect(px, int(y), px+1, int(plot.Bottom()*c.scale)).Intersect(clip)
				draw.Draw(c.img, col, image.NewUniform(area), image.Point{}, draw.Over)
			}
		}
	}

	half := math.Max(m.StrokeWidth*c.scale/2, 0.5)
	dot := func(px, py float64) {
		r := image.Rect(int(px-half), int(py-half), int(math.Ceil(px+half)), int(math.Ceil(py+half))).Intersect(clip)
		draw.Draw(c.img, r, image.NewUniform(stroke), image.Point{}, draw.Src)
	}
	for i, v := range s.Values {
		if !finite(v) {
			continue
		}
		x0, y0 := x(i)*c.scale, plotY(plot, d, v)*c.scale
		dot(x0, y0)
		if i+1 >= len(s.Values) || !finite(s.Values[i+1]) {
			continue
		}
		x1, y1 := x(i+1)*c.scale, plotY(plot, d, s.Values[i+1])*c.scale
		steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0)))
		for k := 1; k <= steps; k++ {
			frac := float64(k) / float64(steps)
			dot(x0+(x1-x0)*frac, y0+(y1-y0)*frac)
		}
	}
}

// plotY maps v in domain d to a y coordinate in plot.
func plotY(plot layout.Rect, d *viewmodel.Domain, v float64) float64 {
	span := d.End - d.Start
	if span <= 0 {
		return plot.Y + plot.H/2
	}
	return plot.Bottom() - plot.H*(v-d.Start)/span
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// drawText draws s vertically centered at the left of box.
func drawText(t *font.Drawer, s string, box layout.Rect, col color.Color) {
	m := t.Face.Metrics()
	base := box.Y + (box.H+float64(m.Ascent.Ceil()-m.Descent.Ceil()))/2
	t.Src = image.NewUniform(col)
	t.Dot = fixed.P(int(box.X), int(base))
	t.DrawString(s)
}

// drawTitle draws an axis title centered in its box. Rotated titles
// are drawn one character per line.
func drawTitle(t *font.Drawer, tb *layout.TitleBox) {
	col := color.Black
	if !tb.Rotated {
		w := float64(font.MeasureString(t.Face, tb.Text).Ceil())
		box := tb.Rect
		box.X += (box.W - w) / 2
		drawText(t, tb.Text, box, col)
		return
	}
	lh := float64(t.Face.Metrics().Height.Ceil())
	runes := []rune(tb.Text)
	y := tb.Rect.Y + (tb.Rect.H-lh*float64(len(runes)))/2
	for _, r := range runes {
		w := float64(font.MeasureString(t.Face, string(r)).Ceil())
		box := layout.Rect{X: tb.Rect.X + (tb.Rect.W-w)/2, Y: y, W: w, H: lh}
		drawText(t, string(r), box, col)
		y += lh
	}
}

// PNGSurface is a visual.Surface that draws raster images. The last
// image is held in Image; it is nil after a landing page or a
// minimised chart.
type PNGSurface struct {
	Image *image.RGBA
}

func (s *PNGSurface) Clear() {
	s.Image = nil
}

func (s *PNGSurface) DrawLanding(f *visual.Frame) {}

func (s *PNGSurface) DrawMinimised(f *visual.Frame) {}

func (s *PNGSurface) Draw(f *visual.Frame) error {
	img, err := Raster(f)
	if err != nil {
		return err
	}
	s.Image = img
	return nil
}
