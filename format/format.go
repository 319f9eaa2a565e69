// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format formats axis and tooltip values with display units.
package format

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayUnit is the power of a thousand values are divided by
// before formatting. Auto resolves to a concrete unit from the
// magnitude of the data; None leaves values unscaled.
type DisplayUnit float64

const (
	Auto      DisplayUnit = 0
	None      DisplayUnit = 1
	Thousands DisplayUnit = 1e3
	Millions  DisplayUnit = 1e6
	Billions  DisplayUnit = 1e9
	Trillions DisplayUnit = 1e12
)

var units = []DisplayUnit{Trillions, Billions, Millions, Thousands}

// Suffix returns the abbreviation appended to values in unit u.
func (u DisplayUnit) Suffix() string {
	switch u {
	case Thousands:
		return "K"
	case Millions:
		return "M"
	case Billions:
		return "bn"
	case Trillions:
		return "T"
	}
	return ""
}

// Title returns the name of unit u as used in axis titles, or "" if
// values are unscaled.
func (u DisplayUnit) Title() string {
	switch u {
	case Thousands:
		return "Thousands"
	case Millions:
		return "Millions"
	case Billions:
		return "Billions"
	case Trillions:
		return "Trillions"
	}
	return ""
}

// Resolve returns the concrete unit for u given the largest absolute
// value that will be displayed. Units other than Auto are returned
// as is; an unknown unit resolves to None.
func Resolve(u DisplayUnit, magnitude float64) DisplayUnit {
	switch u {
	case None, Thousands, Millions, Billions, Trillions:
		return u
	case Auto:
	default:
		return None
	}
	magnitude = math.Abs(magnitude)
	for _, unit := range units {
		if magnitude >= float64(unit) {
			return unit
		}
	}
	return None
}

// A Format says how to render a value.
type Format struct {
	// Unit must be a concrete (resolved) unit.
	Unit DisplayUnit

	// Precision is the number of fraction digits. If negative,
	// as many as needed are used, up to 6.
	Precision int

	// Percent formats values as percentages. It is set for
	// measures whose format string contains '%'.
	Percent bool
}

// ParseFormatString derives the base Format of a measure from its
// format string, such as "0.00" or "0.0%".
func ParseFormatString(s string) Format {
	f := Format{Unit: None, Precision: -1}
	if s == "" {
		return f
	}
	f.Percent = strings.Contains(s, "%")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		n := 0
		for _, c := range s[i+1:] {
			if c != '0' && c != '#' {
				break
			}
			n++
		}
		f.Precision = n
	} else if strings.ContainsAny(s, "0#") {
		f.Precision = 0
	}
	return f
}

// A Formatter renders values. It is the host's formatting service.
type Formatter interface {
	Format(v float64, f Format) string
}

// Printer is a Formatter that uses locale-aware number formatting.
type Printer struct {
	p *message.Printer
}

// NewPrinter returns a Printer for the given locale.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{message.NewPrinter(tag)}
}

func (p *Printer) Format(v float64, f Format) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	unit := f.Unit
	if unit == Auto {
		unit = Resolve(Auto, v)
	}
	if f.Percent {
		v *= 100
	}
	v /= float64(unit)

	var opts []number.Option
	if f.Precision >= 0 {
		opts = append(opts, number.MinFractionDigits(f.Precision), number.MaxFractionDigits(f.Precision))
	} else {
		opts = append(opts, number.MaxFractionDigits(6))
	}
	s := p.p.Sprint(number.Decimal(v, opts...))
	if f.Percent {
		s += "%"
	}
	return s + unit.Suffix()
}
