// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings defines the user-configurable options of a small
// multiples chart and how they are parsed from persisted properties.
//
// Settings are organized in named groups ("objects"), each holding a
// flat set of properties. A Settings value is constructed fresh for
// every update from the persisted Objects merged over the defaults in
// defaults.toml, and is treated as immutable for the rest of that
// update.
package settings

// Object names of the settings groups.
const (
	ObjFeatures      = "features"
	ObjValueAxis     = "valueAxis"
	ObjCategoryAxis  = "categoryAxis"
	ObjLegend        = "legend"
	ObjLayout        = "layout"
	ObjSmallMultiple = "smallMultiple"
	ObjHeading       = "heading"
	ObjLines         = "lines"
	ObjColorSelector = "colorSelector"
)

// Settings is the complete, typed set of options for one update.
type Settings struct {
	Features      Features      `toml:"features" yaml:"features"`
	ValueAxis     AxisSettings  `toml:"valueAxis" yaml:"valueAxis"`
	CategoryAxis  AxisSettings  `toml:"categoryAxis" yaml:"categoryAxis"`
	Legend        Legend        `toml:"legend" yaml:"legend"`
	Layout        Layout        `toml:"layout" yaml:"layout"`
	SmallMultiple SmallMultiple `toml:"smallMultiple" yaml:"smallMultiple"`
	Heading       Heading       `toml:"heading" yaml:"heading"`
	Lines         Lines         `toml:"lines" yaml:"lines"`
}

// Features holds schema bookkeeping and developer switches.
type Features struct {
	// ObjectVersion is the schema version marker. It is written
	// by the migrator and never edited by users.
	ObjectVersion int `toml:"objectVersion" yaml:"objectVersion"`

	// AxisLabelPlacement enables the label placement option on
	// both axes.
	AxisLabelPlacement bool `toml:"axisLabelPlacement" yaml:"axisLabelPlacement"`

	// Debug enables verbose logging and exposes this group in
	// the property pane.
	Debug bool `toml:"debug" yaml:"debug"`
}

// AxisKind distinguishes the two variants of AxisSettings.
type AxisKind int

const (
	ValueAxisKind AxisKind = iota
	CategoryAxisKind
)

func (k AxisKind) String() string {
	if k == CategoryAxisKind {
		return "category"
	}
	return "value"
}

// AxisSettings configures either the value axis or the category axis.
// Both variants share a single record; Axis says which one this is
// and determines which of the variant-specific fields are meaningful.
type AxisSettings struct {
	Axis AxisKind `toml:"-" yaml:"-"`

	ShowLabels     bool    `toml:"showLabels" yaml:"showLabels"`
	LabelPlacement string  `toml:"labelPlacement" yaml:"labelPlacement"`
	FontColor      string  `toml:"fontColor" yaml:"fontColor"`
	FontSize       float64 `toml:"fontSize" yaml:"fontSize"`
	FontFamily     string  `toml:"fontFamily" yaml:"fontFamily"`

	// Value axis only.
	LabelDisplayUnits float64  `toml:"labelDisplayUnits" yaml:"labelDisplayUnits"`
	Precision         *int     `toml:"precision" yaml:"precision"`
	Start             *float64 `toml:"start" yaml:"start"`
	End               *float64 `toml:"end" yaml:"end"`

	Gridlines               bool    `toml:"gridlines" yaml:"gridlines"`
	GridlineColor           string  `toml:"gridlineColor" yaml:"gridlineColor"`
	GridlineStrokeWidth     float64 `toml:"gridlineStrokeWidth" yaml:"gridlineStrokeWidth"`
	GridlineStrokeLineStyle string  `toml:"gridlineStrokeLineStyle" yaml:"gridlineStrokeLineStyle"`

	// Category axis only.
	ShowAxisLine        bool    `toml:"showAxisLine" yaml:"showAxisLine"`
	AxisLineColor       string  `toml:"axisLineColor" yaml:"axisLineColor"`
	AxisLineStrokeWidth float64 `toml:"axisLineStrokeWidth" yaml:"axisLineStrokeWidth"`

	ShowTitle       bool    `toml:"showTitle" yaml:"showTitle"`
	TitleStyle      string  `toml:"titleStyle" yaml:"titleStyle"`
	TitleColor      string  `toml:"titleColor" yaml:"titleColor"`
	TitleText       string  `toml:"titleText" yaml:"titleText"`
	TitleFontSize   float64 `toml:"titleFontSize" yaml:"titleFontSize"`
	TitleFontFamily string  `toml:"titleFontFamily" yaml:"titleFontFamily"`
}

var valueAxisOnly = map[string]bool{
	"labelDisplayUnits": true,
	"precision":         true,
	"start":             true,
	"end":               true,
	"titleStyle":        true,
}

var categoryAxisOnly = map[string]bool{
	"showAxisLine":        true,
	"axisLineColor":       true,
	"axisLineStrokeWidth": true,
}

// Applies reports whether the property named prop is meaningful for
// this axis variant.
func (a *AxisSettings) Applies(prop string) bool {
	if a.Axis == CategoryAxisKind {
		return !valueAxisOnly[prop]
	}
	return !categoryAxisOnly[prop]
}

// Title styles for the value axis title.
const (
	TitleStyleTitle = "title"
	TitleStyleUnit  = "unit"
	TitleStyleBoth  = "both"
)

// Legend positions.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
	PositionLeft   = "left"
	PositionRight  = "right"
)

// Legend configures the chart's single shared legend.
type Legend struct {
	Show          bool    `toml:"show" yaml:"show"`
	Position      string  `toml:"position" yaml:"position"`
	ShowTitle     bool    `toml:"showTitle" yaml:"showTitle"`
	TitleText     string  `toml:"titleText" yaml:"titleText"`
	IncludeRanges bool    `toml:"includeRanges" yaml:"includeRanges"`
	FontColor     string  `toml:"fontColor" yaml:"fontColor"`
	FontSize      float64 `toml:"fontSize" yaml:"fontSize"`
	FontFamily    string  `toml:"fontFamily" yaml:"fontFamily"`
}

// Grid policies. HorizontalGrid selects whether the column count or
// the panel width is fixed; VerticalGrid selects whether panels fit
// the viewport or have a fixed height.
const (
	HorizontalColumn = "column"
	HorizontalWidth  = "width"
	VerticalFit      = "fit"
	VerticalHeight   = "height"
)

// Layout configures the multiples grid.
type Layout struct {
	HorizontalGrid        string  `toml:"horizontalGrid" yaml:"horizontalGrid"`
	NumberOfColumns       int     `toml:"numberOfColumns" yaml:"numberOfColumns"`
	MultipleWidth         float64 `toml:"multipleWidth" yaml:"multipleWidth"`
	VerticalGrid          string  `toml:"verticalGrid" yaml:"verticalGrid"`
	MultipleHeight        float64 `toml:"multipleHeight" yaml:"multipleHeight"`
	SpacingBetweenColumns float64 `toml:"spacingBetweenColumns" yaml:"spacingBetweenColumns"`
	SpacingBetweenRows    float64 `toml:"spacingBetweenRows" yaml:"spacingBetweenRows"`
}

// SmallMultiple configures the appearance of each panel and how axes
// are shared between them.
type SmallMultiple struct {
	Border                   bool    `toml:"border" yaml:"border"`
	BorderColor              string  `toml:"borderColor" yaml:"borderColor"`
	BorderStrokeWidth        float64 `toml:"borderStrokeWidth" yaml:"borderStrokeWidth"`
	BorderStyle              string  `toml:"borderStyle" yaml:"borderStyle"`
	BackgroundColor          string  `toml:"backgroundColor" yaml:"backgroundColor"`
	ZebraStripe              bool    `toml:"zebraStripe" yaml:"zebraStripe"`
	ZebraStripeApply         string  `toml:"zebraStripeApply" yaml:"zebraStripeApply"`
	BackgroundColorAlternate string  `toml:"backgroundColorAlternate" yaml:"backgroundColorAlternate"`

	// MasterAxes restricts axis labels to the edge panels: value
	// axis labels to the first column and category axis labels
	// to the bottom panel of each column.
	MasterAxes bool `toml:"masterAxes" yaml:"masterAxes"`

	// IndependentValueAxis gives every panel its own value
	// domain instead of the shared master domain.
	IndependentValueAxis bool `toml:"independentValueAxis" yaml:"independentValueAxis"`
}

// Heading configures the label drawn in each panel.
type Heading struct {
	Show                bool    `toml:"show" yaml:"show"`
	Position            string  `toml:"position" yaml:"position"`
	Alignment           string  `toml:"alignment" yaml:"alignment"`
	FontColor           string  `toml:"fontColor" yaml:"fontColor"`
	FontColourAlternate string  `toml:"fontColourAlternate" yaml:"fontColourAlternate"`
	FontSize            float64 `toml:"fontSize" yaml:"fontSize"`
	FontFamily          string  `toml:"fontFamily" yaml:"fontFamily"`
}

// Lines is the default style of a measure. Per-measure overrides are
// persisted against the measure's query name.
type Lines struct {
	Stroke                 string  `toml:"stroke" yaml:"stroke"`
	StrokeWidth            float64 `toml:"strokeWidth" yaml:"strokeWidth"`
	ShowArea               bool    `toml:"showArea" yaml:"showArea"`
	BackgroundTransparency float64 `toml:"backgroundTransparency" yaml:"backgroundTransparency"`
	LineShape              string  `toml:"lineShape" yaml:"lineShape"`
	LineStyle              string  `toml:"lineStyle" yaml:"lineStyle"`
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	s2 := *s
	s2.ValueAxis = s.ValueAxis.clone()
	s2.CategoryAxis = s.CategoryAxis.clone()
	return &s2
}

func (a AxisSettings) clone() AxisSettings {
	if a.Precision != nil {
		p := *a.Precision
		a.Precision = &p
	}
	if a.Start != nil {
		v := *a.Start
		a.Start = &v
	}
	if a.End != nil {
		v := *a.End
		a.End = &v
	}
	return a
}
