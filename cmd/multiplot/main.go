// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command multiplot lays out and draws small multiples line charts
// from tabular data.
//
// Data is read from a CSV file or an Excel workbook. Three flags bind
// its columns to the chart: -multiple names the column whose values
// become panels, -category the column along each panel's x axis, and
// -values the measure columns, as a shell-quoted list.
//
// Chart settings come from a TOML or YAML file of settings groups
// (-settings) or a msgpack properties store (-objects). Properties
// written by older versions are migrated on load.
//
// Usage:
//
//	multiplot render  [flags] data.csv > chart.svg
//	multiplot render  -format png -o chart.png [flags] data.xlsx
//	multiplot preview [flags] data.csv
//	multiplot layout  [flags] data.csv
//	multiplot enumerate [flags] [group...]
//	multiplot migrate store.msgpack...
package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "multiplot",
	Short:         "Lay out and draw small multiples line charts",
	SilenceErrors: true,
}

func main() {
	log.SetPrefix("multiplot: ")
	log.SetFlags(0)

	addChartFlags(renderCmd, previewCmd, layoutCmd, enumerateCmd)
	rootCmd.AddCommand(renderCmd, previewCmd, layoutCmd, enumerateCmd, migrateCmd)
	rootCmd.PersistentFlags().Bool("debug", false, "log debug output from the chart engine")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
