// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aclements/smallmultiples/layout"
	"github.com/aclements/smallmultiples/render"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] data",
	Short: "Print the resolved layout of the chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().Bool("stages", false, "print the layout stages that ran")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	c, err := loadChart(cmd, args)
	if err != nil {
		return err
	}
	v, err := c.run(new(render.Recorder))
	if err != nil {
		return err
	}
	f := v.Frame()
	if f == nil {
		return fmt.Errorf("no layout")
	}
	if f.Layout == nil {
		return fmt.Errorf("no layout: %v", f.VM.Err)
	}
	if stages, _ := cmd.Flags().GetBool("stages"); stages {
		for _, line := range f.Layout.Trace {
			fmt.Println(line)
		}
		fmt.Println()
	}
	return printLayout(os.Stdout, f.Layout)
}

// printLayout writes a table of the layout's boxes and panels.
func printLayout(w io.Writer, lay *layout.Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "viewport\t%v\n", lay.Viewport)
	if lay.Minimised {
		fmt.Fprintf(tw, "minimised\t%s\n", lay.Reason)
	}
	if lay.Legend != nil {
		fmt.Fprintf(tw, "legend\t%v\t%s\n", lay.Legend.Rect, lay.Legend.Position)
	}
	if t := lay.ValueTitle; t != nil {
		fmt.Fprintf(tw, "value title\t%v\t%q\n", t.Rect, t.Text)
	}
	if t := lay.CategoryTitle; t != nil {
		fmt.Fprintf(tw, "category title\t%v\t%q\n", t.Rect, t.Text)
	}
	if !lay.Minimised {
		g := lay.Grid
		fmt.Fprintf(tw, "chart area\t%v\n", lay.ChartArea)
		fmt.Fprintf(tw, "grid\t%v\t%dx%d of %gx%g", g.Bounds, g.Columns, g.Rows, g.PanelW, g.PanelH)
		if g.Overflow {
			fmt.Fprintf(tw, " (overflow)")
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw)

	if len(lay.Panels) > 0 {
		fmt.Fprintf(tw, "panel\trow\tcol\trect\tplot\tticks\n")
	}
	for _, p := range lay.Panels {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%v\t%s\n", p.Multiple.Name, p.Row, p.Col, p.Rect, p.Plot, strings.Join(p.Labels, " "))
	}
	return tw.Flush()
}
