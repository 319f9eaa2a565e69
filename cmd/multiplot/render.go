// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/aclements/smallmultiples/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] data",
	Short: "Draw the chart as SVG or PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var previewCmd = &cobra.Command{
	Use:   "preview [flags] data",
	Short: "Draw a text preview of the chart layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "write the chart to `file` (default stdout)")
	renderCmd.Flags().String("format", "svg", "output format (svg|png)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	format, _ := cmd.Flags().GetString("format")
	c, err := loadChart(cmd, args)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "svg":
		surface := &render.SVGSurface{Width: c.width, Height: c.height}
		if _, err := c.run(surface); err != nil {
			return err
		}
		data = surface.Buf.Bytes()
	case "png":
		surface := new(render.PNGSurface)
		if _, err := c.run(surface); err != nil {
			return err
		}
		if surface.Image == nil {
			return fmt.Errorf("no chart to draw")
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, surface.Image); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o666); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	c, err := loadChart(cmd, args)
	if err != nil {
		return err
	}
	_, err = c.run(&render.PreviewSurface{W: os.Stdout})
	if err == nil {
		fmt.Println()
	}
	return err
}
