// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/aclements/smallmultiples/enumerate"
	"github.com/aclements/smallmultiples/render"
	"github.com/aclements/smallmultiples/settings"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate [flags] [group...]",
	Short: "List the settings offered for each group",
	RunE:  runEnumerate,
}

func init() {
	enumerateCmd.Flags().String("data", "", "map the data in `file` first")
}

var allGroups = []string{
	settings.ObjFeatures,
	settings.ObjLayout,
	settings.ObjHeading,
	settings.ObjValueAxis,
	settings.ObjCategoryAxis,
	settings.ObjLegend,
	settings.ObjLines,
	settings.ObjSmallMultiple,
	settings.ObjColorSelector,
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	var data []string
	if path, _ := cmd.Flags().GetString("data"); path != "" {
		data = []string{path}
	}
	c, err := loadChart(cmd, data)
	if err != nil {
		return err
	}
	v, err := c.run(new(render.Recorder))
	if err != nil {
		return err
	}

	groups := args
	if len(groups) == 0 {
		groups = allGroups
	}
	var out []*yaml.Node
	for _, g := range groups {
		for _, inst := range v.Enumerate(g) {
			out = append(out, instanceNode(inst))
		}
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

// instanceNode builds a YAML mapping for inst that keeps its
// properties in order.
func instanceNode(inst enumerate.Instance) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, v interface{}) {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			panic(err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &val)
	}
	add("object", inst.ObjectName)
	if inst.DisplayName != "" {
		add("name", inst.DisplayName)
	}
	if inst.Selector != "" {
		add("selector", inst.Selector)
	}
	if inst.Heading {
		add("heading", true)
		return n
	}
	props := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range inst.Properties {
		var val yaml.Node
		if err := val.Encode(p.Value); err != nil {
			panic(err)
		}
		props.Content = append(props.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.Name}, &val)
	}
	n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "properties"}, props)
	if len(inst.Ranges) > 0 {
		ranges := make(map[string][2]float64)
		for name, r := range inst.Ranges {
			ranges[name] = [2]float64{r.Min, r.Max}
		}
		add("ranges", ranges)
	}
	if len(inst.ValidValues) > 0 {
		add("valid", inst.ValidValues)
	}
	return n
}
