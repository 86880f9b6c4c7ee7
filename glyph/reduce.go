// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyph

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// TooltipMode selects the tooltip of a glyph.
type TooltipMode int

const (
	// TooltipDefault uses the glyph's default tooltip.
	TooltipDefault TooltipMode = iota
	// TooltipCustom uses an explicit template.
	TooltipCustom
	// TooltipNone disables tooltips.
	TooltipNone
)

// Tooltip is a glyph's tooltip setting.
type Tooltip struct {
	Mode     TooltipMode
	Template field.Template
}

func (tt Tooltip) choose(def field.Template) field.Template {
	switch tt.Mode {
	case TooltipCustom:
		return tt.Template
	case TooltipNone:
		return field.Template{}
	}
	return def
}

// ReduceOptions are the options of RenderReducing.
type ReduceOptions struct {
	Name    string
	Binding *LegendBinding
	Tooltip Tooltip

	// Default is the default tooltip. When props are grouped, it is
	// extended with "<br>col={col}" for each grouping column.
	Default field.Template

	Level scene.Level
}

// RenderReducing renders g over t with style props, reducing field
// props to literal values.
//
// If props holds no field props, g is rendered once. Otherwise t is
// grouped by every column the field props read, each field prop is
// evaluated over the table of group keys, and g is rendered once per
// group with that group's rows and literal values. Evaluating over
// the keys of all groups at once keeps derived values, such as factor
// colors, consistent across groups.
//
// RenderReducing returns the number of renderers created.
func RenderReducing(c *Canvas, t *table.Table, g scene.Glyph, props style.Props, opts ReduceOptions) (int, error) {
	if t == nil {
		t = frame.Empty
	}
	t, props, err := bindRows(t, props)
	if err != nil {
		return 0, err
	}

	var fieldKeys []string
	for _, k := range props.Keys() {
		if field.IsField(props[k]) {
			fieldKeys = append(fieldKeys, k)
		}
	}

	ropts := RenderOptions{
		Legend:  c.Legend,
		Binding: opts.Binding,
		Filter:  c.Filter,
		Name:    opts.Name,
		Level:   opts.Level,
	}
	if len(fieldKeys) == 0 {
		g = g.Clone()
		g.Style = props
		ropts.Tooltip = opts.Tooltip.choose(opts.Default)
		if _, err := Render(t, g, c.Figure, ropts); err != nil {
			return 0, err
		}
		return 1, nil
	}

	var by []string
	seen := make(map[string]bool)
	for _, k := range fieldKeys {
		for _, col := range field.Underlying(props[k].(field.Spec)) {
			if t.Column(col) == nil {
				return 0, fmt.Errorf("style %s: %w", k, &field.MissingColumnError{Name: col})
			}
			if !seen[col] {
				seen[col] = true
				by = append(by, col)
			}
		}
	}

	groups := frame.Groups(t, by...)
	kb := new(table.Builder)
	for j, col := range by {
		vals := make([]interface{}, len(groups))
		for i, grp := range groups {
			vals[i] = grp.Key[j]
		}
		kb.Add(col, frame.Column(vals))
	}
	keys := kb.Done()

	propCols := make(map[string]string, len(fieldKeys))
	for _, k := range fieldKeys {
		var name string
		keys, name, err = field.Apply(keys, props[k].(field.Spec))
		if err != nil {
			return 0, fmt.Errorf("style %s: %w", k, err)
		}
		propCols[k] = name
	}

	def := opts.Default
	if !def.IsZero() {
		for _, col := range by {
			def = def.Append(col)
		}
	}
	ropts.Tooltip = opts.Tooltip.choose(def)

	n := 0
	for i, grp := range groups {
		gp := props.Merge()
		rows := table.NewBuilder(grp.Table)
		for _, k := range fieldKeys {
			v := frame.Value(keys.MustColumn(propCols[k]), i)
			gp[k] = v
			if !seen[propCols[k]] {
				rows.Add(propCols[k], frame.Repeat(v, grp.Table.Len()))
			}
		}
		gc := g.Clone()
		gc.Style = gp
		if _, err := Render(rows.Done(), gc, c.Figure, ropts); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// bindRows moves Collection style values, and Derived style values
// that read no columns, into columns of t and unwraps Literal style
// values. Neither kind groups rows.
func bindRows(t *table.Table, props style.Props) (*table.Table, style.Props, error) {
	out := props.Merge()
	for _, k := range props.Keys() {
		switch v := props[k].(type) {
		case field.Literal:
			out[k] = v.Value
		case field.Derived:
			if len(v.From) > 0 {
				continue
			}
			var col string
			var err error
			if t, col, err = field.Apply(t, v); err != nil {
				return nil, nil, fmt.Errorf("style %s: %w", k, err)
			}
			out[k] = scene.FieldRef(col)
		case field.Collection:
			if n := frame.Len(v.Values); n != t.Len() {
				return nil, nil, fmt.Errorf("style %s: %d values for %d rows", k, n, t.Len())
			}
			col := "__plotkit.style." + k + "__"
			t = table.NewBuilder(t).Add(col, v.Values).Done()
			out[k] = scene.FieldRef(col)
		}
	}
	return t, out, nil
}
