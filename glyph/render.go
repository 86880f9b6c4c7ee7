// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyph

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/scene"
)

const (
	// RendererTag tags every renderer created by Render.
	RendererTag = "__plotkit.renderer__"

	// TooltipColumn holds the evaluated tooltip of each row.
	TooltipColumn = "__plotkit.glyph.tooltips.field__"

	// TooltipTag tags renderers that carry TooltipColumn. Hover
	// tools only target renderers with this tag.
	TooltipTag = TooltipColumn
)

// ErrLegendConflict is returned when a glyph is bound to a legend
// both by label and by group.
var ErrLegendConflict = errors.New("only one of legend label or legend group may be given")

// LegendBinding says how a glyph's renderers join a legend.
type LegendBinding struct {
	// Group is true if Value names a column whose distinct values
	// each get a "column=value" item. Otherwise Value is the label
	// of a single item.
	Group bool
	Value string
}

// NewLegendBinding returns the binding for a legend label or a
// legend group column. At most one may be non-empty; if both are
// empty there is no binding and NewLegendBinding returns nil.
func NewLegendBinding(label, group string) (*LegendBinding, error) {
	switch {
	case label != "" && group != "":
		return nil, ErrLegendConflict
	case group != "":
		return &LegendBinding{Group: true, Value: group}, nil
	case label != "":
		return &LegendBinding{Value: label}, nil
	}
	return nil, nil
}

// RenderOptions are the options of Render.
type RenderOptions struct {
	// Legend receives the renderer if Binding is also set.
	Legend  *scene.Legend
	Binding *LegendBinding

	// Filter restricts the data to rows whose columns equal the
	// given values.
	Filter map[string]interface{}

	Name string

	// Tooltip is evaluated per row into TooltipColumn. The zero
	// Template disables tooltips.
	Tooltip field.Template

	Level scene.Level
}

// Render adds a renderer drawing g over data to fig.
//
// If opts.Filter names a column data lacks, the filter is ignored and
// the renderer draws every row.
func Render(data *table.Table, g scene.Glyph, fig *scene.Figure, opts RenderOptions) (*scene.GlyphRenderer, error) {
	if data == nil {
		data = frame.Empty
	}
	tags := []string{RendererTag}
	if !opts.Tooltip.IsZero() {
		tips, err := opts.Tooltip.Eval(data)
		if err != nil {
			return nil, fmt.Errorf("tooltip %q: %w", opts.Tooltip, err)
		}
		data = table.NewBuilder(data).Add(TooltipColumn, tips).Done()
		tags = append(tags, TooltipTag)
	}
	data = frame.Filter(data, opts.Filter)

	r := fig.AddGlyph(scene.NewSource(data), g, scene.RendererOptions{
		Name:  opts.Name,
		Tags:  tags,
		Level: opts.Level,
	})
	if opts.Legend != nil && opts.Binding != nil {
		if err := bindLegend(opts.Legend, r, *opts.Binding); err != nil {
			return r, err
		}
	}
	return r, nil
}

func bindLegend(l *scene.Legend, r *scene.GlyphRenderer, b LegendBinding) error {
	if !b.Group {
		l.Add(scene.ValueLabel(b.Value), r, -1)
		return nil
	}
	col := r.Source.Table.Column(b.Value)
	if col == nil {
		return fmt.Errorf("legend group: %w", &field.MissingColumnError{Name: b.Value})
	}
	seen := make(map[interface{}]bool)
	for i, v := range frame.Flatten(col) {
		k := frame.Key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		l.Add(scene.ValueLabel(b.Value+"="+frame.Format(v)), r, i)
	}
	return nil
}
