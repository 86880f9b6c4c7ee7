// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/style"
)

// FactorCmap returns a Derived spec that colors each distinct value
// of col. Values are sorted and assigned the colors of p in order. A
// nil p uses the default hue palette.
//
// The mapping is computed from whatever table the spec is applied to,
// so every table it is applied to must contain all of col's values
// for the colors to be consistent.
func FactorCmap(col string, p style.Palette) Derived {
	if p == nil {
		p = style.Named("")
	}
	return Derived{
		Name: "plotkit.factor_cmap." + col,
		From: []string{col},
		Fn: func(t *table.Table) (table.Slice, error) {
			factors := frame.SortedUnique(t.MustColumn(col))
			colors, err := p.Colors(len(factors))
			if err != nil {
				return nil, err
			}
			return mapFactors(t.MustColumn(col), factors, func(i int) interface{} { return colors[i] })
		},
	}
}

// FactorMarker returns a Derived spec that assigns a marker type to
// each distinct value of col, in sorted order. markers defaults to
// style.Markers and is cycled if there are more values than markers.
func FactorMarker(col string, markers ...string) Derived {
	if len(markers) == 0 {
		markers = style.Markers
	}
	return Derived{
		Name: "plotkit.factor_marker." + col,
		From: []string{col},
		Fn: func(t *table.Table) (table.Slice, error) {
			factors := frame.SortedUnique(t.MustColumn(col))
			return mapFactors(t.MustColumn(col), factors, func(i int) interface{} { return markers[i%len(markers)] })
		},
	}
}

// FactorMap returns a Derived spec named name that maps each value of
// col through mapping. Every value of col must have an entry.
func FactorMap(name, col string, mapping map[interface{}]interface{}) Derived {
	m := make(map[interface{}]interface{}, len(mapping))
	for k, v := range mapping {
		m[frame.Key(k)] = v
	}
	return Derived{
		Name: name,
		From: []string{col},
		Fn: func(t *table.Table) (table.Slice, error) {
			src := t.MustColumn(col)
			out := make([]interface{}, t.Len())
			for i := range out {
				v := frame.Value(src, i)
				to, ok := m[frame.Key(v)]
				if !ok {
					return nil, fmt.Errorf("no mapping for value %v of column %q", v, col)
				}
				out[i] = to
			}
			return frame.Column(out), nil
		},
	}
}

func mapFactors(src table.Slice, factors []interface{}, value func(i int) interface{}) (table.Slice, error) {
	index := make(map[interface{}]int, len(factors))
	for i, f := range factors {
		index[frame.Key(f)] = i
	}
	n := frame.Len(src)
	out := make([]interface{}, n)
	for i := range out {
		out[i] = value(index[frame.Key(frame.Value(src, i))])
	}
	return frame.Column(out), nil
}
