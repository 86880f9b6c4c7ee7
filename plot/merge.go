// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import "github.com/aclements/go-plotkit/scene"

// MergeLegends returns a copy of a with the items of bs merged in.
//
// An item whose label matches an item already in the result adds its
// visible renderers to that item, skipping renderers the item already
// holds. Other items are appended with their visible renderers.
// Neither a nor bs are modified.
func MergeLegends(a *scene.Legend, bs ...*scene.Legend) *scene.Legend {
	merged := a.Clone()
	for _, b := range bs {
		for _, it := range b.Items {
			found := merged.Find(it.Label)
			if found == nil {
				found = scene.NewLegendItem(it.Label)
				found.Index = it.Index
				found.Name, found.Tags = it.Name, append([]string(nil), it.Tags...)
				merged.Items = append(merged.Items, found)
			}
			for _, r := range it.Renderers {
				if r.Visible && !holds(found, r) {
					found.Renderers = append(found.Renderers, r)
				}
			}
		}
	}
	return merged
}

func holds(it *scene.LegendItem, r *scene.GlyphRenderer) bool {
	for _, x := range it.Renderers {
		if x == r {
			return true
		}
	}
	return false
}

// MergeTools returns a toolbar that drives tools together.
//
// Tools of the same kind are gathered into one proxy tool, in order
// of each kind's first appearance. Proxies among tools contribute
// their members. Copy tools are replaced by a single copy tool for
// the whole toolbar, and the box zoom proxy, if any, is the active
// drag tool.
func MergeTools(tools ...*scene.Tool) *scene.Toolbar {
	var kinds []scene.ToolKind
	members := make(map[scene.ToolKind][]*scene.Tool)
	add := func(t *scene.Tool) {
		if t.Kind == scene.Copy {
			return
		}
		if _, ok := members[t.Kind]; !ok {
			kinds = append(kinds, t.Kind)
		}
		members[t.Kind] = append(members[t.Kind], t)
	}
	for _, t := range tools {
		if t.IsProxy() {
			for _, m := range t.Members {
				add(m)
			}
		} else {
			add(t)
		}
	}

	tb := scene.NewToolbar()
	for _, k := range kinds {
		p := scene.NewProxy(members[k]...)
		tb.Tools = append(tb.Tools, p)
		if k == scene.BoxZoom {
			tb.ActiveDrag = p
		}
	}
	tb.Tools = append(tb.Tools, scene.NewTool(scene.Copy))
	tb.Location = scene.PlaceLeft
	return tb
}
