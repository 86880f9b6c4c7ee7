// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// ToolKind is the type of an interactive tool.
type ToolKind string

const (
	Hover   ToolKind = "hover"
	BoxZoom ToolKind = "box_zoom"
	Copy    ToolKind = "copy"
	Reset   ToolKind = "reset"
	Pan     ToolKind = "pan"
)

// Tool is an interactive tool. A tool with Members is a proxy that
// forwards to every member, so that one button drives the same tool
// in several figures.
type Tool struct {
	Model
	Kind ToolKind

	// Renderers restricts a hover tool to these renderers. If
	// empty, it applies to all renderers.
	Renderers []*GlyphRenderer

	// Tooltips is the hover tooltip template.
	Tooltips string

	Members []*Tool
}

// NewTool returns a tool of the given kind.
func NewTool(kind ToolKind) *Tool {
	return &Tool{Model: newModel(), Kind: kind}
}

// NewProxy returns a proxy tool for members, which must all have the
// same kind.
func NewProxy(members ...*Tool) *Tool {
	t := NewTool(members[0].Kind)
	t.Members = members
	return t
}

// IsProxy reports whether t is a proxy.
func (t *Tool) IsProxy() bool { return len(t.Members) > 0 }

// Clone returns a copy of t.
func (t *Tool) Clone() *Tool {
	c := *t
	c.Model = t.Model.clone()
	c.Renderers = append([]*GlyphRenderer(nil), t.Renderers...)
	c.Members = append([]*Tool(nil), t.Members...)
	return &c
}

// Toolbar holds the tools of a figure or grid.
type Toolbar struct {
	Model
	Tools      []*Tool
	ActiveDrag *Tool
	Location   Place
}

// NewToolbar returns an empty toolbar placed to the right.
func NewToolbar() *Toolbar {
	return &Toolbar{Model: newModel(), Location: PlaceRight}
}

// Find returns the first tool of the given kind, or nil.
func (tb *Toolbar) Find(kind ToolKind) *Tool {
	for _, t := range tb.Tools {
		if t.Kind == kind {
			return t
		}
	}
	return nil
}
