// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is an in-memory scene graph of figures, glyph
// renderers, axes, legends, tools and grids of figures.
//
// A scene is built by the plot and glyph packages and consumed by
// the export package, which draws it. Models are plain structs
// mutated through their fields; Clone methods return copies with
// fresh identities that can be modified without affecting the
// original.
package scene

import (
	"sync/atomic"

	"github.com/aclements/go-gg/table"
)

var lastID int64

// Model holds the identity of a scene object.
type Model struct {
	id   int64
	Name string
	Tags []string
}

func newModel() Model {
	return Model{id: atomic.AddInt64(&lastID, 1)}
}

// ID returns the model's unique identifier.
func (m *Model) ID() int64 { return m.id }

// Base returns m. It lets every scene object be used as an Item.
func (m *Model) Base() *Model { return m }

// HasTag reports whether tag is one of m's tags.
func (m *Model) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// clone returns a copy of m with a new identity.
func (m Model) clone() Model {
	c := newModel()
	c.Name = m.Name
	c.Tags = append([]string(nil), m.Tags...)
	return c
}

// An Item is any scene object.
type Item interface {
	Base() *Model
}

// Level is the stacking layer of a renderer. Higher levels are drawn
// on top.
type Level int

const (
	LevelUnderlay Level = iota
	LevelGlyph
	LevelOverlay
	LevelAnnotation
)

func (l Level) String() string {
	switch l {
	case LevelUnderlay:
		return "underlay"
	case LevelGlyph:
		return "glyph"
	case LevelOverlay:
		return "overlay"
	case LevelAnnotation:
		return "annotation"
	}
	return "unknown"
}

// Place is the side of a figure a layout element is attached to.
type Place string

const (
	PlaceNone   Place = "none"
	PlaceAbove  Place = "above"
	PlaceBelow  Place = "below"
	PlaceLeft   Place = "left"
	PlaceRight  Place = "right"
	PlaceCenter Place = "center"
)

// Dim is a figure dimension.
type Dim int

const (
	X Dim = iota
	Y
)

func (d Dim) String() string {
	if d == X {
		return "x"
	}
	return "y"
}

// Source is a column data source.
type Source struct {
	Model
	Table *table.Table
}

// NewSource returns a Source for t.
func NewSource(t *table.Table) *Source {
	return &Source{Model: newModel(), Table: t}
}
