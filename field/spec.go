// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field resolves per-channel data specifications into the
// columns of a table.
//
// Every channel of a glyph (x, y, a color, a marker) is described by
// a Spec. A Spec is one of four variants:
//
//	Literal     a single value broadcast to every row
//	Collection  one explicit value per row
//	Column      an existing column of the plot's table
//	Derived     a new column computed from existing columns
//
// Column and Derived specs are "field props": style properties whose
// value depends on the data. Resolve turns a list of named specs into
// a table with one column per spec.
package field

import (
	"reflect"

	"github.com/aclements/go-gg/table"
)

// A Spec describes where the values of one channel come from. The
// concrete type is always one of Literal, Collection, Column or
// Derived.
type Spec interface {
	isSpec()
}

// Literal is a scalar broadcast to the height of the resolved table.
type Literal struct {
	Value interface{}
}

// Collection is an explicit list of per-row values. Values must be a
// slice.
type Collection struct {
	Values table.Slice
}

// Column refers to an existing column of the table by name.
type Column struct {
	Name string
}

// Derived computes a new column named Name from the columns listed
// in From. Fn must be a pure function of those columns: it may be
// evaluated against the full table, a filtered table, or a table of
// group keys, and must return one value per row of its argument.
type Derived struct {
	Name string
	From []string
	Fn   func(t *table.Table) (table.Slice, error)
}

func (Literal) isSpec()    {}
func (Collection) isSpec() {}
func (Column) isSpec()     {}
func (Derived) isSpec()    {}

// Of adapts an arbitrary value into a Spec. A Spec is returned
// unchanged. A slice becomes a Collection. Anything else, including a
// single string, becomes a Literal.
func Of(v interface{}) Spec {
	switch v := v.(type) {
	case Spec:
		return v
	case string:
		return Literal{v}
	case nil:
		return Literal{nil}
	}
	if reflect.TypeOf(v).Kind() == reflect.Slice {
		return Collection{v}
	}
	return Literal{v}
}

// Col returns a Column spec.
func Col(name string) Column { return Column{name} }

// Lit returns a Literal spec.
func Lit(v interface{}) Literal { return Literal{v} }

// Values returns a Collection spec. It panics if vals is not a slice.
func Values(vals table.Slice) Collection {
	if reflect.TypeOf(vals).Kind() != reflect.Slice {
		panic("field.Values: not a slice")
	}
	return Collection{vals}
}

// Named binds a Spec to a channel name.
type Named struct {
	Name string
	Spec Spec
}

// IsField reports whether v is a field prop, that is, a Column or
// Derived spec whose value depends on the table.
func IsField(v interface{}) bool {
	switch v.(type) {
	case Column, Derived:
		return true
	}
	return false
}

// Underlying returns the existing columns that spec reads. It is nil
// for Literal and Collection specs.
func Underlying(spec Spec) []string {
	switch s := spec.(type) {
	case Column:
		return []string{s.Name}
	case Derived:
		return s.From
	}
	return nil
}

// OutputName returns the name of the column spec resolves to when
// bound to channel name.
func OutputName(name string, spec Spec) string {
	switch s := spec.(type) {
	case Column:
		return s.Name
	case Derived:
		if s.Name != "" {
			return s.Name
		}
	}
	return name
}
