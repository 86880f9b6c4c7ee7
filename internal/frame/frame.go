// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame provides the row-level table operations that the
// plotting packages need on top of go-gg's table package: equality
// filtering, grouping with recoverable keys, distinct sorted
// combinations, and conversions of columns to plain Go slices.
package frame

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Empty is a table with no columns and no rows.
var Empty = new(table.Builder).Done()

// Has reports whether t has every column in cols. A nil table has no
// columns.
func Has(t *table.Table, cols ...string) bool {
	if t == nil {
		return len(cols) == 0
	}
	for _, col := range cols {
		if t.Column(col) == nil {
			return false
		}
	}
	return true
}

// Len returns the number of elements of column col.
func Len(col table.Slice) int {
	if col == nil {
		return 0
	}
	return reflect.ValueOf(col).Len()
}

// Value returns element i of column col.
func Value(col table.Slice, i int) interface{} {
	return reflect.ValueOf(col).Index(i).Interface()
}

// Select returns a table holding rows idx of t, in that order.
func Select(t *table.Table, idx []int) *table.Table {
	b := new(table.Builder)
	for _, col := range t.Columns() {
		b.Add(col, slice.Select(t.Column(col), idx))
	}
	return b.Done()
}

// Rows returns the indexes of the rows of t for which pred returns
// true. pred is passed the row index.
func Rows(t *table.Table, pred func(i int) bool) []int {
	var idx []int
	for i := 0; i < t.Len(); i++ {
		if pred(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Filter returns the rows of t where each column named in f equals
// the corresponding value. If any column named in f is missing from
// t, Filter returns t unchanged: a table that lacks a faceting column
// belongs to every facet.
func Filter(t *table.Table, f map[string]interface{}) *table.Table {
	if t == nil || len(f) == 0 {
		return t
	}
	cols := make([]string, 0, len(f))
	for col := range f {
		cols = append(cols, col)
	}
	if !Has(t, cols...) {
		return t
	}
	sort.Strings(cols)
	data := make([]table.Slice, len(cols))
	for i, col := range cols {
		data[i] = t.Column(col)
	}
	idx := Rows(t, func(i int) bool {
		for j, col := range cols {
			if !Equal(Value(data[j], i), f[col]) {
				return false
			}
		}
		return true
	})
	return Select(t, idx)
}

// Drop returns t without the named columns.
func Drop(t *table.Table, cols ...string) *table.Table {
	b := table.NewBuilder(t)
	for _, col := range cols {
		if t.Column(col) != nil {
			b.Add(col, nil)
		}
	}
	return b.Done()
}

// A Group is one group of rows produced by Groups.
type Group struct {
	// Key holds the group's value of each grouping column.
	Key []interface{}

	// Table holds the group's rows.
	Table *table.Table
}

// Groups splits t into groups of rows sharing the same values of
// cols. Groups are returned in order of first occurrence. With no
// columns, the whole table is a single group with an empty key.
func Groups(t *table.Table, cols ...string) []Group {
	if len(cols) == 0 {
		return []Group{{Key: []interface{}{}, Table: t}}
	}
	g := table.GroupBy(t, cols...)
	var out []Group
	for _, gid := range g.Tables() {
		key := make([]interface{}, len(cols))
		id := gid
		for i := len(cols) - 1; i >= 0; i-- {
			key[i] = id.Label()
			id = id.Parent()
		}
		out = append(out, Group{Key: key, Table: g.Table(gid)})
	}
	return out
}

// Distinct returns the distinct combinations of cols in t, sorted
// lexicographically by Compare.
func Distinct(t *table.Table, cols ...string) [][]interface{} {
	groups := Groups(t, cols...)
	keys := make([][]interface{}, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	sort.SliceStable(keys, func(i, j int) bool {
		for k := range keys[i] {
			if c := Compare(keys[i][k], keys[j][k]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return keys
}

// Unique returns the distinct values of col in order of first
// occurrence. List-valued elements are flattened first.
func Unique(col table.Slice) []interface{} {
	var out []interface{}
	seen := make(map[interface{}]bool)
	for _, v := range Flatten(col) {
		k := Key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}

// SortedUnique returns the distinct values of col in sorted order.
func SortedUnique(col table.Slice) []interface{} {
	vals := Unique(col)
	sort.SliceStable(vals, func(i, j int) bool {
		return Compare(vals[i], vals[j]) < 0
	})
	return vals
}

// Flatten returns the elements of col, concatenating any elements
// that are themselves slices.
func Flatten(col table.Slice) []interface{} {
	n := Len(col)
	out := make([]interface{}, 0, n)
	cv := reflect.ValueOf(col)
	for i := 0; i < n; i++ {
		ev := cv.Index(i)
		if ev.Kind() == reflect.Interface && !ev.IsNil() {
			ev = ev.Elem()
		}
		if ev.Kind() == reflect.Slice && ev.Type().Elem().Kind() != reflect.Uint8 {
			for j := 0; j < ev.Len(); j++ {
				out = append(out, ev.Index(j).Interface())
			}
			continue
		}
		out = append(out, ev.Interface())
	}
	return out
}

// IsList reports whether col holds slice-valued elements.
func IsList(col table.Slice) bool {
	if col == nil {
		return false
	}
	et := reflect.TypeOf(col).Elem()
	if et.Kind() == reflect.Slice && et.Elem().Kind() != reflect.Uint8 {
		return true
	}
	if et.Kind() == reflect.Interface && Len(col) > 0 {
		v := reflect.ValueOf(Value(col, 0))
		return v.Kind() == reflect.Slice
	}
	return false
}

// Repeat returns a column of n copies of v. The column's element
// type is the dynamic type of v, or interface{} if v is nil.
func Repeat(v interface{}, n int) table.Slice {
	if v == nil {
		return make([]interface{}, n)
	}
	rv := reflect.ValueOf(v)
	out := reflect.MakeSlice(reflect.SliceOf(rv.Type()), n, n)
	for i := 0; i < n; i++ {
		out.Index(i).Set(rv)
	}
	return out.Interface()
}

// Column packs vals into a column. If every value has the same
// dynamic type the column has that element type, otherwise it is a
// []interface{}.
func Column(vals []interface{}) table.Slice {
	var et reflect.Type
	for _, v := range vals {
		if v == nil {
			et = nil
			break
		}
		if et == nil {
			et = reflect.TypeOf(v)
		} else if reflect.TypeOf(v) != et {
			et = nil
			break
		}
	}
	if et == nil {
		return append(make([]interface{}, 0, len(vals)), vals...)
	}
	out := reflect.MakeSlice(reflect.SliceOf(et), len(vals), len(vals))
	for i, v := range vals {
		out.Index(i).Set(reflect.ValueOf(v))
	}
	return out.Interface()
}

// Truncate returns the first n elements of col.
func Truncate(col table.Slice, n int) table.Slice {
	return reflect.ValueOf(col).Slice(0, n).Interface()
}

// IsNumeric reports whether every element of col is a number.
func IsNumeric(col table.Slice) bool {
	if col == nil {
		return false
	}
	if isNumberKind(reflect.TypeOf(col).Elem().Kind()) {
		return true
	}
	for i, n := 0, Len(col); i < n; i++ {
		if _, ok := ToFloat(Value(col, i)); !ok {
			return false
		}
	}
	return Len(col) > 0
}

// Floats converts col to []float64.
func Floats(col table.Slice) ([]float64, error) {
	var out []float64
	if col != nil && isNumberKind(reflect.TypeOf(col).Elem().Kind()) {
		slice.Convert(&out, col)
		return out, nil
	}
	n := Len(col)
	out = make([]float64, n)
	for i := 0; i < n; i++ {
		f, ok := ToFloat(Value(col, i))
		if !ok {
			return nil, fmt.Errorf("value %v at row %d is not a number", Value(col, i), i)
		}
		out[i] = f
	}
	return out, nil
}

// Strings formats every element of col with Format.
func Strings(col table.Slice) []string {
	n := Len(col)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = Format(Value(col, i))
	}
	return out
}

// Format formats a single table value for labels and tooltips.
func Format(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.6g", v)
	case float32:
		return fmt.Sprintf("%.6g", v)
	case time.Time:
		return v.Format(time.RFC3339)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// ToFloat converts a numeric value to float64.
func ToFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// Key maps v to a comparable value suitable for use as a map key.
// Numbers of any type map to float64 so that they compare by value.
func Key(v interface{}) interface{} {
	if f, ok := ToFloat(v); ok {
		return f
	}
	if t, ok := v.(time.Time); ok {
		return t.UnixNano()
	}
	if v != nil && !reflect.TypeOf(v).Comparable() {
		return fmt.Sprint(v)
	}
	return v
}

// Equal reports whether a and b are equal table values. Numbers are
// compared by value regardless of their Go type.
func Equal(a, b interface{}) bool {
	return Key(a) == Key(b)
}

// Compare orders two table values. Numbers order numerically, times
// chronologically, strings lexically. Values of different kinds order
// numbers first, then times, then everything else by their formatted
// text.
func Compare(a, b interface{}) int {
	af, aok := ToFloat(a)
	bf, bok := ToFloat(b)
	switch {
	case aok && bok:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	switch {
	case aok && bok:
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(Format(a), Format(b))
}
