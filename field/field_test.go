// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"bytes"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/style"
)

func captureWarnings(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	old := Warning
	Warning = log.New(&buf, "", 0)
	t.Cleanup(func() { Warning = old })
	return &buf
}

func xy() *table.Table {
	return new(table.Builder).
		Add("x", []int{1, 2, 3}).
		Add("y", []float64{10, 5, 8}).
		Done()
}

func TestResolveColumns(t *testing.T) {
	res, names, err := Resolve(xy(), Named{"x", Col("x")}, Named{"y", Of(Col("y"))})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"x", "y"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names should be %v; got %v", want, names)
	}
	if res.Len() != 3 {
		t.Fatalf("resolved table should have 3 rows; got %d", res.Len())
	}
}

func TestResolveBroadcast(t *testing.T) {
	res, names, err := Resolve(xy(), Named{"x", Col("x")}, Named{"color", Of("red")})
	if err != nil {
		t.Fatal(err)
	}
	if names[1] != "color" {
		t.Fatalf("literal should resolve to its channel name; got %q", names[1])
	}
	got := res.MustColumn("color")
	if want := []string{"red", "red", "red"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("broadcast should be %v; got %v", want, got)
	}

	// Without a table or collection the height is 1.
	res, _, err = Resolve(nil, Named{"v", Lit(2.5)})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.MustColumn("v"), []float64{2.5}) {
		t.Fatalf("scalar without table should have one row; got %v", res.MustColumn("v"))
	}
}

func TestResolveCollection(t *testing.T) {
	res, names, err := Resolve(nil, Named{"x", Of([]int{1, 2})}, Named{"y", Values([]string{"a", "b"})})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"x", "y"}) || res.Len() != 2 {
		t.Fatalf("want 2 rows of x, y; got %v with %d rows", names, res.Len())
	}
}

func TestResolveHeightMismatch(t *testing.T) {
	warn := captureWarnings(t)
	res, names, err := Resolve(nil,
		Named{"a", Of(make([]int, 5))},
		Named{"b", Of(make([]int, 7))},
		Named{"c", Lit("k")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() != 0 {
		t.Fatalf("mismatched collections should resolve to an empty table; got %d rows", res.Len())
	}
	if len(names) != 3 {
		t.Fatalf("want 3 names; got %v", names)
	}
	if !strings.Contains(warn.String(), "does not match") {
		t.Fatalf("mismatch should be logged; got %q", warn.String())
	}

	// A collection that disagrees with the table drops the
	// table's columns.
	res, _, err = Resolve(xy(), Named{"z", Of([]int{1, 2})})
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() != 2 || res.Column("x") != nil {
		t.Fatalf("want only z with 2 rows; got columns %v with %d rows", res.Columns(), res.Len())
	}
}

func TestResolveDuplicateWarns(t *testing.T) {
	warn := captureWarnings(t)
	_, names, err := Resolve(xy(), Named{"x", Col("x")}, Named{"x2", Col("x")})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"x", "x"}) {
		t.Fatalf("want duplicate names; got %v", names)
	}
	if !strings.Contains(warn.String(), "more than one spec") {
		t.Fatalf("duplicate should be logged; got %q", warn.String())
	}
}

func TestResolveErrors(t *testing.T) {
	_, _, err := Resolve(xy(), Named{"x", Col("nope")})
	var mc *MissingColumnError
	if !errors.As(err, &mc) || mc.Name != "nope" {
		t.Fatalf("want MissingColumnError for nope; got %v", err)
	}
	_, _, err = Resolve(nil, Named{"x", Col("x")})
	if err != ErrNoData {
		t.Fatalf("want ErrNoData; got %v", err)
	}
	_, _, err = Resolve(xy(), Named{"c", FactorCmap("missing", nil)})
	if !errors.As(err, &mc) {
		t.Fatalf("derived spec over missing column should fail; got %v", err)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := XY("x", "y")
	if got := tmpl.String(); got != "x={x}<br>y={y}" {
		t.Fatalf("XY should format as x={x}<br>y={y}; got %s", got)
	}
	if got := ParseTemplate(tmpl.String()); !reflect.DeepEqual(got, tmpl) {
		t.Fatalf("parse of %s should round trip; got %#v", tmpl, got)
	}
	tmpl = tmpl.Append("cat")
	if got := tmpl.String(); got != "x={x}<br>y={y}<br>cat={cat}" {
		t.Fatalf("Append gave %s", got)
	}

	vals, err := XY("x", "y").Eval(xy())
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"x=1<br>y=10", "x=2<br>y=5", "x=3<br>y=8"}; !reflect.DeepEqual(vals, want) {
		t.Fatalf("Eval should be %v; got %v", want, vals)
	}

	if got := ParseTemplate("a {} {b").String(); got != "a {} {b" {
		t.Fatalf("stray braces should be literal; got %q", got)
	}
}

func TestFactorCmap(t *testing.T) {
	tab := new(table.Builder).Add("cat", []string{"b", "a", "b"}).Done()
	spec := FactorCmap("cat", style.List{"red", "blue"})
	if !IsField(spec) || !reflect.DeepEqual(Underlying(spec), []string{"cat"}) {
		t.Fatalf("FactorCmap should be a field over cat")
	}
	res, name, err := Apply(tab, spec)
	if err != nil {
		t.Fatal(err)
	}
	if name != "plotkit.factor_cmap.cat" {
		t.Fatalf("unexpected column name %q", name)
	}
	// Sorted factors: a=red, b=blue.
	if want := []string{"blue", "red", "blue"}; !reflect.DeepEqual(res.MustColumn(name), want) {
		t.Fatalf("colors should be %v; got %v", want, res.MustColumn(name))
	}

	res, name, err = Apply(tab, FactorMarker("cat"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"square", "circle", "square"}; !reflect.DeepEqual(res.MustColumn(name), want) {
		t.Fatalf("markers should be %v; got %v", want, res.MustColumn(name))
	}

	_, _, err = Apply(tab, FactorMap("m", "cat", map[interface{}]interface{}{"a": 1}))
	if err == nil {
		t.Fatalf("FactorMap with a missing key should fail")
	}
}
