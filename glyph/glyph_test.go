// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

func canvas(data *table.Table) *Canvas {
	return &Canvas{Figure: scene.NewFigure(), Legend: scene.NewLegend(), Data: data}
}

func TestLineScenario(t *testing.T) {
	data := new(table.Builder).
		Add("x", []int{1, 2, 3}).
		Add("y", []int{10, 5, 8}).
		Done()
	c := canvas(data)
	if err := Line(field.Col("x"), field.Col("y")).Draw(c); err != nil {
		t.Fatal(err)
	}
	if len(c.Figure.Renderers) != 1 {
		t.Fatalf("want 1 renderer; got %d", len(c.Figure.Renderers))
	}
	r := c.Figure.Renderers[0]
	if want := map[string]string{"x": "x", "y": "y"}; !reflect.DeepEqual(r.Glyph.Fields, want) {
		t.Fatalf("fields should be %v; got %v", want, r.Glyph.Fields)
	}
	if !r.HasTag(RendererTag) || !r.HasTag(TooltipTag) {
		t.Fatalf("renderer should carry renderer and tooltip tags; got %v", r.Tags)
	}
	tips := r.Source.Table.MustColumn(TooltipColumn)
	if want := []string{"x=1<br>y=10", "x=2<br>y=5", "x=3<br>y=8"}; !reflect.DeepEqual(tips, want) {
		t.Fatalf("tooltips should be %v; got %v", want, tips)
	}
}

func catTable() *table.Table {
	return new(table.Builder).
		Add("x", []float64{1, 2, 3}).
		Add("y", []float64{4, 5, 6}).
		Add("cat", []string{"a", "a", "b"}).
		Done()
}

func TestReducingGroups(t *testing.T) {
	c := canvas(catTable())
	cmap := field.FactorCmap("cat", style.List{"red", "blue"})
	spec := Scatter(field.Col("x"), field.Col("y")).WithFill(style.Fill{Color: cmap})
	if err := spec.Draw(c); err != nil {
		t.Fatal(err)
	}
	rs := c.Figure.Renderers
	if len(rs) != 2 {
		t.Fatalf("want one renderer per group; got %d", len(rs))
	}
	for i, want := range []struct {
		color string
		rows  int
	}{{"red", 2}, {"blue", 1}} {
		st := rs[i].Glyph.Style
		if st[style.FillColor] != want.color || st[style.LineColor] != want.color {
			t.Errorf("group %d should be %s; got %v", i, want.color, st)
		}
		if n := rs[i].Source.Table.Len(); n != want.rows {
			t.Errorf("group %d should have %d rows; got %d", i, want.rows, n)
		}
	}
	tips := rs[1].Source.Table.MustColumn(TooltipColumn)
	if want := []string{"x=3<br>y=6<br>cat=b"}; !reflect.DeepEqual(tips, want) {
		t.Fatalf("grouped tooltip should be %v; got %v", want, tips)
	}
}

func TestReducingCounts(t *testing.T) {
	data := catTable()
	g := scene.Glyph{Kind: scene.Line, Fields: map[string]string{"x": "x", "y": "y"}}

	n, err := RenderReducing(canvas(data), data, g, style.Props{}, ReduceOptions{})
	if err != nil || n != 1 {
		t.Fatalf("no field props should render once; got %d, %v", n, err)
	}

	// A field prop over a constant column is a single group.
	one := new(table.Builder).Add("x", []int{1, 2}).Add("k", []string{"z", "z"}).Done()
	n, err = RenderReducing(canvas(one), one, g, style.Props{style.LineColor: field.FactorCmap("k", nil)}, ReduceOptions{})
	if err != nil || n != 1 {
		t.Fatalf("single group should render once; got %d, %v", n, err)
	}

	// Two field props over different columns group by both.
	props := style.Props{
		style.LineColor: field.FactorCmap("cat", nil),
		style.LineDash:  field.FactorMap("dash", "x", map[interface{}]interface{}{1: "solid", 2: "dashed", 3: "dotted"}),
	}
	n, err = RenderReducing(canvas(data), data, g, props, ReduceOptions{})
	if err != nil || n != 3 {
		t.Fatalf("want 3 groups; got %d, %v", n, err)
	}
}

func TestReducingConstantDerived(t *testing.T) {
	data := catTable()
	g := scene.Glyph{Kind: scene.Line, Fields: map[string]string{"x": "x", "y": "y"}}
	constant := field.Derived{Name: "const", Fn: func(t *table.Table) (table.Slice, error) {
		out := make([]string, t.Len())
		for i := range out {
			out[i] = "red"
		}
		return out, nil
	}}
	c := canvas(data)
	n, err := RenderReducing(c, data, g, style.Props{style.LineColor: constant}, ReduceOptions{})
	if err != nil || n != 1 {
		t.Fatalf("a derived prop reading no columns should render once; got %d, %v", n, err)
	}
	r := c.Figure.Renderers[0]
	if got := r.Glyph.Style[style.LineColor]; got != scene.FieldRef("const") {
		t.Fatalf("line color should refer to the derived column; got %v", got)
	}
	if got, want := r.Source.Table.MustColumn("const"), []string{"red", "red", "red"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("derived column should be %v; got %v", want, got)
	}

	bad := field.Derived{Name: "short", Fn: func(*table.Table) (table.Slice, error) {
		return []string{"red"}, nil
	}}
	if _, err := RenderReducing(canvas(data), data, g, style.Props{style.LineColor: bad}, ReduceOptions{}); err == nil {
		t.Fatal("a derived prop of the wrong length should fail")
	}
}

func TestLegendBinding(t *testing.T) {
	if _, err := NewLegendBinding("a", "b"); err != ErrLegendConflict {
		t.Fatalf("want ErrLegendConflict; got %v", err)
	}
	if err := Line(1, 2).WithLegendBinding("a", "b").Draw(canvas(nil)); err != ErrLegendConflict {
		t.Fatalf("Draw should report the conflict; got %v", err)
	}

	c := canvas(catTable())
	if err := Line(field.Col("x"), field.Col("y")).WithLegend("L").Draw(c); err != nil {
		t.Fatal(err)
	}
	if err := Scatter(field.Col("x"), field.Col("y")).WithLegend("L").Draw(c); err != nil {
		t.Fatal(err)
	}
	if len(c.Legend.Items) != 1 || len(c.Legend.Items[0].Renderers) != 2 {
		t.Fatalf("same label should share one item")
	}

	c = canvas(catTable())
	if err := Scatter(field.Col("x"), field.Col("y")).WithLegendGroup("cat").Draw(c); err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, it := range c.Legend.Items {
		labels = append(labels, it.Label.Text)
	}
	if want := []string{"cat=a", "cat=b"}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("group labels should be %v; got %v", want, labels)
	}

	err := Scatter(field.Col("x"), field.Col("y")).WithLegendGroup("nope").Draw(canvas(catTable()))
	var mc *field.MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("legend group on a missing column should fail; got %v", err)
	}
}

func TestLegendGroupFlattensLists(t *testing.T) {
	data := new(table.Builder).
		Add("x", []int{1, 2}).
		Add("tags", [][]string{{"p", "q"}, {"q", "r"}}).
		Done()
	fig, leg := scene.NewFigure(), scene.NewLegend()
	_, err := Render(data, scene.Glyph{Kind: scene.Scatter}, fig, RenderOptions{
		Legend:  leg,
		Binding: &LegendBinding{Group: true, Value: "tags"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(leg.Items) != 3 || leg.Items[2].Label.Text != "tags=r" {
		t.Fatalf("want items for p, q, r; got %d items", len(leg.Items))
	}
}

func TestFacetFilter(t *testing.T) {
	data := catTable()
	fig := scene.NewFigure()
	r, err := Render(data, scene.Glyph{Kind: scene.Line}, fig, RenderOptions{Filter: map[string]interface{}{"cat": "a"}})
	if err != nil {
		t.Fatal(err)
	}
	if r.Source.Table.Len() != 2 {
		t.Fatalf("filter should keep 2 rows; got %d", r.Source.Table.Len())
	}
	r, _ = Render(data, scene.Glyph{Kind: scene.Line}, fig, RenderOptions{Filter: map[string]interface{}{"cat": "a", "other": 1}})
	if r.Source.Table.Len() != 3 {
		t.Fatalf("filter on a missing column should pass through; got %d rows", r.Source.Table.Len())
	}
}

func TestBuildersCopy(t *testing.T) {
	base := Line(field.Col("x"), field.Col("y"))
	red := base.WithLine(style.Line{Color: "red"})
	if base.Style().Has(style.LineColor) {
		t.Fatalf("builder modified its receiver")
	}
	if red.Style()[style.LineColor] != "red" {
		t.Fatalf("builder lost its change")
	}

	c := canvas(catTable())
	if err := base.WithoutTooltip().Draw(c); err != nil {
		t.Fatal(err)
	}
	r := c.Figure.Renderers[0]
	if r.HasTag(TooltipTag) || r.Source.Table.Column(TooltipColumn) != nil {
		t.Fatalf("WithoutTooltip should drop tooltips")
	}

	if err := Segment(0, 0, 1, 1).Draw(c); err != nil {
		t.Fatal(err)
	}
	if n := c.Figure.Renderers[1].Source.Table.Len(); n != 1 {
		t.Fatalf("segment should have one row; got %d", n)
	}
}
