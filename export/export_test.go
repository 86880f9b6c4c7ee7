// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

func lineData() *table.Table {
	return new(table.Builder).
		Add("x", []float64{1, 2, 3, 4}).
		Add("y", []float64{2, 4, 1, 3}).
		Add("g", []string{"a", "a", "b", "b"}).
		Done()
}

func render(t *testing.T, p plot.Renderable) scene.Item {
	t.Helper()
	r, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	return r.Item
}

// quadFigure returns a 100x80 figure whose unit ranges are covered up
// to x=right by a red quad.
func quadFigure(right float64) *scene.Figure {
	fig := scene.NewFigure()
	fig.Width, fig.Height, fig.MinBorder = 100, 80, 0
	fig.XRange = scene.NewFixedRange(0, 1)
	fig.YRange = scene.NewFixedRange(0, 1)
	src := scene.NewSource(new(table.Builder).Add("n", []int{0}).Done())
	fig.AddGlyph(src, scene.Glyph{
		Kind:   scene.Quad,
		Values: map[string]interface{}{"left": 0.0, "right": right, "top": 1.0, "bottom": 0.0},
		Style:  style.Props{style.FillColor: "#ff0000", style.LineColor: style.None},
	}, scene.RendererOptions{})
	return fig
}

func TestSVG(t *testing.T) {
	item := render(t, plot.New(lineData()).
		Add(glyph.Line(field.Col("x"), field.Col("y"))).
		WithTitle(plot.TitleSpec{Text: "Lines & dots"}))
	var buf bytes.Buffer
	if err := SVG(&buf, item, Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "<path", `clip-path="url(#clip1)"`, "Lines &amp; dots", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
	if strings.Contains(out, "<title>") {
		t.Errorf("SVG has tooltips though Tooltips is off")
	}
}

func TestSVGTooltips(t *testing.T) {
	item := render(t, plot.New(lineData()).
		Add(glyph.Scatter(field.Col("x"), field.Col("y")).WithTooltip("x is {x}")))
	var buf bytes.Buffer
	if err := SVG(&buf, item, Options{Tooltips: true}); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "<title>x is "); n != 4 {
		t.Errorf("want 4 tooltips; got %d", n)
	}
}

func TestEmpty(t *testing.T) {
	if err := SVG(new(bytes.Buffer), nil, Options{}); err != ErrEmpty {
		t.Errorf("SVG(nil): want ErrEmpty; got %v", err)
	}
	if err := PNG(new(bytes.Buffer), nil, Options{}); err != ErrEmpty {
		t.Errorf("PNG(nil): want ErrEmpty; got %v", err)
	}
}

func TestRaster(t *testing.T) {
	img, err := Raster(quadFigure(0.5), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 100 || got.Y != 80 {
		t.Fatalf("want 100x80 image; got %v", got)
	}
	red := color.RGBA{255, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	if got := img.RGBAAt(25, 40); got != red {
		t.Errorf("inside quad: want %v; got %v", red, got)
	}
	if got := img.RGBAAt(75, 40); got != white {
		t.Errorf("outside quad: want %v; got %v", white, got)
	}
}

func TestRasterScale(t *testing.T) {
	img, err := Raster(quadFigure(1), Options{Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 200 || got.Y != 160 {
		t.Errorf("want 200x160 image; got %v", got)
	}
	img, err = Raster(quadFigure(1), Options{Thumbnail: 50})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 50 || got.Y != 40 {
		t.Errorf("want 50x40 thumbnail; got %v", got)
	}
}

func TestPNG(t *testing.T) {
	item := render(t, plot.New(lineData()).
		Add(glyph.Scatter(field.Col("x"), field.Col("y")).WithLegend("pts")))
	var buf bytes.Buffer
	if err := PNG(&buf, item, Options{}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	w, h, _ := itemSize(item)
	if got := img.Bounds().Size(); got.X < int(w) || got.Y < int(h) {
		t.Errorf("image is %v; want at least %vx%v", got, w, h)
	}
}

func TestTicks(t *testing.T) {
	cat := newAxisMap(extent{lo: 0, hi: 3, factors: []string{"a", "b", "c"}}, false, 0, 300)
	major, minor, labels := cat.ticks(6)
	if want := []float64{0.5, 1.5, 2.5}; !reflect.DeepEqual(major, want) {
		t.Errorf("categorical major ticks: want %v; got %v", want, major)
	}
	if minor != nil {
		t.Errorf("categorical minor ticks: want none; got %v", minor)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("categorical labels: want %v; got %v", want, labels)
	}

	lg := newAxisMap(extent{lo: 1, hi: 1000}, true, 0, 300)
	major, _, labels = lg.ticks(6)
	if want := []float64{1, 10, 100, 1000}; !reflect.DeepEqual(major, want) {
		t.Errorf("log major ticks: want %v; got %v", want, major)
	}
	if want := []string{"1e0", "1e1", "1e2", "1e3"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("log labels: want %v; got %v", want, labels)
	}
	if got := lg.num(10); math.Abs(got-100) > 1e-9 {
		t.Errorf("log position of 10: want 100; got %v", got)
	}
}

func TestPos(t *testing.T) {
	m := newAxisMap(extent{lo: 0, hi: 2, factors: []string{"a", "b"}}, false, 0, 200)
	for _, test := range []struct {
		v      interface{}
		offset float64
		want   float64
		ok     bool
	}{
		{"a", 0, 50, true},
		{"b", 0.25, 175, true},
		{"c", 0, 0, false},
		{nil, 0, 0, false},
		{1.0, 0.5, 150, true},
	} {
		got, ok := m.pos(test.v, test.offset)
		if got != test.want || ok != test.ok {
			t.Errorf("pos(%v, %v): want %v, %v; got %v, %v", test.v, test.offset, test.want, test.ok, got, ok)
		}
	}

	// Pixels grow downward on y.
	y := newAxisMap(extent{lo: 0, hi: 10}, false, 100, 0)
	if got, _ := y.pos(10, 0.3); got != 0 {
		t.Errorf("numeric axes ignore offsets: want 0; got %v", got)
	}
}

func TestSharedRange(t *testing.T) {
	mk := func(ys []float64) *scene.Figure {
		fig := scene.NewFigure()
		src := scene.NewSource(new(table.Builder).Add("x", []float64{0, 1}).Add("y", ys).Done())
		fig.AddGlyph(src, scene.Glyph{Kind: scene.Line, Fields: map[string]string{"x": "x", "y": "y"}}, scene.RendererOptions{})
		return fig
	}
	a, b := mk([]float64{0, 10}), mk([]float64{0, 100})
	b.YRange = a.YRange
	ext := resolveRanges([]*scene.Figure{a, b})
	ea, eb := ext[rangeKey{a.YRange, scene.Y}], ext[rangeKey{b.YRange, scene.Y}]
	if ea.hi < 100 || !reflect.DeepEqual(ea, eb) {
		t.Errorf("shared range should cover both figures: %+v, %+v", ea, eb)
	}
	if ex := ext[rangeKey{a.XRange, scene.X}]; ex.hi >= 100 {
		t.Errorf("x ranges are not shared: %+v", ex)
	}
}

func TestSteps(t *testing.T) {
	xs, ys := []float64{0, 1, 2}, []float64{0, 1, 0}
	for _, test := range []struct {
		mode   glyph.StepMode
		wx, wy []float64
	}{
		{glyph.StepAfter, []float64{0, 1, 1, 2, 2}, []float64{0, 0, 1, 1, 0}},
		{glyph.StepBefore, []float64{0, 0, 1, 1, 2}, []float64{0, 1, 1, 0, 0}},
		{glyph.StepCenter, []float64{0, 0.5, 0.5, 1, 1.5, 1.5, 2}, []float64{0, 0, 1, 1, 1, 0, 0}},
	} {
		gx, gy := steps(xs, ys, string(test.mode))
		if !reflect.DeepEqual(gx, test.wx) || !reflect.DeepEqual(gy, test.wy) {
			t.Errorf("%s: want %v %v; got %v %v", test.mode, test.wx, test.wy, gx, gy)
		}
	}
}

func TestFontSize(t *testing.T) {
	for _, test := range []struct {
		v    interface{}
		want float64
	}{
		{"11px", 11},
		{"9pt", 12},
		{"2em", 24},
		{14, 14},
		{"0px", 0},
		{"big", 12},
		{nil, 12},
	} {
		if got := fontSize(test.v, 12); got != test.want {
			t.Errorf("fontSize(%v): want %v; got %v", test.v, test.want, got)
		}
	}
}

func TestLegendText(t *testing.T) {
	src := scene.NewSource(lineData())
	fig := scene.NewFigure()
	r := fig.AddGlyph(src, scene.Glyph{Kind: scene.Line}, scene.RendererOptions{})
	it := scene.NewLegendItem(scene.Label{Field: true, Text: "g"}, r)
	it.Index = 2
	if got := legendText(it); got != "b" {
		t.Errorf("field label: want b; got %q", got)
	}
	if got := legendText(scene.NewLegendItem(scene.ValueLabel("lit"), r)); got != "lit" {
		t.Errorf("value label: want lit; got %q", got)
	}
}

func TestHTML(t *testing.T) {
	item := render(t, plot.New(lineData()).Add(glyph.Line(field.Col("x"), field.Col("y"))))

	var buf bytes.Buffer
	err := HTML(&buf, item, Page{Title: "Demo", Description: "# Results\n\nSome *text*."})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<title>Demo</title>", "<h1>Results</h1>", "<em>text</em>", "<style>", "<svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("inline page missing %q", want)
		}
	}
	if strings.Contains(out, "<?xml") {
		t.Errorf("page embeds an XML declaration")
	}

	buf.Reset()
	if err := HTML(&buf, item, Page{ResourceRoot: "/static/"}); err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	if !strings.Contains(out, `href="/static/plotkit.css"`) || strings.Contains(out, "<style>") {
		t.Errorf("resource page should link its stylesheet:\n%s", out)
	}
}

func TestGG(t *testing.T) {
	fig := render(t, plot.New(lineData()).
		Add(glyph.Line(field.Col("x"), field.Col("y")),
			glyph.Scatter(field.Col("x"), field.Col("y"))).
		WithXAxis(plot.AxisSpec{Label: "time"})).(*scene.Figure)
	p, err := GG(fig)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("GG returned a nil plot")
	}

	bars := quadFigure(1)
	if _, err := GG(bars); err != ErrEmpty {
		t.Errorf("figure without go-gg layers: want ErrEmpty; got %v", err)
	}
}
