// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"image/color"
	"reflect"
	"testing"
)

func TestMergeDoesNotAlias(t *testing.T) {
	base := Props{LineColor: "red", LineWidth: 1}
	merged := base.Merge(Props{LineWidth: 3}, Line{Dash: "dashed"}.Props())

	want := Props{LineColor: "red", LineWidth: 3, LineDash: "dashed"}
	if !merged.Equal(want) {
		t.Fatalf("merged should be %v; got %v", want, merged)
	}
	if base[LineWidth] != 1 || base.Has(LineDash) {
		t.Fatalf("Merge modified its receiver: %v", base)
	}

	w := merged.Without(LineColor)
	if w.Has(LineColor) || !merged.Has(LineColor) {
		t.Fatalf("Without should only affect the copy")
	}
	if got := merged.Only(LineColor, FillColor); !reflect.DeepEqual(got, Props{LineColor: "red"}) {
		t.Fatalf("Only should be map[line_color:red]; got %v", got)
	}
}

func TestRecords(t *testing.T) {
	p := Fill{Color: "#000"}.Props()
	if !reflect.DeepEqual(p, Props{FillColor: "#000"}) {
		t.Fatalf("unset record fields should be omitted; got %v", p)
	}
	tp := Text{FontSize: "12px"}.Props().Prefixed("axis_label_")
	if tp.String("axis_label_text_font_size", "") != "12px" {
		t.Fatalf("Prefixed lost a key: %v", tp)
	}
	if got := (Props{Size: 4}).Float(Size, 0); got != 4 {
		t.Fatalf("Float of int should be 4; got %v", got)
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff0000", color.NRGBA{0xff, 0, 0, 0xff}, true},
		{"#0f0", color.NRGBA{0, 0xff, 0, 0xff}, true},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}, true},
		{"White", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"none", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	} {
		got, ok, err := ParseColor(test.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", test.in, err)
			continue
		}
		if got != test.want || ok != test.ok {
			t.Errorf("ParseColor(%q) should be %v, %v; got %v, %v", test.in, test.want, test.ok, got, ok)
		}
	}
	if _, _, err := ParseColor("#12"); err == nil {
		t.Errorf("ParseColor(\"#12\") should fail")
	}
	if got := Hex(color.RGBA{0x12, 0x34, 0x56, 0xff}); got != "#123456" {
		t.Errorf("Hex should be #123456; got %s", got)
	}
}

func TestPalettes(t *testing.T) {
	hues := Hue(4)
	if len(hues) != 4 {
		t.Fatalf("Hue(4) should have 4 colors; got %v", hues)
	}
	seen := map[string]bool{}
	for _, h := range hues {
		if seen[h] {
			t.Fatalf("Hue(4) repeats %s: %v", h, hues)
		}
		seen[h] = true
	}

	set1, err := Named("Set1").Colors(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(set1) != 3 || set1[0] == set1[1] {
		t.Fatalf("Set1 with 3 levels should be 3 distinct colors; got %v", set1)
	}
	many, err := Named("Set1").Colors(40)
	if err != nil || len(many) != 40 {
		t.Fatalf("large Set1 should cycle; got %v, %v", many, err)
	}

	if _, err := Named("NoSuchPalette").Colors(2); err == nil {
		t.Fatalf("unknown palette should fail")
	}

	got, _ := List{"a", "b"}.Colors(3)
	if want := []string{"a", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List should cycle to %v; got %v", want, got)
	}

	v, _ := Named("Viridis").Colors(2)
	if v[0] == v[1] {
		t.Fatalf("Viridis endpoints should differ: %v", v)
	}
}
