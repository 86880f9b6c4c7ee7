// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
)

// A Palette produces n colors for n factors.
type Palette interface {
	Colors(n int) ([]string, error)
}

// List is an explicit palette. It repeats when more colors are
// requested than it holds.
type List []string

func (l List) Colors(n int) ([]string, error) {
	if len(l) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	out := make([]string, n)
	for i := range out {
		out[i] = l[i%len(l)]
	}
	return out, nil
}

// Named is a palette referred to by name. It may name any ColorBrewer
// palette (for example "Set1" or "Blues"), a continuous palette
// ("Viridis", "Gray"), or "Hue" for evenly spaced hues.
type Named string

func (name Named) Colors(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative palette size %d", n)
	}
	switch strings.ToLower(string(name)) {
	case "", "hue":
		return Hue(n), nil
	case "viridis":
		return Sample(palette.Viridis, n), nil
	case "gray", "grey":
		return Sample(palette.RGBGradient{Colors: []color.RGBA{{0, 0, 0, 0xff}, {0xff, 0xff, 0xff, 0xff}}}, n), nil
	}
	levels, ok := brewer.ByName[string(name)]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", string(name))
	}
	// Use the smallest variant that has at least n levels, or the
	// largest variant repeated.
	sizes := make([]int, 0, len(levels))
	for k := range levels {
		sizes = append(sizes, k)
	}
	sort.Ints(sizes)
	best := sizes[len(sizes)-1]
	for _, k := range sizes {
		if k >= n {
			best = k
			break
		}
	}
	var base List
	for _, c := range levels[best] {
		base = append(base, Hex(c))
	}
	return base.Colors(n)
}

// Sample returns n colors evenly spaced along a continuous palette.
func Sample(p palette.Continuous, n int) []string {
	out := make([]string, n)
	for i := range out {
		x := 0.5
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		out[i] = Hex(p.Map(x))
	}
	return out
}

// Hue returns n colors of equal lightness and chroma with evenly
// spaced hues, starting at 15 degrees.
func Hue(n int) []string {
	const l, c, h0 = 65.0, 100.0, 15.0
	out := make([]string, n)
	for i := range out {
		h := h0 + 360*float64(i)/float64(n)
		out[i] = Hex(hcl(h, c, l))
	}
	return out
}

// hcl converts a polar CIE-LUV color to sRGB.
func hcl(h, c, l float64) color.Color {
	const (
		kappa      = 903.2962962962963
		xn, yn, zn = 95.047, 100.0, 108.883
	)
	hr := h * math.Pi / 180
	u, v := c*math.Cos(hr), c*math.Sin(hr)

	var y float64
	if l > 8 {
		y = yn * math.Pow((l+16)/116, 3)
	} else {
		y = yn * l / kappa
	}
	l = math.Max(l, 1e-15)
	t := xn + yn + zn
	x0, y0 := xn/t, yn/t
	un := 2 * x0 / (6*y0 - x0 + 1.5)
	vn := 4.5 * y0 / (6*y0 - x0 + 1.5)
	uu := u/(13*l) + un
	vv := v/(13*l) + vn
	x := 9 * y * uu / (4 * vv)
	z := -x/3 - 5*y + 3*y/vv

	lin := [3]float64{
		(3.240479*x - 1.537150*y - 0.498535*z) / yn,
		(-0.969256*x + 1.875992*y + 0.041556*z) / yn,
		(0.055648*x - 0.204043*y + 1.057311*z) / yn,
	}
	var rgb [3]uint8
	for i, val := range lin {
		if val > 0.00304 {
			val = 1.055*math.Pow(val, 1/2.4) - 0.055
		} else {
			val = 12.92 * val
		}
		val = math.Max(0, math.Min(1, val))
		rgb[i] = uint8(math.Round(val * 255))
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}
}
