// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export draws rendered scenes as SVG, PNG and HTML, and
// converts figures to go-gg plots.
//
// The SVG and PNG writers share one drawing pass: the scene is laid
// out with go-gg's layout package, each figure's ranges are resolved
// against every renderer sharing them, and the result is drawn
// through a small painter interface implemented by each backend.
package export

import (
	"errors"
	"image/color"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// Warning is a logger for conditions that do not stop an export but
// may lead to unexpected output.
var Warning = log.New(os.Stderr, "[export] ", log.Lshortfile)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("nothing to export")

// Default figure size in pixels, used for figures that do not set
// one.
const (
	DefaultWidth  = 600
	DefaultHeight = 600
)

// defaultColor is the stroke and fill of glyphs that set no color.
const defaultColor = "#1f77b4"

// Options control SVG and PNG output.
type Options struct {
	// Scale multiplies the pixel size of PNG output. 0 means 1.
	Scale float64

	// Thumbnail, if positive, downscales PNG output so its width
	// is at most Thumbnail pixels.
	Thumbnail int

	// Tooltips adds hover titles to SVG glyphs that have tooltips.
	Tooltips bool
}

// pen is a stroke and fill. A color with zero alpha is not drawn.
type pen struct {
	stroke, fill color.NRGBA
	width        float64
	dash         []float64
}

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

// font describes a run of text. Text is vertically centered on its
// position.
type font struct {
	color  color.NRGBA
	size   float64
	anchor anchor
	rotate int // degrees: 0, 90 or -90
	bold   bool
}

// painter is the drawing surface of a backend. Coordinates are in
// pixels with the origin at the top left.
type painter interface {
	rect(x, y, w, h float64, p pen)
	path(xs, ys []float64, closed bool, p pen)
	circle(cx, cy, r float64, p pen)
	text(x, y float64, s string, f font)

	// clip restricts drawing to a rectangle until unclip.
	clip(x, y, w, h float64)
	unclip()

	// beginTip and endTip bracket the marks of one data row with
	// a tooltip.
	beginTip(s string)
	endTip()
}

// parseColor converts a style value to a color with its alpha scaled
// by alpha. Unknown colors are logged and drawn in def.
func parseColor(v interface{}, alpha float64, def string) color.NRGBA {
	s, ok := v.(string)
	if !ok {
		if v != nil {
			Warning.Printf("color %v is not a string; using %s", v, def)
		}
		s = def
	}
	c, ok, err := style.ParseColor(s)
	if err != nil {
		Warning.Print(err)
		c, ok, _ = style.ParseColor(def)
	}
	if !ok {
		return color.NRGBA{}
	}
	c.A = uint8(math.Round(float64(c.A) * clamp01(alpha)))
	return c
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// fontSize parses sizes such as "11px", "10pt" or 12.
func fontSize(v interface{}, def float64) float64 {
	switch v := v.(type) {
	case string:
		s := strings.TrimSpace(v)
		mul := 1.0
		switch {
		case strings.HasSuffix(s, "px"):
			s = strings.TrimSuffix(s, "px")
		case strings.HasSuffix(s, "pt"):
			s, mul = strings.TrimSuffix(s, "pt"), 4.0/3
		case strings.HasSuffix(s, "em"):
			s, mul = strings.TrimSuffix(s, "em"), def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return f * mul
	case nil:
		return def
	}
	if f, ok := frame.ToFloat(v); ok {
		return f
	}
	return def
}

// dashes returns the dash pattern of a line_dash value.
func dashes(v interface{}) []float64 {
	switch v := v.(type) {
	case string:
		switch v {
		case "dashed":
			return []float64{6}
		case "dotted":
			return []float64{2, 4}
		case "dotdash":
			return []float64{2, 4, 6, 4}
		case "dashdot":
			return []float64{6, 4, 2, 4}
		}
	case []float64:
		return v
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out
	}
	return nil
}

// textWidth estimates the width of s in a font of the given size.
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.55
}

// plainText turns an HTML tooltip into plain text.
func plainText(s string) string {
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n").Replace(s)
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// itemSize returns the outer size of a laid-out scene item.
func itemSize(item scene.Item) (w, h float64, err error) {
	if item == nil {
		return 0, 0, ErrEmpty
	}
	root := buildLayout(item)
	w, h, _, _ = root.elem.SizeHint()
	return w, h, nil
}
