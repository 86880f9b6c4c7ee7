// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/ajstarks/svgo"
	"github.com/aclements/go-plotkit/scene"
)

// SVG writes item to w as an SVG document.
func SVG(w io.Writer, item scene.Item, opts Options) error {
	d, err := newDrawing(item, opts)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	s := &svgPainter{svg: svg.New(bw)}
	s.svg.Start(int(math.Ceil(d.w)), int(math.Ceil(d.h)),
		`font-family="Helvetica,Arial,sans-serif"`)
	d.draw(s)
	s.svg.End()
	return bw.Flush()
}

type svgPainter struct {
	svg   *svg.SVG
	clips int
}

func svgColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// paint returns the style of p.
func (s *svgPainter) paint(p pen) string {
	var b strings.Builder
	if p.fill.A == 0 {
		b.WriteString("fill:none")
	} else {
		fmt.Fprintf(&b, "fill:%s", svgColor(p.fill))
		if p.fill.A != 255 {
			fmt.Fprintf(&b, ";fill-opacity:%.3g", float64(p.fill.A)/255)
		}
	}
	if p.stroke.A == 0 || p.width <= 0 {
		b.WriteString(";stroke:none")
		return b.String()
	}
	fmt.Fprintf(&b, ";stroke:%s;stroke-width:%.3g", svgColor(p.stroke), p.width)
	if p.stroke.A != 255 {
		fmt.Fprintf(&b, ";stroke-opacity:%.3g", float64(p.stroke.A)/255)
	}
	if len(p.dash) > 0 {
		ds := make([]string, len(p.dash))
		for i, d := range p.dash {
			ds[i] = fmt.Sprintf("%.3g", d)
		}
		fmt.Fprintf(&b, ";stroke-dasharray:%s", strings.Join(ds, ","))
	}
	return b.String()
}

func px(v float64) int { return int(math.Round(v)) }

func (s *svgPainter) rect(x, y, w, h float64, p pen) {
	// svgo rectangles take integer coordinates, which misplace
	// thin bars, so draw a path instead.
	s.svg.Path(fmt.Sprintf("M%.2f %.2fh%.2fv%.2fh%.2fZ", x, y, w, h, -w), s.paint(p))
}

func (s *svgPainter) path(xs, ys []float64, closed bool, p pen) {
	if len(xs) == 0 {
		return
	}
	var b strings.Builder
	for i := range xs {
		op := 'L'
		if i == 0 {
			op = 'M'
		}
		fmt.Fprintf(&b, "%c%.2f %.2f", op, xs[i], ys[i])
	}
	if closed {
		b.WriteByte('Z')
	} else {
		p.fill = color.NRGBA{}
	}
	s.svg.Path(b.String(), s.paint(p))
}

func (s *svgPainter) circle(cx, cy, r float64, p pen) {
	// Two arcs, for the same reason as rect.
	d := fmt.Sprintf("M%.2f %.2fa%.2f %.2f 0 1 0 %.2f 0a%.2f %.2f 0 1 0 %.2f 0Z",
		cx-r, cy, r, r, 2*r, r, r, -2*r)
	s.svg.Path(d, s.paint(p))
}

func (s *svgPainter) text(x, y float64, str string, f font) {
	if str == "" || f.size <= 0 || f.color.A == 0 {
		return
	}
	attrs := []string{
		fmt.Sprintf(`font-size="%.3gpx"`, f.size),
		`dy=".35em"`,
		fmt.Sprintf(`fill="%s"`, svgColor(f.color)),
	}
	if f.color.A != 255 {
		attrs = append(attrs, fmt.Sprintf(`fill-opacity="%.3g"`, float64(f.color.A)/255))
	}
	switch f.anchor {
	case anchorMiddle:
		attrs = append(attrs, `text-anchor="middle"`)
	case anchorEnd:
		attrs = append(attrs, `text-anchor="end"`)
	}
	if f.bold {
		attrs = append(attrs, `font-weight="bold"`)
	}
	if f.rotate != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%d %d %d)"`, f.rotate, px(x), px(y)))
	}
	s.svg.Text(px(x), px(y), str, strings.Join(attrs, " "))
}

func (s *svgPainter) clip(x, y, w, h float64) {
	s.clips++
	id := fmt.Sprintf("clip%d", s.clips)
	s.svg.ClipPath(`id="` + id + `"`)
	s.svg.Path(fmt.Sprintf("M%.2f %.2fh%.2fv%.2fh%.2fZ", x, y, w, h, -w))
	s.svg.ClipEnd()
	s.svg.Group(`clip-path="url(#` + id + `)"`)
}

func (s *svgPainter) unclip() { s.svg.Gend() }

func (s *svgPainter) beginTip(tip string) {
	s.svg.Group()
	s.svg.Title(tip)
}

func (s *svgPainter) endTip() { s.svg.Gend() }
