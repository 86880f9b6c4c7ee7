// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/go-plotkit/scene"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	xfixed "golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// PNG writes item to w as a PNG image.
//
// The raster backend draws solid lines only and does not rotate text.
func PNG(w io.Writer, item scene.Item, opts Options) error {
	img, err := Raster(item, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Raster draws item into a new image.
func Raster(item scene.Item, opts Options) (*image.RGBA, error) {
	d, err := newDrawing(item, opts)
	if err != nil {
		return nil, err
	}
	k := opts.Scale
	if k <= 0 {
		k = 1
	}
	b := image.Rect(0, 0, int(math.Ceil(d.w*k)), int(math.Ceil(d.h*k)))
	r := &rasterPainter{dst: image.NewRGBA(b), k: k, clipR: b}
	d.draw(r)
	img := r.dst

	if opts.Thumbnail > 0 && b.Dx() > opts.Thumbnail {
		tw := opts.Thumbnail
		th := max(1, b.Dy()*tw/b.Dx())
		small := image.NewRGBA(image.Rect(0, 0, tw, th))
		draw.BiLinear.Scale(small, small.Bounds(), img, b, draw.Over, nil)
		img = small
	}
	return img, nil
}

type rasterPainter struct {
	dst   *image.RGBA
	k     float64
	clipR image.Rectangle
	z     vector.Rasterizer
}

// shape is a set of closed polygons in device pixels.
type shape [][]float64 // x0, y0, x1, y1, ...

func (s shape) bounds() image.Rectangle {
	lo := [2]float64{math.Inf(1), math.Inf(1)}
	hi := [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, poly := range s {
		for i, v := range poly {
			lo[i%2] = math.Min(lo[i%2], v)
			hi[i%2] = math.Max(hi[i%2], v)
		}
	}
	if lo[0] > hi[0] {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(lo[0])), int(math.Floor(lo[1])), int(math.Ceil(hi[0]))+1, int(math.Ceil(hi[1]))+1)
}

// fill composites c over the pixels covered by s.
func (r *rasterPainter) fill(s shape, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	bb := s.bounds()
	vis := bb.Intersect(r.clipR)
	if vis.Empty() {
		return
	}
	r.z.Reset(bb.Dx(), bb.Dy())
	ox, oy := float64(bb.Min.X), float64(bb.Min.Y)
	for _, poly := range s {
		if len(poly) < 6 {
			continue
		}
		r.z.MoveTo(float32(poly[0]-ox), float32(poly[1]-oy))
		for i := 2; i+1 < len(poly); i += 2 {
			r.z.LineTo(float32(poly[i]-ox), float32(poly[i+1]-oy))
		}
		r.z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(r.dst, vis, image.NewUniform(c), image.Point{}, mask, vis.Min.Sub(bb.Min), draw.Over)
}

// strokeShape returns the outline of a polyline of width w as one quad
// per segment.
func strokeShape(xs, ys []float64, closed bool, w float64) shape {
	w = math.Max(w, 1) / 2
	var s shape
	seg := func(x0, y0, x1, y1 float64) {
		dx, dy := x1-x0, y1-y0
		l := math.Hypot(dx, dy)
		if l == 0 {
			return
		}
		nx, ny := -dy/l*w, dx/l*w
		s = append(s, []float64{x0 + nx, y0 + ny, x1 + nx, y1 + ny, x1 - nx, y1 - ny, x0 - nx, y0 - ny})
	}
	for i := 1; i < len(xs); i++ {
		seg(xs[i-1], ys[i-1], xs[i], ys[i])
	}
	if closed && len(xs) > 2 {
		seg(xs[len(xs)-1], ys[len(ys)-1], xs[0], ys[0])
	}
	return s
}

func (r *rasterPainter) scale(xs, ys []float64) (sx, sy []float64) {
	sx, sy = make([]float64, len(xs)), make([]float64, len(ys))
	for i := range xs {
		sx[i], sy[i] = xs[i]*r.k, ys[i]*r.k
	}
	return sx, sy
}

func (r *rasterPainter) rect(x, y, w, h float64, p pen) {
	r.path([]float64{x, x + w, x + w, x}, []float64{y, y, y + h, y + h}, true, p)
}

func (r *rasterPainter) path(xs, ys []float64, closed bool, p pen) {
	if len(xs) < 2 {
		return
	}
	sx, sy := r.scale(xs, ys)
	if closed && p.fill.A != 0 {
		poly := make([]float64, 0, 2*len(sx))
		for i := range sx {
			poly = append(poly, sx[i], sy[i])
		}
		r.fill(shape{poly}, p.fill)
	}
	if p.stroke.A != 0 && p.width > 0 {
		r.fill(strokeShape(sx, sy, closed, p.width*r.k), p.stroke)
	}
}

func (r *rasterPainter) circle(cx, cy, rad float64, p pen) {
	const n = 24
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		a := 2 * math.Pi * float64(i) / n
		xs[i], ys[i] = cx+rad*math.Cos(a), cy+rad*math.Sin(a)
	}
	r.path(xs, ys, true, p)
}

func (r *rasterPainter) text(x, y float64, s string, f font) {
	if s == "" || f.size <= 0 || f.color.A == 0 {
		return
	}
	dst, ok := r.dst.SubImage(r.clipR).(*image.RGBA)
	if !ok {
		return
	}
	dr := xfont.Drawer{Dst: dst, Src: image.NewUniform(f.color), Face: basicfont.Face7x13}
	w := dr.MeasureString(s)
	px, py := xfixed.Int26_6(x*r.k*64), xfixed.Int26_6(y*r.k*64)
	switch f.anchor {
	case anchorMiddle:
		px -= w / 2
	case anchorEnd:
		px -= w
	}
	// Center the cap height on y.
	dr.Dot = xfixed.Point26_6{X: px, Y: py + xfixed.I(basicfont.Face7x13.Ascent)/2 - xfixed.I(1)}
	dr.DrawString(s)
}

func (r *rasterPainter) clip(x, y, w, h float64) {
	c := image.Rect(int(math.Floor(x*r.k)), int(math.Floor(y*r.k)), int(math.Ceil((x+w)*r.k)), int(math.Ceil((y+h)*r.k)))
	r.clipR = c.Intersect(r.dst.Bounds())
}

func (r *rasterPainter) unclip() { r.clipR = r.dst.Bounds() }

func (r *rasterPainter) beginTip(string) {}
func (r *rasterPainter) endTip()         {}
