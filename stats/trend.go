// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/internal/frame"
)

// ErrTooFewPoints is returned by TrendLine when fewer than two
// points remain after dropping missing values.
var ErrTooFewPoints = errors.New("trend line needs at least two points")

// TrendLine fits a least-squares line to columns x and y of t and
// returns a segment spanning the x range of the data. Rows where
// either value is missing or NaN are ignored.
func TrendLine(t *table.Table, x, y string) (glyph.Spec, error) {
	if t == nil {
		return glyph.Spec{}, field.ErrNoData
	}
	for _, col := range []string{x, y} {
		if t.Column(col) == nil {
			return glyph.Spec{}, &field.MissingColumnError{Name: col}
		}
	}
	xcol, ycol := t.MustColumn(x), t.MustColumn(y)
	var xs, ys []float64
	for i := 0; i < t.Len(); i++ {
		xv, xok := frame.ToFloat(frame.Value(xcol, i))
		yv, yok := frame.ToFloat(frame.Value(ycol, i))
		if !xok || !yok || math.IsNaN(xv) || math.IsNaN(yv) {
			continue
		}
		xs, ys = append(xs, xv), append(ys, yv)
	}
	if len(xs) < 2 {
		return glyph.Spec{}, ErrTooFewPoints
	}
	lo, hi := mstats.Bounds(xs)
	if lo == hi {
		return glyph.Spec{}, errors.New("trend line of a constant x is undefined")
	}
	pts := new(table.Builder).Add("x", xs).Add("y", ys).Done()
	fit := ggstat.LeastSquares{X: "x", Y: "y", N: 2, Domain: ggstat.DomainData{Widen: 1}}.F(pts)
	ft := fit.Table(fit.Tables()[0])
	fx, fy := ft.MustColumn("x").([]float64), ft.MustColumn("y").([]float64)
	return glyph.Segment(fx[0], fy[0], fx[1], fy[1]), nil
}
