// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ErrNoHeader is returned for CSV input without a header row.
var ErrNoHeader = errors.New("CSV input has no header row")

// CSV reads a table from CSV input whose first row names the columns.
// A column whose non-empty cells all parse as numbers is a []float64
// column with NaN for empty cells. Any other column is a []string
// column.
func CSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoHeader
	}
	header, rows := recs[0], recs[1:]

	b := new(table.Builder)
	seen := make(map[string]bool)
	for j, name := range header {
		name = strings.TrimSpace(name)
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		cells := make([]string, len(rows))
		for i, rec := range rows {
			cells[i] = rec[j]
		}
		b.Add(name, coerce(cells))
	}
	return b.Done(), nil
}

// coerce returns cells as numbers if every non-empty cell is a number
// and there is at least one.
func coerce(cells []string) table.Slice {
	nums := make([]float64, len(cells))
	found := false
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			nums[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return cells
		}
		nums[i], found = f, true
	}
	if !found {
		return cells
	}
	return nums
}
