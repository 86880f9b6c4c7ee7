// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/internal/frame"
)

// Warning is the logger for non-fatal resolution problems, such as
// mismatched heights or duplicate output columns.
var Warning = log.New(os.Stderr, "[field] ", log.Lshortfile)

// ErrNoData is returned when a Column or Derived spec is resolved
// without a table.
var ErrNoData = errors.New("column spec requires a data table")

// MissingColumnError reports a reference to a column that does not
// exist in the table.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// Resolve materializes specs as columns of a table.
//
// Column and Derived specs require t and pin the resolved height to
// t.Len(). A Collection pins the height to its own length. If two
// pinned heights disagree, the result has no rows. If the pinned
// height disagrees with t, t's columns are dropped and only the
// resolved columns are returned. With nothing pinning the height, the
// height is t.Len(), or 1 without a table. Literals are repeated to
// the final height.
//
// Resolve returns the resolved table, which keeps the columns of t
// when heights agree, and the output column name of each spec in
// order. Both mismatches are logged to Warning rather than returned
// as errors.
func Resolve(t *table.Table, specs ...Named) (*table.Table, []string, error) {
	type resolved struct {
		name string
		col  table.Slice // nil for literals
		lit  interface{}
	}
	var (
		cols     []resolved
		names    []string
		height   = -1
		mismatch = false
		seen     = make(map[string]bool)
	)
	pin := func(name string, h int) {
		if height < 0 {
			height = h
		} else if h != height && !mismatch {
			Warning.Printf("height %d of %q does not match height %d of earlier specs; resolving to an empty table", h, name, height)
			mismatch = true
		}
	}

	for _, n := range specs {
		spec := n.Spec
		if spec == nil {
			spec = Literal{}
		}
		out := OutputName(n.Name, spec)
		switch s := spec.(type) {
		case Column:
			if t == nil {
				return nil, nil, ErrNoData
			}
			col := t.Column(s.Name)
			if col == nil {
				return nil, nil, &MissingColumnError{s.Name}
			}
			pin(n.Name, t.Len())
			cols = append(cols, resolved{name: out, col: col})

		case Derived:
			if t == nil {
				return nil, nil, ErrNoData
			}
			col, err := derive(t, s)
			if err != nil {
				return nil, nil, err
			}
			pin(n.Name, t.Len())
			cols = append(cols, resolved{name: out, col: col})

		case Collection:
			pin(n.Name, frame.Len(s.Values))
			cols = append(cols, resolved{name: out, col: s.Values})

		case Literal:
			cols = append(cols, resolved{name: out, lit: s.Value})

		default:
			panic(fmt.Sprintf("unknown field spec type %T", spec))
		}

		if seen[out] {
			Warning.Printf("column %q is produced by more than one spec; later specs replace earlier ones", out)
		}
		seen[out] = true
		names = append(names, out)
	}

	var b *table.Builder
	switch {
	case mismatch:
		b = new(table.Builder)
		height = 0
	case height < 0 && t == nil:
		b = new(table.Builder)
		height = 1
	case height < 0:
		b = table.NewBuilder(t)
		height = t.Len()
	case t != nil && t.Len() != height:
		Warning.Printf("resolved height %d does not match table height %d; dropping table columns", height, t.Len())
		b = new(table.Builder)
	case t != nil:
		b = table.NewBuilder(t)
	default:
		b = new(table.Builder)
	}

	for _, c := range cols {
		if c.col == nil {
			b.Add(c.name, frame.Repeat(c.lit, height))
		} else if frame.Len(c.col) != height {
			b.Add(c.name, frame.Truncate(c.col, 0))
		} else {
			b.Add(c.name, c.col)
		}
	}
	return b.Done(), names, nil
}

// Apply applies the field prop spec to t and returns the resulting
// table together with the name of the column holding the prop's
// values. For a Derived spec the new column is added to t.
func Apply(t *table.Table, spec Spec) (*table.Table, string, error) {
	if t == nil {
		return nil, "", ErrNoData
	}
	switch s := spec.(type) {
	case Column:
		if t.Column(s.Name) == nil {
			return nil, "", &MissingColumnError{s.Name}
		}
		return t, s.Name, nil
	case Derived:
		col, err := derive(t, s)
		if err != nil {
			return nil, "", err
		}
		return table.NewBuilder(t).Add(s.Name, col).Done(), s.Name, nil
	}
	return nil, "", fmt.Errorf("%T is not a field spec", spec)
}

func derive(t *table.Table, d Derived) (table.Slice, error) {
	for _, from := range d.From {
		if t.Column(from) == nil {
			return nil, &MissingColumnError{from}
		}
	}
	col, err := d.Fn(t)
	if err != nil {
		return nil, fmt.Errorf("deriving %q: %w", d.Name, err)
	}
	if n := frame.Len(col); n != t.Len() {
		return nil, fmt.Errorf("deriving %q: got %d values for %d rows", d.Name, n, t.Len())
	}
	return col, nil
}
