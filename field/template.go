// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/internal/frame"
)

// A Template is a tooltip text with embedded column references. The
// zero Template is empty and produces no tooltips.
type Template struct {
	parts []part
}

type part struct {
	text  string
	isCol bool
}

// ParseTemplate parses s, in which "{name}" refers to column name.
// Braces that do not enclose a name are kept as literal text.
func ParseTemplate(s string) Template {
	var tmpl Template
	for s != "" {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			tmpl = tmpl.text(s)
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end <= 1 {
			tmpl = tmpl.text(s[:open+1])
			s = s[open+1:]
			continue
		}
		tmpl = tmpl.text(s[:open])
		tmpl.parts = append(tmpl.parts, part{s[open+1 : open+end], true})
		s = s[open+end+1:]
	}
	return tmpl
}

// XY returns the default glyph tooltip for the resolved position
// columns x and y, "x={x}<br>y={y}" when the columns are named x and
// y.
func XY(x, y string) Template {
	return Columns(x, y)
}

// Columns returns a template listing "name={name}" for each column,
// separated by "<br>".
func Columns(names ...string) Template {
	var tmpl Template
	for _, name := range names {
		tmpl = tmpl.Append(name)
	}
	return tmpl
}

// Append returns a copy of tmpl followed by "<br>name={name}".
func (tmpl Template) Append(name string) Template {
	if tmpl.IsZero() {
		return Template{}.text(name + "=").col(name)
	}
	return tmpl.text("<br>" + name + "=").col(name)
}

func (tmpl Template) text(s string) Template {
	if s == "" {
		return tmpl
	}
	parts := append([]part(nil), tmpl.parts...)
	if n := len(parts); n > 0 && !parts[n-1].isCol {
		parts[n-1].text += s
	} else {
		parts = append(parts, part{s, false})
	}
	return Template{parts}
}

func (tmpl Template) col(name string) Template {
	parts := append([]part(nil), tmpl.parts...)
	return Template{append(parts, part{name, true})}
}

// IsZero reports whether tmpl is empty.
func (tmpl Template) IsZero() bool {
	return len(tmpl.parts) == 0
}

// Columns returns the columns referenced by tmpl, in order.
func (tmpl Template) Columns() []string {
	var cols []string
	for _, p := range tmpl.parts {
		if p.isCol {
			cols = append(cols, p.text)
		}
	}
	return cols
}

// String returns tmpl in the syntax accepted by ParseTemplate.
func (tmpl Template) String() string {
	var b strings.Builder
	for _, p := range tmpl.parts {
		if p.isCol {
			b.WriteString("{" + p.text + "}")
		} else {
			b.WriteString(p.text)
		}
	}
	return b.String()
}

// Eval evaluates tmpl against every row of t.
func (tmpl Template) Eval(t *table.Table) ([]string, error) {
	cols := make([]table.Slice, len(tmpl.parts))
	for i, p := range tmpl.parts {
		if !p.isCol {
			continue
		}
		if cols[i] = t.Column(p.text); cols[i] == nil {
			return nil, &MissingColumnError{p.text}
		}
	}
	out := make([]string, t.Len())
	var b strings.Builder
	for row := range out {
		b.Reset()
		for i, p := range tmpl.parts {
			if p.isCol {
				b.WriteString(frame.Format(frame.Value(cols[i], row)))
			} else {
				b.WriteString(p.text)
			}
		}
		out[row] = b.String()
	}
	return out, nil
}
