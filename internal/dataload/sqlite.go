// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataload

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/patrickmn/go-cache"
	sqlite "modernc.org/sqlite"
)

const driverName = "sqlite"

// regexps caches patterns compiled by the SQL regexp function.
var regexps = cache.New(2*time.Minute, 5*time.Minute)

func init() {
	// Back the REGEXP operator, which SQLite leaves undefined.
	sqlite.MustRegisterDeterministicScalarFunction("regexp", 2,
		func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			pat, ok1 := args[0].(string)
			s, ok2 := args[1].(string)
			if !ok1 || !ok2 {
				return nil, errors.New("regexp arguments must be text")
			}
			var re *regexp.Regexp
			if v, found := regexps.Get(pat); found {
				re = v.(*regexp.Regexp)
			} else {
				var err error
				if re, err = regexp.Compile(pat); err != nil {
					return nil, err
				}
				regexps.Set(pat, re, cache.DefaultExpiration)
			}
			return re.MatchString(s), nil
		})
}

// SQLite runs query against the database at path, opened read-only,
// and returns the result rows as a table.
//
// Columns holding only numbers (and NULLs) become []float64 with NaN
// for NULL. Columns holding only times become []time.Time. Any other
// column becomes []string with "" for NULL.
func SQLite(ctx context.Context, path, query string) (*table.Table, error) {
	db, err := sql.Open(driverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite query failed: %w", err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	cols := make([][]interface{}, len(names))
	dest := make([]interface{}, len(names))
	ptrs := make([]interface{}, len(names))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range dest {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite query failed: %w", err)
	}

	b := new(table.Builder)
	seen := make(map[string]bool)
	for i, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("query returns column %q twice", name)
		}
		seen[name] = true
		b.Add(name, sqlColumn(cols[i]))
	}
	return b.Done(), nil
}

func sqlColumn(vals []interface{}) table.Slice {
	numeric, times := true, true
	for _, v := range vals {
		switch v.(type) {
		case nil:
		case int64, float64:
			times = false
		case time.Time:
			numeric = false
		default:
			numeric, times = false, false
		}
	}
	switch {
	case numeric:
		out := make([]float64, len(vals))
		for i, v := range vals {
			if f, ok := frame.ToFloat(v); ok {
				out[i] = f
			} else {
				out[i] = math.NaN()
			}
		}
		return out
	case times:
		out := make([]time.Time, len(vals))
		for i, v := range vals {
			out[i], _ = v.(time.Time)
		}
		return out
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = frame.Format(v)
	}
	return out
}
