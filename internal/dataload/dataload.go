// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataload reads go-gg tables from CSV files, SQLite
// databases and Go benchmark results.
package dataload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Warning is a logger for input that is skipped rather than rejected.
var Warning = log.New(os.Stderr, "[dataload] ", log.Lshortfile)

// ErrNoQuery is returned when a SQLite database is loaded without a
// query.
var ErrNoQuery = errors.New("loading a SQLite database requires a query")

// Format is an input format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatSQLite  Format = "sqlite"
	FormatGoBench Format = "gobench"
)

// FormatOf guesses the format of path from its extension. Unknown
// extensions are read as benchmark results.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return FormatGoBench
}

// Load reads the table at path in the given format, or in the format
// guessed from path if format is empty. The path "-" reads standard
// input. query is the SQL query of a SQLite input.
func Load(ctx context.Context, format Format, path, query string) (*table.Table, error) {
	if format == "" {
		format = FormatOf(path)
	}
	switch format {
	case FormatSQLite:
		if query == "" {
			return nil, ErrNoQuery
		}
		return SQLite(ctx, path, query)
	case FormatCSV, FormatGoBench:
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var t *table.Table
	var err error
	if format == FormatCSV {
		t, err = CSV(r)
	} else {
		t, err = GoBench(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
