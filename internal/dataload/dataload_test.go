// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataload

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	in := "name, ms, note\nfoo,1.5,a\nbar,,2\nbaz,3,\n"
	tab, err := CSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "ms", "note"}, tab.Columns())
	assert.Equal(t, []string{"foo", "bar", "baz"}, tab.MustColumn("name"))
	ms := tab.MustColumn("ms").([]float64)
	require.Len(t, ms, 3)
	assert.Equal(t, 1.5, ms[0])
	assert.True(t, math.IsNaN(ms[1]))
	assert.Equal(t, 3.0, ms[2])
	assert.Equal(t, []string{"a", "2", ""}, tab.MustColumn("note"))
}

func TestCSVErrors(t *testing.T) {
	_, err := CSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = CSV(strings.NewReader("a,a\n1,2\n"))
	assert.ErrorContains(t, err, "duplicate column")

	_, err = CSV(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err)
}

const benchInput = `goos: linux
goarch: amd64
note: first run
BenchmarkDecode/size:small-8   	 1000	      1200 ns/op	  64 B/op
BenchmarkDecode/size:large-8   	  100	     15000 ns/op	 512 B/op	 3 allocs/op
BenchmarkEncode   	 2000	       800 ns/op
Benchmarkbogus 10 5 ns/op
BenchmarkShort 10
`

func TestGoBench(t *testing.T) {
	tab, err := GoBench(strings.NewReader(benchInput))
	require.NoError(t, err)

	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []string{"Decode", "Decode", "Encode"}, tab.MustColumn("name"))
	assert.Equal(t, []int{1000, 100, 2000}, tab.MustColumn("iters"))
	assert.Equal(t, []string{"linux", "linux", "linux"}, tab.MustColumn("goos"))
	assert.Equal(t, []float64{8, 8, 1}, tab.MustColumn("gomaxprocs"))
	assert.Equal(t, []string{"small", "large", ""}, tab.MustColumn("size"))
	assert.Equal(t, []float64{1200, 15000, 800}, tab.MustColumn("ns/op"))

	allocs := tab.MustColumn("allocs/op").([]float64)
	assert.True(t, math.IsNaN(allocs[0]))
	assert.Equal(t, 3.0, allocs[1])
}

func TestGoBenchConfigBlocks(t *testing.T) {
	in := "commit: a\nBenchmarkX 1 10 ns/op\ncommit: b\nBenchmarkX 1 20 ns/op\n"
	tab, err := GoBench(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.MustColumn("commit"))
}

func writeDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range []string{
		`CREATE TABLE runs (name TEXT, secs REAL, n INTEGER, tag TEXT)`,
		`INSERT INTO runs VALUES ('alpha', 1.5, 3, NULL), ('beta', 2.5, NULL, 'x'), ('apex', 4, 7, 'y')`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func TestSQLite(t *testing.T) {
	path := writeDB(t)
	ctx := context.Background()

	tab, err := SQLite(ctx, path, "SELECT name, secs, n, tag FROM runs ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "apex", "beta"}, tab.MustColumn("name"))
	assert.Equal(t, []float64{1.5, 4, 2.5}, tab.MustColumn("secs"))
	n := tab.MustColumn("n").([]float64)
	assert.Equal(t, 3.0, n[0])
	assert.True(t, math.IsNaN(n[2]))
	assert.Equal(t, []string{"", "y", "x"}, tab.MustColumn("tag"))

	tab, err = SQLite(ctx, path, "SELECT name FROM runs WHERE name REGEXP '^a' ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "apex"}, tab.MustColumn("name"))

	_, err = SQLite(ctx, path, "SELECT name, name FROM runs")
	assert.ErrorContains(t, err, "twice")

	_, err = SQLite(ctx, path, "SELECT * FROM missing")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x,y\n1,2\n"), 0666))
	benchPath := filepath.Join(dir, "old.txt")
	require.NoError(t, os.WriteFile(benchPath, []byte(benchInput), 0666))
	ctx := context.Background()

	tab, err := Load(ctx, "", csvPath, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, tab.MustColumn("y"))

	tab, err = Load(ctx, "", benchPath, "")
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Len())

	_, err = Load(ctx, FormatSQLite, writeDB(t), "")
	assert.ErrorIs(t, err, ErrNoQuery)

	_, err = Load(ctx, "xml", csvPath, "")
	assert.ErrorContains(t, err, "unknown input format")

	_, err = Load(ctx, FormatCSV, filepath.Join(dir, "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatOf("a/b.CSV"))
	assert.Equal(t, FormatSQLite, FormatOf("x.sqlite3"))
	assert.Equal(t, FormatGoBench, FormatOf("bench.txt"))
}
