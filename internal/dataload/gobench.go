// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataload

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-gg/table"
)

// A benchmark is one result line of a benchmark file.
type benchmark struct {
	name   string
	iters  int
	config map[string]string
	result map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// GoBench reads Go benchmark results into a table with one row per
// result line.
//
// The table has a "name" column, an "iters" column, one column per
// configuration key and one column per result unit, such as "ns/op".
// Configuration comes from configuration blocks ("key: value" lines),
// from "/key:value" parts of the benchmark name and from the
// GOMAXPROCS suffix, which is stored as "gomaxprocs". Configuration
// columns whose values are all numbers are []float64; others are
// []string with "" where a key is unset. Results missing from a line
// are NaN.
func GoBench(r io.Reader) (*table.Table, error) {
	var bs []*benchmark
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if b := parseBenchmark(line, config); b != nil {
				bs = append(bs, b)
			} else {
				Warning.Printf("skipping malformed benchmark line %q", line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return benchTable(bs), nil
}

func parseBenchmark(line string, gconfig map[string]string) *benchmark {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}

	b := &benchmark{
		config: make(map[string]string, len(gconfig)+1),
		result: make(map[string]float64),
	}
	for k, v := range gconfig {
		b.config[k] = v
	}

	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			b.config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	parts := strings.Split(name, "/")
	b.name = parts[0]
	for _, part := range parts[1:] {
		if k, v, ok := strings.Cut(part, ":"); ok {
			b.config[k] = v
		}
	}
	if _, ok := b.config["gomaxprocs"]; !ok {
		b.config["gomaxprocs"] = "1"
	}

	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return nil
	}
	b.iters = n

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		b.result[f[i+1]] = val
	}
	return b
}

func benchTable(bs []*benchmark) *table.Table {
	names := make([]string, len(bs))
	iters := make([]int, len(bs))
	configs := make(map[string][]string)
	results := make(map[string][]float64)
	for i, b := range bs {
		names[i], iters[i] = b.name, b.iters
		for k, v := range b.config {
			seq, ok := configs[k]
			if !ok {
				seq = make([]string, len(bs))
				configs[k] = seq
			}
			seq[i] = v
		}
		for k, v := range b.result {
			seq, ok := results[k]
			if !ok {
				seq = make([]float64, len(bs))
				for j := range seq {
					seq[j] = math.NaN()
				}
				results[k] = seq
			}
			seq[i] = v
		}
	}

	tab := new(table.Builder).Add("name", names).Add("iters", iters)
	for _, k := range sortedKeys(configs) {
		tab.Add(k, configColumn(configs[k]))
	}
	for _, k := range sortedKeys(results) {
		tab.Add(k, results[k])
	}
	return tab.Done()
}

// configColumn returns vals as numbers if they all parse as numbers.
func configColumn(vals []string) table.Slice {
	nums := make([]float64, len(vals))
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return vals
		}
		nums[i] = f
	}
	return nums
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
