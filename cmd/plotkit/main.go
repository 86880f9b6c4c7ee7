// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command plotkit plots a table of data.
//
// plotkit reads a CSV file, a Go benchmark results file or the result
// of a query against an SQLite database, and draws one glyph kind of
// two of its columns:
//
//	plotkit -x size -y ns/op --color-by name -o bench.svg bench.txt
//	plotkit --query 'SELECT * FROM runs' -x day -y secs runs.db
//
// The output format follows the extension of the -o file (.svg, .png
// or .html). With --show the plot is written to an HTML page and
// opened in a browser, and with --serve the plot is served over HTTP
// and re-read whenever the input file changes.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/display"
	"github.com/aclements/go-plotkit/export"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/internal/dataload"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/server"
	"github.com/aclements/go-plotkit/stats"
	"github.com/aclements/go-plotkit/style"
	flag "github.com/spf13/pflag"
)

var (
	flagQuery   = flag.String("query", "", "SQL `query` for sqlite inputs")
	flagKind    = flag.String("kind", "line", "glyph `kind`: line, scatter, bar, step, area, hist or box")
	flagX       = flag.StringP("x-col", "x", "", "x `column`")
	flagY       = flag.StringP("y-col", "y", "", "y `column`")
	flagColorBy = flag.String("color-by", "", "color and group glyphs by `column`")
	flagPalette = flag.String("palette", "Set1", "color `palette` for --color-by")
	flagTrend   = flag.Bool("trend", false, "add a least-squares trend line")
	flagWrap    = flag.String("facet-wrap", "", "facet into a wrapped grid by comma-separated `columns`")
	flagGrid    = flag.String("facet-grid", "", "facet into a grid by `col,row` columns")
	flagNCols   = flag.Int("ncols", 0, "columns of a wrapped facet grid")
	flagWidth   = flag.Int("width", 0, "plot width in pixels (default 600)")
	flagHeight  = flag.Int("height", 0, "plot height in pixels (default 600)")
	flagTitle   = flag.String("title", "", "plot title")
	flagOut     = flag.StringP("output", "o", "", "write the plot to `file` (default: SVG to stdout)")
	flagShow    = flag.Bool("show", false, "open the plot in a browser")
	flagServe   = flag.String("serve", "", "serve the plot on `addr`")
	flagTable   = flag.Bool("table", false, "print the loaded table instead of a plot")
)

// formatFlag is a dataload.Format flag that accepts only known
// formats.
type formatFlag dataload.Format

func (f *formatFlag) String() string { return string(*f) }

func (f *formatFlag) Set(s string) error {
	switch dataload.Format(s) {
	case "", dataload.FormatCSV, dataload.FormatSQLite, dataload.FormatGoBench:
		*f = formatFlag(s)
		return nil
	}
	return fmt.Errorf("unknown input format %q", s)
}

func (f *formatFlag) Type() string { return "format" }

var flagFormat formatFlag

func init() {
	flag.Var(&flagFormat, "format", "input `format`: csv, sqlite or gobench (default: from the file extension)")
}

func main() {
	log.SetPrefix("plotkit: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	path := "-"
	switch flag.NArg() {
	case 0:
	case 1:
		path = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	load := func() (*table.Table, error) {
		return dataload.Load(ctx, dataload.Format(flagFormat), path, *flagQuery)
	}

	if *flagTable {
		tab, err := load()
		if err != nil {
			log.Fatal(err)
		}
		if err := table.Fprint(os.Stdout, tab); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *flagServe != "" {
		if path == "-" {
			log.Fatal("--serve needs an input file")
		}
		s, err := server.New(server.Config{
			Addr:  *flagServe,
			Watch: []string{path},
			Title: *flagTitle,
			Source: func() (plot.Renderable, error) {
				tab, err := load()
				if err != nil {
					return nil, err
				}
				return build(tab)
			},
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("serving %s on http://%s/", path, *flagServe)
		if err := s.Start(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	tab, err := load()
	if err != nil {
		log.Fatal(err)
	}
	p, err := build(tab)
	if err != nil {
		log.Fatal(err)
	}
	r, err := p.Render()
	if err != nil {
		log.Fatal(err)
	}

	if *flagShow {
		page, err := display.Show(new(display.State), r.Item)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", page)
		return
	}
	if err := write(*flagOut, r); err != nil {
		log.Fatal(err)
	}
}

// build returns the plot of tab described by the flags.
func build(tab *table.Table) (plot.Renderable, error) {
	if *flagX == "" {
		return nil, fmt.Errorf("missing -x column")
	}
	if *flagY == "" && *flagKind != "hist" {
		return nil, fmt.Errorf("missing -y column")
	}
	x, y := field.Col(*flagX), field.Col(*flagY)

	var fill, line style.Props
	if *flagColorBy != "" {
		cmap := field.FactorCmap(*flagColorBy, style.Named(*flagPalette))
		fill = style.Fill{Color: cmap}.Props()
		line = style.Line{Color: cmap}.Props()
	}
	legend := func(g glyph.Spec) glyph.Spec {
		if *flagColorBy != "" {
			g = g.WithLegendGroup(*flagColorBy)
		}
		return g
	}

	var p plot.Plot
	switch *flagKind {
	case "line":
		p = plot.New(tab).Add(legend(glyph.Line(x, y).WithStyle(line)))
	case "step":
		p = plot.New(tab).Add(legend(glyph.Step(x, y, glyph.StepAfter).WithStyle(line)))
	case "scatter":
		p = plot.New(tab).Add(legend(glyph.Scatter(x, y).WithStyle(fill)))
	case "bar":
		p = plot.New(tab).Add(legend(glyph.VBar(x, y).WithStyle(fill)))
	case "area":
		p = plot.New(tab).Add(legend(glyph.VArea(x, 0.0, y).WithStyle(fill)))
	case "hist":
		p = stats.NewHistogram(x).WithStyle(fill).Plot(tab)
	case "box":
		p = stats.NewBoxPlot(x, y).WithStyle(fill).Plot(tab)
	default:
		return nil, fmt.Errorf("unknown glyph kind %q", *flagKind)
	}

	if *flagTrend {
		trend, err := stats.TrendLine(tab, *flagX, *flagY)
		if err != nil {
			return nil, err
		}
		p = p.Add(trend.WithLine(style.Line{Color: "black", Dash: "dashed"}))
	}
	if *flagTitle != "" {
		p = p.WithTitle(plot.TitleSpec{Text: *flagTitle})
	}
	yLabel := *flagY
	if *flagKind == "hist" {
		yLabel = "count"
	}
	p = p.WithXAxis(plot.AxisSpec{Label: *flagX}).
		WithYAxis(plot.AxisSpec{Label: yLabel}).
		WithLayout(plot.Layout{Width: *flagWidth, Height: *flagHeight})

	grid := plot.GridLayout{Width: *flagWidth, Height: *flagHeight}
	switch {
	case *flagWrap != "" && *flagGrid != "":
		return nil, fmt.Errorf("--facet-wrap and --facet-grid are exclusive")
	case *flagWrap != "":
		p = p.WithFacetWrap(strings.Split(*flagWrap, ","), *flagNCols, grid)
	case *flagGrid != "":
		col, row, ok := strings.Cut(*flagGrid, ",")
		if !ok {
			return nil, fmt.Errorf("--facet-grid wants col,row")
		}
		p = p.WithFacetGrid(col, row, &grid)
	}
	return p, nil
}

// write writes r to path in the format named by path's extension.
func write(path string, r *plot.Rendered) error {
	if path == "" {
		return export.SVG(os.Stdout, r.Item, export.Options{})
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		err = export.SVG(f, r.Item, export.Options{Tooltips: true})
	case ".png":
		err = export.PNG(f, r.Item, export.Options{})
	case ".html":
		page := export.PageFromEnv(*flagTitle)
		page.ResourceRoot = ""
		err = export.HTML(f, r.Item, page)
	default:
		err = fmt.Errorf("unknown output format %q", ext)
	}
	if err1 := f.Close(); err == nil {
		err = err1
	}
	return err
}
