// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-plotkit/scene"
	"github.com/yuin/goldmark"
)

// ResourceRootEnv names the environment variable that switches pages
// from inline resources to resources loaded relative to a root.
const ResourceRootEnv = "PLOTKIT_RESOURCE_ROOT"

// StylesheetName is the file name of the page stylesheet under a
// resource root.
const StylesheetName = "plotkit.css"

// Page describes a standalone HTML page.
type Page struct {
	Title string

	// Description is Markdown shown above the plot.
	Description string

	// ResourceRoot, if not empty, is the URL path that page
	// resources are loaded from. Otherwise they are inlined.
	ResourceRoot string

	// SVG controls the embedded drawing.
	SVG Options
}

// PageFromEnv returns a page titled title whose resource mode is set
// from the environment.
func PageFromEnv(title string) Page {
	return Page{Title: title, ResourceRoot: os.Getenv(ResourceRootEnv), SVG: Options{Tooltips: true}}
}

const stylesheet = `body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #333; }
.plotkit-description { max-width: 50em; }
.plotkit-plot svg { display: block; }
`

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .Stylesheet}}<link rel="stylesheet" href="{{.Stylesheet}}">
{{else}}<style>{{.InlineCSS}}</style>
{{end}}</head>
<body>
{{if .Description}}<div class="plotkit-description">{{.Description}}</div>
{{end}}<div class="plotkit-plot">{{.Plot}}</div>
</body>
</html>
`))

// HTML writes a standalone page showing item to w.
func HTML(w io.Writer, item scene.Item, page Page) error {
	var plot bytes.Buffer
	if err := SVG(&plot, item, page.SVG); err != nil {
		return err
	}
	var desc bytes.Buffer
	if page.Description != "" {
		if err := goldmark.Convert([]byte(page.Description), &desc); err != nil {
			return fmt.Errorf("rendering description: %w", err)
		}
	}
	svgText := plot.String()
	if i := strings.Index(svgText, "<svg"); i > 0 {
		// Drop the XML declaration.
		svgText = svgText[i:]
	}
	title := page.Title
	if title == "" {
		title = "plotkit"
	}
	data := struct {
		Title       string
		Stylesheet  string
		InlineCSS   template.CSS
		Description template.HTML
		Plot        template.HTML
	}{
		Title:       title,
		InlineCSS:   template.CSS(stylesheet),
		Description: template.HTML(desc.String()),
		Plot:        template.HTML(svgText),
	}
	if page.ResourceRoot != "" {
		data.Stylesheet = strings.TrimSuffix(page.ResourceRoot, "/") + "/" + StylesheetName
	}
	return pageTmpl.Execute(w, data)
}

// WriteResources writes the page resources into dir, for pages that
// load them from a resource root.
func WriteResources(dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, StylesheetName), []byte(stylesheet), 0666)
}
