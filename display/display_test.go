// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package display

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/export"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(t *testing.T) scene.Item {
	data := new(table.Builder).
		Add("x", []float64{1, 2, 3}).
		Add("y", []float64{3, 1, 2}).
		Done()
	r, err := plot.New(data).Add(glyph.Line(field.Col("x"), field.Col("y"))).Render()
	require.NoError(t, err)
	return r.Item
}

func TestInit(t *testing.T) {
	var s State
	_, ok := s.Initialized()
	assert.False(t, ok)

	assert.True(t, s.Init(TargetFile))
	assert.False(t, s.Init(TargetBrowser), "second Init should not reinitialize")
	target, ok := s.Initialized()
	assert.True(t, ok)
	assert.Equal(t, TargetFile, target)

	s.Reset()
	_, ok = s.Initialized()
	assert.False(t, ok)
	assert.True(t, s.Init(TargetBrowser))
}

func TestInitConcurrent(t *testing.T) {
	var s State
	var wg sync.WaitGroup
	wins := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- s.Init(TargetFile)
		}()
	}
	wg.Wait()
	close(wins)
	n := 0
	for w := range wins {
		if w {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestShow(t *testing.T) {
	t.Setenv(export.ResourceRootEnv, "")
	var opened []string
	s := &State{
		Dir:  t.TempDir(),
		Open: func(path string) error { opened = append(opened, path); return nil },
	}

	path, err := Show(s, item(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir, PageName), path)
	assert.Equal(t, []string{path}, opened)
	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<svg")
	assert.Contains(t, string(page), "<style>")

	target, ok := s.Initialized()
	assert.True(t, ok)
	assert.Equal(t, TargetBrowser, target)
}

func TestShowFileTarget(t *testing.T) {
	t.Setenv(export.ResourceRootEnv, "static")
	s := &State{
		Dir:  t.TempDir(),
		Open: func(string) error { t.Error("file target should not open the page"); return nil },
	}
	s.Init(TargetFile)

	path, err := Show(s, item(t))
	require.NoError(t, err)
	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(page), `href="static/plotkit.css"`)
	assert.FileExists(t, filepath.Join(s.Dir, "static", export.StylesheetName))
}

func TestShowEmpty(t *testing.T) {
	s := &State{Dir: t.TempDir(), Open: func(string) error { return nil }}
	_, err := Show(s, nil)
	assert.ErrorIs(t, err, export.ErrEmpty)
}

func TestBrowserCommand(t *testing.T) {
	for _, test := range []struct {
		env  string
		want []string
	}{
		{"firefox", []string{"firefox", "/tmp/p.html"}},
		{"'my browser' --new-tab", []string{"my browser", "--new-tab", "/tmp/p.html"}},
		{"open -a Safari %s", []string{"open", "-a", "Safari", "/tmp/p.html"}},
	} {
		got, err := browserCommand(test.env, "/tmp/p.html")
		require.NoError(t, err, test.env)
		assert.Equal(t, test.want, got, test.env)
	}

	_, err := browserCommand("'unterminated", "/tmp/p.html")
	assert.Error(t, err)
	_, err = browserCommand("   ", "/tmp/p.html")
	assert.Error(t, err)
}
