// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource returns a plot source that counts its calls.
func countingSource(calls *int32) func() (plot.Renderable, error) {
	return func() (plot.Renderable, error) {
		atomic.AddInt32(calls, 1)
		data := new(table.Builder).
			Add("x", []float64{1, 2, 3}).
			Add("y", []float64{1, 4, 9}).
			Done()
		return plot.New(data).Add(glyph.Line(field.Col("x"), field.Col("y"))), nil
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	var calls int32
	s, err := New(Config{Source: countingSource(&calls), Title: "Squares", Description: "*live*"})
	require.NoError(t, err)
	defer s.Close()

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>Squares</title>")
	assert.Contains(t, rec.Body.String(), "<em>live</em>")
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = get(t, s, "/plot.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = get(t, s, "/plot.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])

	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}

func TestCache(t *testing.T) {
	var calls int32
	s, err := New(Config{Source: countingSource(&calls)})
	require.NoError(t, err)
	defer s.Close()

	first := get(t, s, "/plot.svg").Body.String()
	second := get(t, s, "/plot.svg").Body.String()
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "second request should hit the cache")

	get(t, s, "/plot.png")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "formats are cached separately")

	s.Invalidate()
	get(t, s, "/plot.svg")
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestSourceError(t *testing.T) {
	s, err := New(Config{Source: func() (plot.Renderable, error) {
		return nil, errors.New("bad input")
	}})
	require.NoError(t, err)
	defer s.Close()

	rec := get(t, s, "/plot.svg")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad input")
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,1\n"), 0666))

	var calls int32
	s, err := New(Config{Source: countingSource(&calls), Watch: []string{path}})
	require.NoError(t, err)
	defer s.Close()

	get(t, s, "/plot.svg")
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))

	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n"), 0666))
	assert.Eventually(t, func() bool {
		get(t, s, "/plot.svg")
		return atomic.LoadInt32(&calls) > 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewErrors(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	var calls int32
	_, err = New(Config{Source: countingSource(&calls), Watch: []string{filepath.Join(t.TempDir(), "missing")}})
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	var calls int32
	s, err := New(Config{Addr: "127.0.0.1:0", Source: countingSource(&calls)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
