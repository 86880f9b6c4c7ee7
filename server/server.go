// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves a live preview of a plot over HTTP.
//
// The plot is re-rendered from its source on demand. Rendered output
// is cached per format until one of the watched input files changes.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aclements/go-plotkit/export"
	"github.com/aclements/go-plotkit/plot"
	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
)

// Warning is a logger for problems that do not stop the server.
var Warning = log.New(os.Stderr, "[server] ", log.Lshortfile)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, such as "localhost:8080".
	Addr string

	// Source returns the plot to show. It is called again after
	// the cache is invalidated.
	Source func() (plot.Renderable, error)

	// Watch lists files whose changes invalidate the cache.
	Watch []string

	// Title and Description are shown on the HTML page.
	// Description is Markdown.
	Title       string
	Description string

	// TTL bounds how long rendered output is cached. 0 caches
	// until invalidated.
	TTL time.Duration
}

// A Server serves a plot as an HTML page, an SVG and a PNG.
type Server struct {
	cfg     Config
	echo    *echo.Echo
	cache   *cache.Cache
	watcher *fsnotify.Watcher
}

// Output formats, which are also the cache keys.
const (
	formatHTML = "html"
	formatSVG  = "svg"
	formatPNG  = "png"
)

var contentTypes = map[string]string{
	formatHTML: echo.MIMETextHTMLCharsetUTF8,
	formatSVG:  "image/svg+xml",
	formatPNG:  "image/png",
}

// New returns a server for cfg and starts watching cfg.Watch.
func New(cfg Config) (*Server, error) {
	if cfg.Source == nil {
		return nil, errors.New("server needs a plot source")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	s := &Server{
		cfg:   cfg,
		echo:  echo.New(),
		cache: cache.New(ttl, 10*time.Minute),
	}

	e := s.echo
	e.HideBanner, e.HidePort = true, true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %d %v: %v", v.URI, v.Status, v.Latency, v.Error)
			} else {
				log.Printf("%s %d %v", v.URI, v.Status, v.Latency)
			}
			return nil
		},
	}))
	e.GET("/", s.handler(formatHTML))
	e.GET("/plot.svg", s.handler(formatSVG))
	e.GET("/plot.png", s.handler(formatPNG))

	if len(cfg.Watch) > 0 {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed creating file watcher: %w", err)
		}
		for _, path := range cfg.Watch {
			if err := w.Add(path); err != nil {
				w.Close()
				return nil, fmt.Errorf("watching %s: %w", path, err)
			}
		}
		s.watcher = w
		go s.watch()
	}
	return s, nil
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) handler(format string) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := s.render(format)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		return c.Blob(http.StatusOK, contentTypes[format], b)
	}
}

// render returns the plot in format, from the cache if possible.
func (s *Server) render(format string) ([]byte, error) {
	if b, ok := s.cache.Get(format); ok {
		return b.([]byte), nil
	}
	src, err := s.cfg.Source()
	if err != nil {
		return nil, err
	}
	r, err := src.Render()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch format {
	case formatHTML:
		page := export.PageFromEnv(s.cfg.Title)
		page.Description = s.cfg.Description
		// The page is served alone, so it cannot load resources.
		page.ResourceRoot = ""
		err = export.HTML(&buf, r.Item, page)
	case formatSVG:
		err = export.SVG(&buf, r.Item, export.Options{Tooltips: true})
	case formatPNG:
		err = export.PNG(&buf, r.Item, export.Options{})
	}
	if err != nil {
		return nil, err
	}
	s.cache.Set(format, buf.Bytes(), cache.DefaultExpiration)
	return buf.Bytes(), nil
}

// Invalidate drops all cached output.
func (s *Server) Invalidate() { s.cache.Flush() }

func (s *Server) watch() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				s.Invalidate()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			Warning.Print(err)
		}
	}
}

// Start serves until ctx is done or the server fails. It returns nil
// after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.echo.Start(s.cfg.Addr) }()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops watching files and closes the server's listeners.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.Close()
	}
	return s.echo.Close()
}
