// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package display shows rendered plots outside of a program, by
// writing them to an HTML page and opening it in a browser.
//
// Output is initialized once per State: the first Show (or an
// explicit Init) fixes the target, and later calls reuse it until the
// State is Reset.
package display

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aclements/go-plotkit/export"
	"github.com/aclements/go-plotkit/scene"
	"github.com/cli/browser"
	"github.com/kballard/go-shellquote"
)

// Warning is a logger for display problems that do not fail a Show.
var Warning = log.New(os.Stderr, "[display] ", log.Lshortfile)

// PageName is the file name of the page written by Show.
const PageName = "plotting.html"

// Target is where shown plots go.
type Target int

const (
	// TargetBrowser writes the page and opens it.
	TargetBrowser Target = iota
	// TargetFile only writes the page.
	TargetFile
)

func (t Target) String() string {
	if t == TargetFile {
		return "file"
	}
	return "browser"
}

// State is the output state of a display. The zero State is
// uninitialized and writes to os.TempDir.
type State struct {
	// Dir is the directory Show writes into. Empty means
	// os.TempDir().
	Dir string

	// Open opens a written page. Nil means OpenBrowser.
	Open func(path string) error

	mu          sync.Mutex
	initialized bool
	target      Target
}

// Init initializes s for target if it is not yet initialized. It
// reports whether this call initialized s.
func (s *State) Init(target Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return false
	}
	s.initialized, s.target = true, target
	return true
}

// Initialized reports whether s is initialized, and its target.
func (s *State) Initialized() (Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target, s.initialized
}

// Reset returns s to the uninitialized state.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized, s.target = false, TargetBrowser
}

// Show writes item to the page of s, initializing s for
// TargetBrowser if needed, and opens the page if that is the target.
// It returns the path of the page.
//
// If PLOTKIT_RESOURCE_ROOT is set to a relative path, the page loads
// its resources from that directory next to it, and Show writes them
// there.
func Show(s *State, item scene.Item) (string, error) {
	s.Init(TargetBrowser)
	target, _ := s.Initialized()

	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	page := export.PageFromEnv("plotkit")
	if root := page.ResourceRoot; root != "" && !strings.Contains(root, "://") && !filepath.IsAbs(root) {
		if err := export.WriteResources(filepath.Join(dir, filepath.FromSlash(root))); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, PageName)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := export.HTML(f, item, page); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	if target != TargetBrowser {
		return path, nil
	}
	open := s.Open
	if open == nil {
		open = OpenBrowser
	}
	if err := open(path); err != nil {
		return path, fmt.Errorf("opening %s: %w", path, err)
	}
	return path, nil
}

// OpenBrowser opens path in the browser named by $BROWSER, or in the
// system's default browser.
func OpenBrowser(path string) error {
	env := os.Getenv("BROWSER")
	if env == "" {
		return browser.OpenFile(path)
	}
	args, err := browserCommand(env, path)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			Warning.Printf("%s: %v", args[0], err)
		}
	}()
	return nil
}

// browserCommand splits a $BROWSER value into a command opening path.
// A "%s" in the command is replaced by path; otherwise path is
// appended.
func browserCommand(env, path string) ([]string, error) {
	args, err := shellquote.Split(env)
	if err != nil {
		return nil, fmt.Errorf("parsing $BROWSER: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("$BROWSER is empty")
	}
	subst := false
	for i, a := range args {
		if strings.Contains(a, "%s") {
			args[i] = strings.ReplaceAll(a, "%s", path)
			subst = true
		}
	}
	if !subst {
		args = append(args, path)
	}
	return args, nil
}
