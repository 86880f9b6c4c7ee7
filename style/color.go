// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	// Background is the default figure background.
	Background = "#ffffff"

	// TitleBackground is the default background of title strips.
	TitleBackground = "#cecece"

	// None disables a color, for example to hide tick marks.
	None = "none"
)

var named = map[string]color.RGBA{
	"black":     {0, 0, 0, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"red":       {0xff, 0, 0, 0xff},
	"green":     {0, 0x80, 0, 0xff},
	"blue":      {0, 0, 0xff, 0xff},
	"gray":      {0x80, 0x80, 0x80, 0xff},
	"grey":      {0x80, 0x80, 0x80, 0xff},
	"lightgray": {0xd3, 0xd3, 0xd3, 0xff},
	"orange":    {0xff, 0xa5, 0, 0xff},
	"purple":    {0x80, 0, 0x80, 0xff},
	"navy":      {0, 0, 0x80, 0xff},
	"firebrick": {0xb2, 0x22, 0x22, 0xff},
	"steelblue": {0x46, 0x82, 0xb4, 0xff},
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" if c is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseColor parses a hex color ("#rgb", "#rrggbb" or "#rrggbbaa") or
// one of a small set of CSS color names. It reports ok=false for
// None and the empty string.
func ParseColor(s string) (c color.NRGBA, ok bool, err error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == None {
		return color.NRGBA{}, false, nil
	}
	if rgba, ok := named[s]; ok {
		return color.NRGBA(rgba), true, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false, fmt.Errorf("unknown color %q", s)
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, false, fmt.Errorf("malformed color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, false, fmt.Errorf("malformed color %q", s)
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, true, nil
}
