package dom

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var (
	ErrUnsupportedColor = errors.New("unsupported color format")

	colorReg = regexp.MustCompile(`[rgba()#\s"]`)

	namedColors = map[string]color.RGBA{
		"black":   {0, 0, 0, 255},
		"white":   {255, 255, 255, 255},
		"red":     {255, 0, 0, 255},
		"green":   {0, 128, 0, 255},
		"blue":    {0, 0, 255, 255},
		"yellow":  {255, 255, 0, 255},
		"gray":    {128, 128, 128, 255},
		"grey":    {128, 128, 128, 255},
		"orange":  {255, 165, 0, 255},
		"purple":  {128, 0, 128, 255},
		"silver":  {192, 192, 192, 255},
		"maroon":  {128, 0, 0, 255},
		"navy":    {0, 0, 128, 255},
		"teal":    {0, 128, 128, 255},
		"olive":   {128, 128, 0, 255},
		"lime":    {0, 255, 0, 255},
		"aqua":    {0, 255, 255, 255},
		"fuchsia": {255, 0, 255, 255},
	}
)

// ParseColor parses `rgb()`, `rgba()`, hex and basic named colors.
func ParseColor(raw string) (color.RGBA, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if c, ok := namedColors[raw]; ok {
		return c, nil
	}
	if raw == "" {
		return color.RGBA{}, ErrUnsupportedColor
	}
	isDecRGB := strings.HasPrefix(raw, "rgb")
	isHex := raw[0] == '#'
	switch {
	case isDecRGB:
		raw = colorReg.ReplaceAllString(raw, "")
		c := color.RGBA{A: 255}
		for i, n := range strings.Split(raw, ",") {
			if i == 3 {
				f, err := strconv.ParseFloat(n, 64)
				if err != nil {
					return c, err
				}
				c.A = uint8(f * 255)
				break
			}
			nn, err := strconv.ParseUint(n, 10, 8)
			if err != nil {
				return c, err
			}
			switch i {
			case 0:
				c.R = uint8(nn)
			case 1:
				c.G = uint8(nn)
			case 2:
				c.B = uint8(nn)
			}
		}
		return c, nil
	case isHex:
		raw = raw[1:]
		if len(raw) == 3 {
			raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
		}
		b, err := hex.DecodeString(raw)
		if err != nil {
			return color.RGBA{}, err
		}
		if len(b) < 3 {
			return color.RGBA{}, ErrUnsupportedColor
		}
		c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}
		if len(b) > 3 {
			c.A = b[3]
		}
		return c, nil
	}
	return color.RGBA{}, ErrUnsupportedColor
}

// DarkColor returns the dark mode counterpart of a CSS color: lightness is
// inverted while hue is kept. Unparsable values are returned unchanged.
func DarkColor(raw string) string {
	c, err := ParseColor(raw)
	if err != nil {
		return raw
	}
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	lum := (max(r, g, b) + min(r, g, b)) / 2
	shift := 255 - 2*lum
	clamp := func(v float64) uint8 {
		switch {
		case v < 0:
			return 0
		case v > 255:
			return 255
		}
		return uint8(v + 0.5)
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", clamp(r+shift), clamp(g+shift), clamp(b+shift))
}

// TransformToDarkColor rewrites color and background-color of n and its
// descendants to their dark mode counterparts, keeping the original value
// in data-ogsc / data-ogsb.
func TransformToDarkColor(n *html.Node) {
	if n.Type == html.ElementNode {
		style := GetStyle(n)
		if v := style.Get("color"); v != "" && !HasAttr(n, "data-ogsc") {
			SetAttr(n, "data-ogsc", v)
			style.Set("color", DarkColor(v))
		}
		if v := style.Get("background-color"); v != "" && !HasAttr(n, "data-ogsb") {
			SetAttr(n, "data-ogsb", v)
			style.Set("background-color", DarkColor(v))
		}
		if len(style) > 0 {
			SetAttr(n, "style", style.String())
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		TransformToDarkColor(c)
	}
}

// TransformToLightColor reverts TransformToDarkColor, putting back the
// colors kept in data-ogsc / data-ogsb.
func TransformToLightColor(n *html.Node) {
	if n.Type == html.ElementNode {
		style := GetStyle(n)
		changed := false
		if v := GetAttr(n, "data-ogsc"); v != "" {
			style.Set("color", v)
			RemoveAttr(n, "data-ogsc")
			changed = true
		}
		if v := GetAttr(n, "data-ogsb"); v != "" {
			style.Set("background-color", v)
			RemoveAttr(n, "data-ogsb")
			changed = true
		}
		if changed {
			SetAttr(n, "style", style.String())
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		TransformToLightColor(c)
	}
}
