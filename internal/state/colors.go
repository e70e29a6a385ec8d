package state

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Palette is the fixed set of brush colors offered by the toolbar.
var Palette = []string{"black", "red", "orange", "yellow", "green", "blue", "indigo", "purple", "white"}

var ErrBadColor = errors.New("unrecognized color")

// ParseColor accepts CSS color names ("indigo") and hex values ("#4b0082",
// "#fff").
func ParseColor(name string) (color.Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadColor)
	}
	if c, ok := colornames.Map[n]; ok {
		return c, nil
	}
	if strings.HasPrefix(n, "#") {
		c, err := colorful.Hex(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadColor, name, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadColor, name)
}
