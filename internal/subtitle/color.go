package subtitle

import (
	"fmt"
	"strings"
)

var colorNames = map[string]string{
	"white":   "#FFFFFF",
	"black":   "#000000",
	"red":     "#FF0000",
	"green":   "#00FF00",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"pink":    "#FFC0CB",
	"brown":   "#A52A2A",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ColorNameToHex maps a color name to its "#RRGGBB" value. Unknown
// names fall back to white.
func ColorNameToHex(name string) string {
	if hex, ok := colorNames[strings.ToLower(name)]; ok {
		return hex
	}
	return "#FFFFFF"
}

// HexToRGB splits a "#RRGGBB" (or "RRGGBB") string into components.
func HexToRGB(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// assColor converts a color name or hex string to the ASS primary
// color format &H00BBGGRR (alpha-stripped, channel order reversed).
func assColor(color string) string {
	if !strings.HasPrefix(color, "#") {
		color = ColorNameToHex(color)
	}
	r, g, b, ok := HexToRGB(color)
	if !ok {
		r, g, b = 255, 255, 255
	}
	return fmt.Sprintf("&H00%02X%02X%02X", b, g, r)
}
