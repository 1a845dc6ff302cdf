package markup

import (
	"regexp"
	"strings"
	"unicode"
)

// SystemFonts are assumed to be present on the reader's device and are never loaded remotely.
var SystemFonts = []string{
	"Georgia", "Times New Roman", "Courier New", "Palatino", "Garamond",
	"Bookman", "Comic Sans MS", "Trebuchet MS", "Arial Black", "Impact",
	"Lucida Console", "Lucida Sans", "Verdana", "Arial", "Helvetica",
	"Tahoma", "serif", "sans-serif", "monospace", "cursive", "fantasy",
}

// AllowedFonts are the font families known to render well.
// Families outside this list are still accepted.
var AllowedFonts = append(append([]string{}, SystemFonts...),
	"Dancing Script", "Playfair Display", "Lora", "Merriweather",
	"Libre Baskerville", "Cormorant Garamond", "EB Garamond",
	"Crimson Text", "Source Serif Pro", "PT Serif",
	"Great Vibes", "Pacifico", "Satisfy", "Caveat", "Kalam",
	"Indie Flower", "Sacramento", "Tangerine", "Alex Brush",
	"Allura", "Amatic SC", "Cinzel", "Cinzel Decorative",
	"Josefin Sans", "Montserrat", "Raleway", "Oswald", "Roboto Slab",
	"Permanent Marker", "Press Start 2P", "Special Elite",
)

// FontCatalog holds the system and allow-listed font sets.
type FontCatalog struct {
	system  map[string]struct{}
	allowed map[string]struct{}
}

// DefaultFonts is the catalog built from SystemFonts and AllowedFonts.
var DefaultFonts = NewFontCatalog(nil, nil)

// NewFontCatalog returns a catalog of the built-in fonts plus the given extra names.
// Extra system fonts are allow-listed too.
func NewFontCatalog(extraSystem, extraAllowed []string) *FontCatalog {
	c := &FontCatalog{
		system:  map[string]struct{}{},
		allowed: map[string]struct{}{},
	}
	for _, n := range append(append([]string{}, SystemFonts...), extraSystem...) {
		c.system[fontKey(n)] = struct{}{}
		c.allowed[fontKey(n)] = struct{}{}
	}
	for _, n := range append(append([]string{}, AllowedFonts...), extraAllowed...) {
		c.allowed[fontKey(n)] = struct{}{}
	}
	return c
}

func fontKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsSystem reports whether name is a system font, ignoring case.
func (c *FontCatalog) IsSystem(name string) bool {
	_, ok := c.system[fontKey(name)]
	return ok
}

// IsAllowed reports whether name is allow-listed, ignoring case.
func (c *FontCatalog) IsAllowed(name string) bool {
	_, ok := c.allowed[fontKey(name)]
	return ok
}

// Family returns the family name to use for the raw font tag parameter.
// For names off the allow-list anything but letters, digits, spaces, '-' and '_'
// is removed so the name can be placed in a CSS value and a stylesheet URL as is.
func (c *FontCatalog) Family(param string) (string, bool) {
	name := strings.TrimSpace(param)
	if !c.IsAllowed(name) {
		name = strings.TrimSpace(strings.Map(func(r rune) rune {
			switch {
			case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ', r == '-', r == '_':
				return r
			default:
				return -1
			}
		}, name))
	}
	if name == "" {
		return "", false
	}
	return name, true
}

var fontTagRe = regexp.MustCompile(`(?i)\{(?:font|police):([^}]+)\}`)

// Discover returns the distinct custom font families referenced by font tags in content.
// System fonts are excluded. Names are compared case-insensitively and returned in the
// order they are first seen.
func (c *FontCatalog) Discover(content string) []string {
	var (
		fonts []string
		seen  = map[string]struct{}{}
	)
	for _, m := range fontTagRe.FindAllStringSubmatch(content, -1) {
		name, ok := c.Family(m[1])
		if !ok || c.IsSystem(name) {
			continue
		}
		if _, ok := seen[fontKey(name)]; ok {
			continue
		}
		seen[fontKey(name)] = struct{}{}
		fonts = append(fonts, name)
	}
	return fonts
}

// DiscoverFonts is DefaultFonts.Discover.
func DiscoverFonts(content string) []string {
	return DefaultFonts.Discover(content)
}
