package markup

import (
	"regexp"
	"strings"
)

type Property string

const (
	PropFontWeight     Property = "font-weight"
	PropFontStyle      Property = "font-style"
	PropTextDecoration Property = "text-decoration"
	PropFontFamily     Property = "font-family"
	PropFontSize       Property = "font-size"
	PropColor          Property = "color"
	PropTextTransform  Property = "text-transform"
	PropFontVariant    Property = "font-variant"
	PropLetterSpacing  Property = "letter-spacing"
	PropDisplay        Property = "display"
	PropTextAlign      Property = "text-align"
)

// Properties is the closed set of properties a Style may carry.
var Properties = []Property{
	PropFontWeight,
	PropFontStyle,
	PropTextDecoration,
	PropFontFamily,
	PropFontSize,
	PropColor,
	PropTextTransform,
	PropFontVariant,
	PropLetterSpacing,
	PropDisplay,
	PropTextAlign,
}

type Declaration struct {
	Property Property `json:"property"`
	Value    string   `json:"value"`
}

// Style is an ordered list of declarations.
type Style []Declaration

// String returns the style as an inline CSS declaration list.
func (s Style) String() string {
	decls := make([]string, 0, len(s))
	for _, d := range s {
		decls = append(decls, string(d.Property)+": "+d.Value)
	}
	return strings.Join(decls, "; ")
}

// Get returns the value of p, if set.
func (s Style) Get(p Property) (string, bool) {
	for _, d := range s {
		if d.Property == p {
			return d.Value, true
		}
	}
	return "", false
}

// Merge returns a new Style with the declarations of o applied over s.
func (s Style) Merge(o Style) Style {
	merged := make(Style, 0, len(s)+len(o))
	merged = append(merged, s...)
	for _, d := range o {
		replaced := false
		for i := range merged {
			if merged[i].Property == d.Property {
				merged[i].Value = d.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, d)
		}
	}
	return merged
}

// Resolver maps a tag name and its raw parameter to a Style.
// The name is passed lower-cased. ok is false when the tag is not recognized
// or the parameter is invalid.
type Resolver interface {
	Resolve(name, param string) (_ Style, ok bool)
}

type ResolverFunc func(name, param string) (Style, bool)

func (f ResolverFunc) Resolve(name, param string) (Style, bool) {
	return f(name, param)
}

const (
	tagBold      = "bold"
	tagItalic    = "italic"
	tagUnderline = "underline"
	tagFont      = "font"
	tagSize      = "size"
	tagColor     = "color"
	tagUppercase = "uppercase"
	tagSmallcaps = "smallcaps"
	tagSpacing   = "spacing"
	tagCenter    = "center"
	tagRight     = "right"
)

var aliases = map[string]string{
	"b":                tagBold,
	"gras":             tagBold,
	"i":                tagItalic,
	"italique":         tagItalic,
	"u":                tagUnderline,
	"souligne":         tagUnderline,
	"police":           tagFont,
	"taille":           tagSize,
	"couleur":          tagColor,
	"majuscule":        tagUppercase,
	"petitescapitales": tagSmallcaps,
	"espacement":       tagSpacing,
	"centre":           tagCenter,
	"droite":           tagRight,
}

// Canonical returns the canonical tag name for name or one of its aliases.
func Canonical(name string) string {
	name = strings.ToLower(name)
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

var (
	sizeRe    = regexp.MustCompile(`^(\d+(?:\.\d+)?)(px|em|rem|%)$`)
	spacingRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)(px|em|rem)$`)
	numberRe  = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	colorRe   = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgb\(.+\)|hsl\(.+\))$`)
)

func fixed(decls ...Declaration) func(string) (Style, bool) {
	return func(string) (Style, bool) {
		return append(Style(nil), decls...), true
	}
}

func length(p Property, unitRe *regexp.Regexp) func(string) (Style, bool) {
	return func(param string) (Style, bool) {
		switch {
		case unitRe.MatchString(param):
			return Style{{p, param}}, true
		case numberRe.MatchString(param):
			return Style{{p, param + "px"}}, true
		default:
			return nil, false
		}
	}
}

func styleTable(fonts *FontCatalog) map[string]func(param string) (Style, bool) {
	return map[string]func(param string) (Style, bool){
		tagBold:      fixed(Declaration{PropFontWeight, "bold"}),
		tagItalic:    fixed(Declaration{PropFontStyle, "italic"}),
		tagUnderline: fixed(Declaration{PropTextDecoration, "underline"}),
		tagFont: func(param string) (Style, bool) {
			family, ok := fonts.Family(param)
			if !ok {
				return nil, false
			}
			return Style{{PropFontFamily, "'" + family + "', serif"}}, true
		},
		tagSize: length(PropFontSize, sizeRe),
		tagColor: func(param string) (Style, bool) {
			if !colorRe.MatchString(param) {
				return nil, false
			}
			return Style{{PropColor, param}}, true
		},
		tagUppercase: fixed(Declaration{PropTextTransform, "uppercase"}),
		tagSmallcaps: fixed(Declaration{PropFontVariant, "small-caps"}),
		tagSpacing:   length(PropLetterSpacing, spacingRe),
		tagCenter:    fixed(Declaration{PropDisplay, "block"}, Declaration{PropTextAlign, "center"}),
		tagRight:     fixed(Declaration{PropDisplay, "block"}, Declaration{PropTextAlign, "right"}),
	}
}

// NewResolver returns a Resolver for the built-in tags and their aliases.
// Font tags are checked against fonts.
func NewResolver(fonts *FontCatalog) Resolver {
	if fonts == nil {
		fonts = DefaultFonts
	}
	table := styleTable(fonts)
	return ResolverFunc(func(name, param string) (Style, bool) {
		fn, ok := table[Canonical(name)]
		if !ok {
			return nil, false
		}
		return fn(param)
	})
}

// DefaultResolver resolves the built-in tags against DefaultFonts.
var DefaultResolver = NewResolver(DefaultFonts)
