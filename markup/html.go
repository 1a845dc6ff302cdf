package markup

import (
	"bytes"
	"regexp"

	"github.com/k1LoW/errors"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultClass = "poem"
	lineClass    = "poem-line"
	lineStyle    = "margin: 0.15em 0"
)

type htmlConfig struct {
	class string
}

type HTMLOption func(*htmlConfig)

// WithClass sets the class of the container element.
func WithClass(class string) HTMLOption {
	return func(c *htmlConfig) {
		c.class = class
	}
}

// RenderHTML renders doc as an HTML fragment: a container div holding one paragraph
// per line, a line break per blank line and a styled span per span node.
func RenderHTML(doc *Document, opts ...HTMLOption) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	c := &htmlConfig{class: DefaultClass}
	for _, opt := range opts {
		opt(c)
	}
	root := element(atom.Div, attr("class", c.class))
	for _, l := range doc.Lines {
		if l.Break {
			root.AppendChild(element(atom.Br))
			continue
		}
		p := element(atom.P, attr("class", lineClass), attr("style", lineStyle))
		appendHTML(p, l.Nodes)
		root.AppendChild(p)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func appendHTML(parent *html.Node, nodes []*Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindSpan:
			span := element(atom.Span, attr("style", n.Style.String()))
			appendHTML(span, n.Children)
			parent.AppendChild(span)
		default:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		}
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

var policy = newPolicy()

var (
	fontFamilyValueRe = regexp.MustCompile(`^'[\p{L}\p{N} _-]+', serif$`)
	lineStyleValueRe  = regexp.MustCompile(`^0\.15em 0$`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "p", "span", "br")
	p.AllowAttrs("class").OnElements("div", "p")
	p.AllowStyles("margin").Matching(lineStyleValueRe).OnElements("p")
	p.AllowStyles(string(PropFontFamily)).Matching(fontFamilyValueRe).OnElements("span")
	var props []string
	for _, prop := range Properties {
		if prop == PropFontFamily {
			continue
		}
		props = append(props, string(prop))
	}
	p.AllowStyles(props...).OnElements("span")
	return p
}

// Sanitize strips everything from an HTML fragment except the elements, classes and
// style properties RenderHTML produces.
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}
