package markup

import (
	"strings"
)

type Kind string

const (
	KindText Kind = "text"
	KindSpan Kind = "span"
)

// Node is either a literal text run or a styled span wrapping child nodes.
type Node struct {
	Kind     Kind    `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Style    Style   `json:"style,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

func Span(style Style, children ...*Node) *Node {
	return &Node{Kind: KindSpan, Style: style, Children: children}
}

// Line is one line of content. A blank line is a Break.
type Line struct {
	Break bool    `json:"break,omitempty"`
	Nodes []*Node `json:"nodes,omitempty"`
}

type Document struct {
	Lines []*Line `json:"lines"`
}

type Parser struct {
	resolver Resolver
}

type Option func(*Parser)

// WithResolver sets the style resolution policy used for every matched tag.
func WithResolver(r Resolver) Option {
	return func(p *Parser) {
		p.resolver = r
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		resolver: DefaultResolver,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse parses content with the default resolver.
func Parse(content string) *Document {
	return defaultParser.Parse(content)
}

// ParseLine parses a single line with the default resolver.
func ParseLine(line string) []*Node {
	return defaultParser.ParseLine(line)
}

// Parse splits content into lines and parses each of them.
// Empty content yields a document without lines.
func (p *Parser) Parse(content string) *Document {
	doc := &Document{Lines: []*Line{}}
	if content == "" {
		return doc
	}
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) == "" {
			doc.Lines = append(doc.Lines, &Line{Break: true})
			continue
		}
		doc.Lines = append(doc.Lines, &Line{Nodes: p.ParseLine(l)})
	}
	return doc
}
