package markup

// Segment is a run of text with the style of all the spans enclosing it.
type Segment struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
	Break bool   `json:"break,omitempty"`
}

// Segments flattens doc into (text, style) pairs.
// Styles of nested spans are merged outer to inner, the innermost value winning.
func Segments(doc *Document) []Segment {
	var segs []Segment
	for i, l := range doc.Lines {
		if l.Break {
			segs = append(segs, Segment{Line: i, Break: true})
			continue
		}
		segs = flatten(segs, i, nil, l.Nodes)
	}
	return segs
}

func flatten(segs []Segment, line int, style Style, nodes []*Node) []Segment {
	for _, n := range nodes {
		if n.Kind == KindSpan {
			segs = flatten(segs, line, style.Merge(n.Style), n.Children)
			continue
		}
		segs = append(segs, Segment{Line: line, Text: n.Text, Style: style})
	}
	return segs
}
