package markup

import (
	"strings"
)

// ParseLine parses one line of markup into literal and styled nodes.
// Malformed markup is never an error: the offending fragment is kept as literal text.
func (p *Parser) ParseLine(line string) []*Node {
	var nodes []*Node
	pos := 0
	for pos < len(line) {
		var n *Node
		n, pos = p.next(line, pos)
		nodes = appendNode(nodes, n)
	}
	return nodes
}

// next consumes one node starting at pos and returns it with the position scanning stopped at.
func (p *Parser) next(in string, pos int) (*Node, int) {
	open := strings.IndexByte(in[pos:], '{')
	switch {
	case open < 0:
		return Text(in[pos:]), len(in)
	case open > 0:
		return Text(in[pos : pos+open]), pos + open
	}
	open = pos

	end := strings.IndexByte(in[open:], '}')
	if end < 0 {
		return Text(in[open:]), len(in)
	}
	end += open
	tag := in[open+1 : end]

	// stray closing tag
	if strings.HasPrefix(tag, "/") {
		return Text(in[open : end+1]), end + 1
	}

	name, param, _ := strings.Cut(tag, ":")
	closeAt := findMatchingClose(in, end+1, name)
	if closeAt < 0 {
		return Text(in[open : end+1]), end + 1
	}
	after := closeAt + len(closeTag(name))

	style, ok := p.resolver.Resolve(strings.ToLower(name), param)
	if !ok {
		return Text(in[open:after]), after
	}
	return Span(style, p.ParseLine(in[end+1:closeAt])...), after
}

func closeTag(name string) string {
	return "{/" + name + "}"
}

// findMatchingClose returns the index of the closing tag matching an opening tag
// named name, searching from pos. Nested openers with the same name increase the depth.
// It returns -1 if there is no match.
func findMatchingClose(in string, pos int, name string) int {
	opener := "{" + name
	closer := closeTag(name)
	depth := 1
	for pos < len(in) {
		nextClose := strings.Index(in[pos:], closer)
		if nextClose < 0 {
			return -1
		}
		nextClose += pos
		nextOpen := strings.Index(in[pos:], opener)
		if nextOpen >= 0 && pos+nextOpen < nextClose {
			nextOpen += pos
			if i := nextOpen + len(opener); i < len(in) && (in[i] == '}' || in[i] == ':') {
				depth++
			}
			pos = nextOpen + 1
			continue
		}
		depth--
		if depth == 0 {
			return nextClose
		}
		pos = nextClose + len(closer)
	}
	return -1
}

// appendNode appends n, merging adjacent text runs.
func appendNode(nodes []*Node, n *Node) []*Node {
	if n.Kind == KindText {
		if n.Text == "" {
			return nodes
		}
		if l := len(nodes); l > 0 && nodes[l-1].Kind == KindText {
			nodes[l-1] = Text(nodes[l-1].Text + n.Text)
			return nodes
		}
	}
	return append(nodes, n)
}
