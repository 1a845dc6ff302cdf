package content

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
)

const fmSep = "---\n"

const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Content is a poem file: optional YAML frontmatter followed by markup.
type Content struct {
	Frontmatter *Frontmatter
	Body        string
}

type Frontmatter struct {
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Chapter string   `yaml:"chapter,omitempty" json:"chapter,omitempty"`
	Status  string   `yaml:"status,omitempty" json:"status,omitempty"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// ParseFile reads and parses a poem file.
func ParseFile(f string) (_ *Content, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse splits b into frontmatter and body.
// Content without a leading "---" line is all body.
func Parse(b []byte) (_ *Content, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	c := &Content{Frontmatter: &Frontmatter{}}
	if !bytes.HasPrefix(b, []byte(fmSep)) {
		c.Body = string(b)
		return c, nil
	}
	stuffs := bytes.SplitN(b, []byte(fmSep), 3)
	if len(stuffs) != 3 {
		c.Body = string(b)
		return c, nil
	}
	if err := yaml.Unmarshal(stuffs[1], c.Frontmatter); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	c.Body = string(stuffs[2])
	return c, nil
}

// Lines returns the number of non-blank lines of the body.
func (c *Content) Lines() int {
	n := 0
	for _, l := range strings.Split(c.Body, "\n") {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}

// Store returns the variables available to conditions.
// status is StatusPublished unless the frontmatter sets it, e.g. to StatusDraft.
func (c *Content) Store() map[string]any {
	tags := c.Frontmatter.Tags
	if tags == nil {
		tags = []string{}
	}
	status := c.Frontmatter.Status
	if status == "" {
		status = StatusPublished
	}
	return map[string]any{
		"title":   c.Frontmatter.Title,
		"chapter": c.Frontmatter.Chapter,
		"status":  status,
		"tags":    tags,
		"lines":   c.Lines(),
	}
}

// Markup returns the body without the final newline of the file.
func (c *Content) Markup() string {
	return strings.TrimSuffix(c.Body, "\n")
}
