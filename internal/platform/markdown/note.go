// Package markdown edits markdown notes that carry YAML frontmatter and
// generated blocks owned by crux.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Note is a markdown document split into frontmatter and body.
type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a leading
// separator is all body.
func Parse(content string) (Note, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, separator)
	raw, body, ok := strings.Cut(rest, "\n"+separator)
	if !ok {
		if strings.HasSuffix(rest, "\n---") {
			raw, body = strings.TrimSuffix(rest, "\n---"), ""
		} else {
			return Note{}, fmt.Errorf("invalid frontmatter: missing closing separator")
		}
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return Note{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return Note{Meta: meta, Body: body}, nil
}

// Render writes the note back out. An empty Meta renders no frontmatter.
func (n Note) Render() (string, error) {
	if len(n.Meta) == 0 {
		return n.Body, nil
	}
	raw, err := yaml.Marshal(n.Meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(n.Body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}

// Set stores a frontmatter value, creating Meta if needed.
func (n *Note) Set(key string, value any) {
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	n.Meta[key] = value
}

// SetBlock replaces the generated block called name, or appends it when the
// body has none. Text outside the markers is never touched.
func (n *Note) SetBlock(name, generated string) {
	start, end := blockMarkers(name)
	block := start + "\n" + strings.TrimRight(generated, "\n") + "\n" + end

	body := n.Body
	if i := strings.Index(body, start); i >= 0 {
		if j := strings.Index(body[i:], end); j >= 0 {
			j += i + len(end)
			n.Body = body[:i] + block + body[j:]
			return
		}
	}
	switch {
	case strings.TrimSpace(body) == "":
		n.Body = block + "\n"
	case strings.HasSuffix(body, "\n"):
		n.Body = body + "\n" + block + "\n"
	default:
		n.Body = body + "\n\n" + block + "\n"
	}
}

// Block returns the current contents of the generated block called name.
func (n Note) Block(name string) (string, bool) {
	start, end := blockMarkers(name)
	i := strings.Index(n.Body, start)
	if i < 0 {
		return "", false
	}
	rest := n.Body[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return "", false
	}
	return strings.Trim(rest[:j], "\n"), true
}

func blockMarkers(name string) (string, string) {
	return "<!-- crux:" + name + ":start -->", "<!-- crux:" + name + ":end -->"
}
