// Package dom wraps golang.org/x/net/html trees so charts can be appended to
// an existing element of a page.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrContainerNotFound is returned when no element carries the requested id.
	ErrContainerNotFound = errors.New("container element not found")
	// ErrNoContainer is returned when appending to a nil container.
	ErrNoContainer = errors.New("no container element")
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// ParseDocument parses an HTML page from r.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// NewDocument builds a minimal page containing one empty svg element with the
// given id and size.
func NewDocument(id string, width, height int) (*Document, error) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title>
<style>svg path { fill: none; }</style></head>
<body>
<svg id="%s" width="%d" height="%d"></svg>
</body>
</html>
`, html.EscapeString(id), html.EscapeString(id), width, height)
	return ParseDocument(strings.NewReader(page))
}

// Find returns the element whose id attribute equals id.
func (d *Document) Find(id string) (*Container, error) {
	id = strings.TrimPrefix(id, "#")
	if n := findByID(d.root, id); n != nil {
		return &Container{node: n}, nil
	}
	return nil, fmt.Errorf("%w: #%s", ErrContainerNotFound, id)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && Attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Container is a handle to an element that new nodes are appended into.
type Container struct {
	node *html.Node
}

// Wrap returns a Container for an existing element node.
func Wrap(n *html.Node) *Container {
	if n == nil {
		return nil
	}
	return &Container{node: n}
}

// Node returns the underlying element.
func (c *Container) Node() *html.Node { return c.node }

// Append creates a child element with the given tag and attributes (key, value
// pairs) as the container's last child. Children of an svg element inherit
// its namespace.
func (c *Container) Append(tag string, attrs ...string) (*html.Node, error) {
	if c == nil || c.node == nil {
		return nil, ErrNoContainer
	}
	if len(attrs)%2 != 0 {
		return nil, fmt.Errorf("odd number of attribute arguments for <%s>", tag)
	}
	child := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		DataAtom:  atom.Lookup([]byte(tag)),
		Namespace: c.namespace(),
	}
	for i := 0; i < len(attrs); i += 2 {
		child.Attr = append(child.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	c.node.AppendChild(child)
	return child, nil
}

// Children returns the direct element children with the given tag, in order.
func (c *Container) Children(tag string) []*html.Node {
	if c == nil || c.node == nil {
		return nil
	}
	var out []*html.Node
	for n := c.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
	}
	return out
}

func (c *Container) namespace() string {
	if c.node.Namespace != "" {
		return c.node.Namespace
	}
	if c.node.Data == "svg" {
		return "svg"
	}
	return ""
}

// Attr returns the value of attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
