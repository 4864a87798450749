package dom

import (
	"errors"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html><html><body>
<div id="answer0"></div>
<svg id="answer1" width="1200" height="600"><g></g></svg>
</body></html>`

func TestFind(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(testPage))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	for _, id := range []string{"answer1", "#answer1"} {
		c, err := doc.Find(id)
		if err != nil {
			t.Fatalf("Find(%q) error = %v", id, err)
		}
		if c.Node().Data != "svg" {
			t.Errorf("Find(%q) = <%s>, want <svg>", id, c.Node().Data)
		}
	}

	_, err = doc.Find("answer9")
	if !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("Find(missing) error = %v, want ErrContainerNotFound", err)
	}
}

func TestAppendInheritsSVGNamespace(t *testing.T) {
	doc, _ := ParseDocument(strings.NewReader(testPage))
	c, _ := doc.Find("answer1")

	n, err := c.Append("path", "d", "M0,0L1,1", "stroke", "#2e2928")
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if n.Namespace != "svg" {
		t.Errorf("appended namespace = %q, want svg", n.Namespace)
	}
	if Attr(n, "stroke") != "#2e2928" || Attr(n, "d") != "M0,0L1,1" {
		t.Errorf("appended attrs = %+v", n.Attr)
	}
	if got := c.Node().LastChild; got != n {
		t.Error("appended node is not the last child")
	}

	out := doc.String()
	if !strings.Contains(out, `<path d="M0,0L1,1" stroke="#2e2928">`) {
		t.Errorf("rendered document missing path: %s", out)
	}
}

func TestAppendIsNotIdempotent(t *testing.T) {
	doc, _ := NewDocument("answer1", 1200, 600)
	c, err := doc.Find("answer1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := c.Append("path"); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if got := len(c.Children("path")); got != 2 {
		t.Errorf("Children(path) = %d, want 2", got)
	}
}

func TestAppendErrors(t *testing.T) {
	var c *Container
	if _, err := c.Append("path"); !errors.Is(err, ErrNoContainer) {
		t.Errorf("nil Append() error = %v, want ErrNoContainer", err)
	}
	if got := c.Children("path"); got != nil {
		t.Errorf("nil Children() = %v, want nil", got)
	}
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	doc, _ := NewDocument("x", 10, 10)
	c, _ = doc.Find("x")
	if _, err := c.Append("path", "d"); err == nil {
		t.Error("Append() with odd attrs expected error")
	}
}
