// Package htmldoc runs the release-list window against HTML documents parsed
// with golang.org/x/net/html.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
)

var (
	ErrContainerNotFound = errors.New("list container not found")
	ErrListNotFound      = errors.New("container holds no <ul> or <ol>")
)

type Document struct {
	root *nethtml.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := nethtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

func (d *Document) Render(w io.Writer) error {
	if err := nethtml.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func (d *Document) String() string {
	var b strings.Builder
	_ = nethtml.Render(&b, d.root)
	return b.String()
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *nethtml.Node {
	return findElement(d.root, func(n *nethtml.Node) bool {
		return nodeAttr(n, "id") == id
	})
}

func findElement(node *nethtml.Node, match func(*nethtml.Node) bool) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && match(node) {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, match); found != nil {
			return found
		}
	}
	return nil
}

func findAllElements(node *nethtml.Node, match func(*nethtml.Node) bool) []*nethtml.Node {
	var out []*nethtml.Node
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode && match(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if node != nil {
		walk(node)
	}
	return out
}

// significantChildren skips whitespace-only text and comments.
func significantChildren(node *nethtml.Node) []*nethtml.Node {
	children := make([]*nethtml.Node, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case nethtml.CommentNode:
			continue
		case nethtml.TextNode:
			if strings.TrimSpace(child.Data) == "" {
				continue
			}
		}
		children = append(children, child)
	}
	return children
}

func isElement(node *nethtml.Node, tag string) bool {
	return node != nil && node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, tag)
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func setAttr(node *nethtml.Node, name, value string) {
	for i, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, nethtml.Attribute{Key: name, Val: value})
}

func removeAttr(node *nethtml.Node, name string) {
	kept := node.Attr[:0]
	for _, attr := range node.Attr {
		if !strings.EqualFold(attr.Key, name) {
			kept = append(kept, attr)
		}
	}
	node.Attr = kept
}

func hasClass(node *nethtml.Node, class string) bool {
	for _, c := range strings.Fields(nodeAttr(node, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func setClass(node *nethtml.Node, class string, on bool) {
	classes := strings.Fields(nodeAttr(node, "class"))
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	if on {
		kept = append(kept, class)
	}
	if len(kept) == 0 {
		removeAttr(node, "class")
		return
	}
	setAttr(node, "class", strings.Join(kept, " "))
}

// setHidden toggles display:none in the style attribute and keeps every other
// declaration.
func setHidden(node *nethtml.Node, hidden bool) {
	decls := strings.Split(nodeAttr(node, "style"), ";")
	kept := make([]string, 0, len(decls)+1)
	for _, decl := range decls {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), "display") {
			continue
		}
		kept = append(kept, decl)
	}
	if hidden {
		kept = append(kept, "display:none")
	}
	if len(kept) == 0 {
		removeAttr(node, "style")
		return
	}
	setAttr(node, "style", strings.Join(kept, ";"))
}

func isHidden(node *nethtml.Node) bool {
	for _, decl := range strings.Split(nodeAttr(node, "style"), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "display") && strings.EqualFold(strings.TrimSpace(value), "none") {
			return true
		}
	}
	return false
}

func collectText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectText(child))
	}
	return b.String()
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func element(tag string, attrs ...string) *nethtml.Node {
	n := &nethtml.Node{Type: nethtml.ElementNode, Data: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, nethtml.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *nethtml.Node {
	return &nethtml.Node{Type: nethtml.TextNode, Data: s}
}
