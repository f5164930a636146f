package xmldoc

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// node is a minimal XML element tree. text accumulates all character data that
// appears directly inside the element; children keep document order.
type node struct {
	name     string
	attr     map[string]string
	text     string
	children []*node
}

// find returns the direct children with the given element name, in order.
func (n *node) find(name string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// parseFragment parses one comment block as a single-rooted XML fragment.
// Any well-formedness violation, including trailing content after the root
// element, is returned as an error for the caller to diagnose.
func parseFragment(fragment string) (*node, error) {
	dec := xml.NewDecoder(strings.NewReader(fragment))
	// Doc comments are not full documents; entities beyond the XML builtins
	// are treated as literal text rather than failing the block.
	dec.Strict = true
	dec.Entity = xml.HTMLEntity

	var root *node
	var stack []*node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{
				name: t.Name.Local,
				attr: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				n.attr[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements in documentation block")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, errors.New("text outside the root element")
			}
		}
	}

	if len(stack) != 0 {
		return nil, errors.New("unterminated element in documentation block")
	}
	if root == nil {
		return nil, errors.New("no element found in documentation block")
	}
	return root, nil
}
