// Package epg parses EPG advertisement documents into a navigable element
// tree and maps findings back to source lines.
package epg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Element is one node of the parsed XML tree.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
	Text     string
}

// Document is the transient per-validation view of one EPG file: the
// element tree plus the raw text split into lines for line attribution.
type Document struct {
	Root  *Element
	Lines []string
}

// Parse builds a Document from raw XML text. The returned error carries
// the parser diagnostic verbatim on malformed input.
func Parse(xmlText string) (*Document, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	var root *Element
	var stack []*Element

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// The token stream keeps going after the root closes, so an
			// element following it must be rejected here or it would
			// silently become a second root.
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("unexpected element <%s> after document root", t.Name.Local)
			}
			el := &Element{
				Name:  t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, attr := range t.Attr {
				el.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}

	return &Document{Root: root, Lines: SplitLines(xmlText)}, nil
}

// SplitLines splits raw text for line attribution. Kept separate from
// Parse so callers holding only the text can still resolve lines.
func SplitLines(xmlText string) []string {
	return strings.Split(xmlText, "\n")
}

// FirstChild returns the first direct child with the given tag name, or
// nil if none exists.
func (e *Element) FirstChild(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given tag name, in
// document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// HasChild reports whether a direct child with the given tag name exists.
func (e *Element) HasChild(name string) bool {
	return e.FirstChild(name) != nil
}

// Find returns the first descendant with the given tag name in
// depth-first document order, or nil if none exists.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant with the given tag name in depth-first
// document order.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// Attr returns an attribute value and whether the attribute was present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// TrimmedText returns the element's character data with surrounding
// whitespace removed.
func (e *Element) TrimmedText() string {
	return strings.TrimSpace(e.Text)
}

// IntValue reads the trimmed text of the first descendant with the given
// name as an integer. Missing elements and unparsable text both yield 0,
// matching how declared counts default when absent.
func (e *Element) IntValue(name string) int {
	c := e.Find(name)
	if c == nil {
		return 0
	}
	n, err := strconv.Atoi(c.TrimmedText())
	if err != nil {
		return 0
	}
	return n
}
