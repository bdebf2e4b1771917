package cmdoc

// Name is a namespace-qualified element or attribute name.
type Name struct {
	Space string
	Local string
}

// Attr is a single attribute of an element.
type Attr struct {
	Name  Name
	Value string
}

// Node is an element in the loaded tree. Text holds the character data that
// precedes the first child element or comment, which is the value of a leaf field.
type Node struct {
	Name     Name
	Attrs    []Attr
	Text     string
	Children []*Node
	Parent   *Node

	sealed bool
}

// Document owns the tree produced by Parse.
type Document struct {
	Root *Node

	// Digest is the hex SHA-256 of the raw input bytes.
	Digest string
	// Size is the length of the raw input in bytes.
	Size int

	// Recovered is the decoder error that ended parsing early, if any. The tree
	// holds everything decoded before it.
	Recovered error
}

// Attr returns the value of the first attribute with the given local name.
func (n *Node) Attr(local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the id attribute, empty when missing.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Is reports whether the node carries the given name.
func (n *Node) Is(name Name) bool {
	return n != nil && n.Name == name
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name Name) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildPath follows a path of direct children, taking the first match at each step.
func (n *Node) ChildPath(names ...Name) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Descendant returns the first descendant with the given name in document order.
// The node itself is not considered.
func (n *Node) Descendant(name Name) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if found := c.Descendant(name); found != nil {
			return found
		}
	}
	return nil
}

// Descendants returns every descendant with the given name in document order.
// The node itself is not included.
func (n *Node) Descendants(name Name) []*Node {
	var out []*Node
	n.Walk(func(d *Node) bool {
		if d.Name == name {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Walk visits every descendant depth-first in document order. Returning false from
// fn skips the subtree below the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// HasAncestorWithin reports whether some ancestor strictly between n and stop
// carries the given name. stop itself is not checked.
func (n *Node) HasAncestorWithin(name Name, stop *Node) bool {
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
	n.sealed = true
}
