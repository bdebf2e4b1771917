package nrm

import "github.com/radio-control/cmexport/internal/cmdoc"

// Catalog holds every generic container of a document, classified, in document order.
type Catalog struct {
	containers []Container
	index      map[*cmdoc.Node]int
	counts     map[Kind]int
}

// NewCatalog classifies every xn:VsDataContainer below root.
func NewCatalog(root *cmdoc.Node) *Catalog {
	c := &Catalog{
		index:  make(map[*cmdoc.Node]int),
		counts: make(map[Kind]int),
	}
	root.Walk(func(n *cmdoc.Node) bool {
		if n.Name == TagVsDataContainer {
			c.index[n] = len(c.containers)
			cont := Classify(n)
			c.containers = append(c.containers, cont)
			c.counts[cont.Kind]++
		}
		return true
	})
	return c
}

// Len returns the number of containers.
func (c *Catalog) Len() int {
	return len(c.containers)
}

// All returns every container in document order.
func (c *Catalog) All() []Container {
	return c.containers
}

// OfKind returns the containers of one kind in document order.
func (c *Catalog) OfKind(k Kind) []Container {
	out := make([]Container, 0, c.counts[k])
	for _, cont := range c.containers {
		if cont.Kind == k {
			out = append(out, cont)
		}
	}
	return out
}

// Count returns the number of containers of one kind.
func (c *Catalog) Count(k Kind) int {
	return c.counts[k]
}

// Lookup returns the classification of a container node.
func (c *Catalog) Lookup(n *cmdoc.Node) (Container, bool) {
	i, ok := c.index[n]
	if !ok {
		return Container{}, false
	}
	return c.containers[i], true
}
