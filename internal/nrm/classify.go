package nrm

import "github.com/radio-control/cmexport/internal/cmdoc"

// Kind is the semantic type of a generic container.
type Kind int

const (
	KindUnknown Kind = iota
	KindDUFunction
	KindCell
	KindCarrier
	KindRelation
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindDUFunction: "du-function",
	KindCell:       "cell",
	KindCarrier:    "carrier",
	KindRelation:   "relation",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Container is a classified xn:VsDataContainer.
type Container struct {
	Node *cmdoc.Node
	Kind Kind

	// TypeTag is the text of the first xn:vsDataType below the container.
	TypeTag string

	// Block is the vendor attribute block matching Kind. It is nil for
	// KindUnknown and for typed containers that lack the block.
	Block *cmdoc.Node
}

// Classify determines the kind of a container.
//
// Carrier and relation containers are recognised by their attribute block sitting
// directly under xn:attributes. DU-function and cell containers are recognised by
// the type tag, with the block taken from anywhere below the container. The block
// rule is checked first.
func Classify(n *cmdoc.Node) Container {
	c := Container{Node: n}
	c.TypeTag, _ = cmdoc.Read(n, TagVsDataType.Local, TagVsDataType.Space)

	if b := n.ChildPath(TagAttributes, cmdoc.Vendor(TypeNRSectorCarrier)); b != nil {
		c.Kind, c.Block = KindCarrier, b
		return c
	}
	if b := n.ChildPath(TagAttributes, cmdoc.Vendor(TypeNRCellRelation)); b != nil {
		c.Kind, c.Block = KindRelation, b
		return c
	}

	switch c.TypeTag {
	case TypeGNBDUFunction:
		c.Kind = KindDUFunction
		c.Block = n.Descendant(cmdoc.Vendor(TypeGNBDUFunction))
	case TypeNRCellDU:
		c.Kind = KindCell
		c.Block = n.Descendant(cmdoc.Vendor(TypeNRCellDU))
	}
	return c
}
