package cmdoc

// Read returns the text of the first descendant of n named field within the given
// scope. The scope is a short name from Namespaces or a schema URI. A nil node, no
// match, or a match without text all report absence.
func Read(n *Node, field, scope string) (string, bool) {
	if n == nil {
		return "", false
	}
	found := n.Descendant(Name{Space: Resolve(scope), Local: field})
	if found == nil || found.Text == "" {
		return "", false
	}
	return found.Text, true
}

// Value reads a vendor-scoped field, returning the empty string when absent.
func Value(n *Node, field string) string {
	v, _ := Read(n, field, "es")
	return v
}
