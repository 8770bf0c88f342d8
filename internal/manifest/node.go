package manifest

// Kind is the tagged-variant type of a document value.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindNull
	KindMapping
	KindSequence
)

// Node is one value in the document tree. Mappings remember key insertion
// order as encountered in the source; scalars remember the byte offsets of
// their raw token so they can be rewritten in place.
type Node struct {
	kind     Kind
	str      string // decoded string value, or the literal text for other scalars
	keys     []string
	children map[string]*Node
	items    []*Node

	start, end int  // raw token offsets, scalars only
	style      byte // '"', '\'' or 0 (plain), YAML scalars only
	spliceable bool // false for block scalars and folded plain scalars
}

// Kind returns the variant tag of the node.
func (n *Node) Kind() Kind { return n.kind }

// Keys returns the mapping keys in source order. Nil for non-mappings.
func (n *Node) Keys() []string { return n.keys }

// Child returns the value for a mapping key.
func (n *Node) Child(key string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	child, ok := n.children[key]
	return child, ok
}

// Items returns the sequence elements in source order. Nil for non-sequences.
func (n *Node) Items() []*Node { return n.items }

// StringValue returns the decoded scalar text for string nodes.
func (n *Node) StringValue() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.str, true
}

func newMapping() *Node {
	return &Node{kind: KindMapping, children: make(map[string]*Node)}
}

func (n *Node) put(key string, child *Node) bool {
	if _, dup := n.children[key]; dup {
		return false
	}
	n.keys = append(n.keys, key)
	n.children[key] = child
	return true
}
