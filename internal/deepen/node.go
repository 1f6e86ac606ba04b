package deepen

import (
	"github.com/jacoelho/jflat/internal/value"
)

type nodeKind uint8

const (
	leafNode nodeKind = iota
	objectNode
	arrayNode
)

func (k nodeKind) String() string {
	switch k {
	case objectNode:
		return "object"
	case arrayNode:
		return "array"
	default:
		return "leaf"
	}
}

// node is the mutable form of a value while a tree is being built. A nil
// *node inside items is a hole.
type node struct {
	kind    nodeKind
	leaf    value.Value
	members []*member
	fields  map[string]*member
	items   []*node
}

type member struct {
	key   string
	child *node
}

func newLeafNode(v value.Value) *node {
	return &node{kind: leafNode, leaf: v}
}

func newObjectNode() *node {
	return &node{kind: objectNode, fields: make(map[string]*member)}
}

func newArrayNode() *node {
	return &node{kind: arrayNode}
}

func (n *node) promote(kind nodeKind) {
	n.kind = kind
	n.leaf = value.Value{}
	if kind == objectNode {
		n.fields = make(map[string]*member)
	}
}

// field returns the slot for name, registering name on first use.
func (n *node) field(name string) **node {
	m, ok := n.fields[name]
	if !ok {
		m = &member{key: name}
		n.fields[name] = m
		n.members = append(n.members, m)
	}
	return &m.child
}

// item returns the slot for index i, growing the array with holes.
func (n *node) item(i int) **node {
	for len(n.items) <= i {
		n.items = append(n.items, nil)
	}
	return &n.items[i]
}

func (n *node) describe() string {
	if n.kind == leafNode {
		return n.leaf.Kind().String()
	}
	return n.kind.String()
}

func (n *node) freeze() value.Value {
	if n == nil {
		return value.Null()
	}
	switch n.kind {
	case objectNode:
		obj := value.NewObject()
		for _, m := range n.members {
			obj.Set(m.key, m.child.freeze())
		}
		return value.ObjectValue(obj)
	case arrayNode:
		items := make([]value.Value, len(n.items))
		for i, item := range n.items {
			items[i] = item.freeze()
		}
		return value.Array(items...)
	default:
		return n.leaf
	}
}
