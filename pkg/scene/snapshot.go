package scene

import (
	"github.com/matzehuels/layoutkit/pkg/layout"
)

// Node is a serializable snapshot of an item's geometry.
type Node struct {
	ID       string  `json:"id" yaml:"id" bson:"id"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Kind     string  `json:"kind" yaml:"kind" bson:"kind"`
	X        float64 `json:"x" yaml:"x" bson:"x"`
	Y        float64 `json:"y" yaml:"y" bson:"y"`
	Width    float64 `json:"width" yaml:"width" bson:"width"`
	Height   float64 `json:"height" yaml:"height" bson:"height"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty" bson:"text,omitempty"`
	Children []Node  `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// Snapshot captures the geometry of it and its descendants.
func Snapshot(it *Item) Node {
	n := Node{
		ID:     it.id.String(),
		Name:   it.name,
		Kind:   string(it.kind),
		X:      it.Property(layout.PropX),
		Y:      it.Property(layout.PropY),
		Width:  it.Property(layout.PropWidth),
		Height: it.Property(layout.PropHeight),
		Text:   it.text,
	}
	if len(it.children) > 0 {
		n.Children = make([]Node, len(it.children))
		for i, c := range it.children {
			n.Children[i] = Snapshot(c)
		}
	}
	return n
}

// Find returns the first node named name in depth-first order.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for i := range n.Children {
		if found := n.Children[i].Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes in the snapshot.
func (n *Node) Count() int {
	total := 1
	for i := range n.Children {
		total += n.Children[i].Count()
	}
	return total
}
