// Package widgets provides the ListView and Slider item types for scene
// documents.
//
// [Register] adds both to a scene registry:
//
//	reg := scene.NewRegistry()
//	widgets.Register(reg)
//	root, err := scene.Build(doc, reg)
//
// A ListView is declared with a model block; its children are generated,
// one text delegate per record:
//
//	[[root.children]]
//	type = "ListView"
//	model = { roles = ["title"], items = [{ title = "one" }, { title = "two" }] }
//
// A Slider reads from, to, value and stepSize from its props.
package widgets

import "github.com/matzehuels/layoutkit/pkg/scene"

// Type names registered by Register.
const (
	TypeListView = "ListView"
	TypeSlider   = "Slider"
)

// Register adds the widget types to reg.
func Register(reg *scene.Registry) error {
	if err := reg.Register(TypeListView, listViewFactory); err != nil {
		return err
	}
	return reg.Register(TypeSlider, sliderFactory)
}

// NewRegistry returns a scene registry with the built-in types and the
// widget types.
func NewRegistry() *scene.Registry {
	reg := scene.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err) // fresh registry cannot clash
	}
	return reg
}
