// Package scene provides an in-memory item tree that hosts the layout engine,
// and declarative scene documents that build such trees.
//
// # Items
//
// An [Item] carries named float64 properties, ordered children and
// per-property change subscribers. It implements [layout.Container] and
// [layout.TextObject], so every engine call works on it directly:
//
//	row := scene.NewRow("toolbar")
//	row.Resize(210, 40)
//	row.AddChild(icon)
//	layout.New().AutoSizeChildren(row, "h")
//
// Text items measure contentWidth and contentHeight with a
// golang.org/x/image font face (the 7x13 bitmap face unless configured).
//
// # Documents
//
// A [Document] declares a tree in TOML, YAML or JSON:
//
//	name = "toolbar"
//
//	[root]
//	type = "row"
//	width = 210
//	auto_size = "h"
//
//	[[root.children]]
//	type = "item"
//	width = 50
//
// [Build] turns a document into items. Item types other than item, row,
// column and text are resolved through a [Registry]; pkg/widgets registers
// ListView and Slider. Directives (auto_size, equal_size, align) are recorded
// on the items and applied by pkg/pipeline.
//
// # Snapshots
//
// [Snapshot] captures the geometry of a tree as plain [Node] values that
// serialize to JSON, YAML and BSON.
package scene
