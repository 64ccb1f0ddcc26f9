// Package pkg provides the core libraries for layoutkit.
//
// # Overview
//
// Layoutkit sizes and positions the children of tree-structured containers
// (rows and columns of items) along one axis at a time, keeps live list views
// in sync with a record model, and exposes the result through a CLI and an
// HTTP API. The pkg directory is organized into three areas:
//
//  1. Engine - size allocation, directives and the model protocol
//  2. Scene - item trees, scene documents and widgets built on the engine
//  3. Infrastructure - pipeline, caching, rendering and the HTTP API
//
// # Architecture
//
// The typical data flow through layoutkit:
//
//	Scene document (TOML, YAML, JSON)
//	         ↓
//	    [scene] package (decode + build item tree)
//	         ↓
//	    [layout] package (allocate sizes, apply directives)
//	         ↓
//	    [pipeline] package (resize steps, snapshots, caching)
//	         ↓
//	    JSON/YAML geometry, wireframes, diagrams
//
// # Quick Start
//
// Lay out a scene file:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/layoutkit/pkg/pipeline"
//	    "github.com/matzehuels/layoutkit/pkg/scene"
//	)
//
//	doc, _ := scene.ReadFile("toolbar.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(context.Background(), doc, pipeline.Options{})
//	for _, c := range res.Root.Children {
//	    fmt.Println(c.Name, c.X, c.Width)
//	}
//
// # Main Packages
//
// ## Engine
//
// [layout] - The allocation engine. Classifies each child's declared size on
// an axis (fixed, elastic, stretch), distributes the container's extent, and
// implements the auto_size, equal_size and align directives. Hosts plug in
// through the [layout.Object] interface.
//
// [model] - An ordered record collection that announces every structural
// change as an inclusive row range, so list views can follow it.
//
// ## Scene
//
// [scene] - Items with named properties and ordered children, scene
// documents in three formats, and the widget [scene.Registry].
//
// [widgets] - The ListView and Slider item types.
//
// [fonts] - Font faces for measuring text items.
//
// ## Infrastructure
//
// [pipeline] - Build, lay out, resize and snapshot a scene. Shared by the CLI
// and the API so both produce identical geometry for identical input.
//
// [cache] - Result caching with file, bolt, Redis and MongoDB backends.
//
// [render] - SVG to PDF/PNG conversion, with scene-tree diagrams in
// [render/tree] and box wireframes in [render/wireframe].
//
// [api] - The HTTP API.
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - Optional hooks for allocation passes, cache operations
// and HTTP requests.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example        # Examples only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/layout
// [layout.Object]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/layout#Object
// [model]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/model
// [scene]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/scene
// [scene.Registry]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/scene#Registry
// [widgets]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/widgets
// [fonts]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/render
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/render/tree
// [render/wireframe]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/render/wireframe
// [api]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/observability
package pkg
