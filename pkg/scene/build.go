package scene

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/fonts"
	"github.com/matzehuels/layoutkit/pkg/layout"
)

// BuildOption configures Build.
type BuildOption func(*builder)

// WithFace sets the face used to measure text items.
func WithFace(f font.Face) BuildOption {
	return func(b *builder) {
		if f != nil {
			b.face = f
		}
	}
}

type builder struct {
	reg  *Registry
	doc  string
	face font.Face
}

// Build constructs the item tree declared by doc.
//
// Item IDs are derived from the document name and each item's position in
// the tree, so building the same document twice yields the same IDs.
// Directives are recorded on the items but not applied. A nil registry
// means [NewRegistry].
func Build(doc *Document, reg *Registry, opts ...BuildOption) (*Item, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	b := &builder{reg: reg, doc: doc.Name, face: fonts.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b.build(&doc.Root, "root")
}

func (b *builder) build(s *Spec, path string) (*Item, error) {
	kind, factory, ok := b.reg.Lookup(s.Type)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownWidget, "%s: unknown item type %q", path, s.Type)
	}

	it := NewItem(kind, s.Name)
	it.id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.doc+":"+path))
	it.directives = Directives{AutoSize: s.AutoSize, EqualSize: s.EqualSize, Align: s.Align}
	applyGeometry(it, s)

	if kind == KindText || s.Text != "" {
		it.text = s.Text
		it.face = b.face
	}

	if factory != nil {
		if err := factory(it, s); err != nil {
			return nil, fmt.Errorf("%s (%s): %w", path, kind, err)
		}
	}

	for i := range s.Children {
		child, err := b.build(&s.Children[i], fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		it.AddChild(child)
	}
	return it, nil
}

func applyGeometry(it *Item, s *Spec) {
	it.props[layout.PropWidth] = s.Width
	it.props[layout.PropHeight] = s.Height
	it.props[layout.PropX] = s.X
	it.props[layout.PropY] = s.Y

	sides := []struct {
		prop     string
		override *float64
	}{
		{layout.PropLeftPadding, s.LeftPadding},
		{layout.PropRightPadding, s.RightPadding},
		{layout.PropTopPadding, s.TopPadding},
		{layout.PropBottomPadding, s.BottomPadding},
	}
	for _, side := range sides {
		v := s.Padding
		if side.override != nil {
			v = *side.override
		}
		if v != 0 {
			it.props[side.prop] = v
		}
	}
	if s.Spacing != 0 {
		it.props[layout.PropSpacing] = s.Spacing
	}
	for k, v := range s.Props {
		it.props[k] = v
	}
}
