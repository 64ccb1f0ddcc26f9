package widgets

import (
	"fmt"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/model"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// Properties read by ListView.
const (
	PropRowHeight = "rowHeight"
)

// DefaultRowHeight is the delegate height when rowHeight is not set.
const DefaultRowHeight = 20

// ListView mirrors a list model into a column of text delegates, one per
// row. Delegates span the view's width net of horizontal padding and are
// stacked at rowHeight plus spacing; the view's contentHeight tracks the
// stacked height.
type ListView struct {
	model.BaseListener

	item     *scene.Item
	model    *model.ListModel
	textRole string
}

// NewListView attaches a list view to it, populated from m. Rows are shown
// by the field named textRole, or the first role when textRole is empty.
func NewListView(it *scene.Item, m *model.ListModel, textRole string) (*ListView, error) {
	if textRole == "" {
		names := m.RoleNames()
		textRole = names[model.FirstRole]
	}
	if _, ok := m.RoleForName(textRole); !ok {
		return nil, errors.New(errors.ErrCodeInvalidRole, "text role %q is not a model role", textRole)
	}
	if !it.Has(PropRowHeight) {
		it.SetProperty(PropRowHeight, DefaultRowHeight)
	}
	it.SetOrientation(layout.Column)

	lv := &ListView{item: it, model: m, textRole: textRole}
	it.SetData(lv)
	m.Subscribe(lv)
	if n := m.RowCount(); n > 0 {
		lv.RowsInserted(0, n-1)
	}
	it.Subscribe(PropRowHeight, lv.relayout)
	it.Subscribe(layout.PropSpacing, lv.relayout)
	it.Subscribe(layout.PropWidth, lv.fitWidth)
	return lv, nil
}

// Item returns the view's scene item.
func (lv *ListView) Item() *scene.Item { return lv.item }

// Model returns the mirrored model.
func (lv *ListView) Model() *model.ListModel { return lv.model }

// Delegate returns the text item showing row.
func (lv *ListView) Delegate(row int) *scene.Item {
	items := lv.item.Items()
	if row < 0 || row >= len(items) {
		return nil
	}
	return items[row]
}

// RowsInserted implements model.Listener.
func (lv *ListView) RowsInserted(first, last int) {
	for row := first; row <= last; row++ {
		d := scene.NewText("", lv.text(row))
		d.SetProperty(layout.PropHeight, lv.item.Property(PropRowHeight))
		lv.item.InsertChild(row, d)
	}
	lv.relayout()
}

// RowsRemoved implements model.Listener.
func (lv *ListView) RowsRemoved(first, last int) {
	lv.item.RemoveChildren(first, last-first+1)
	lv.relayout()
}

// DataChanged implements model.Listener.
func (lv *ListView) DataChanged(first, last int) {
	items := lv.item.Items()
	for row := first; row <= last && row < len(items); row++ {
		items[row].SetText(lv.text(row))
	}
}

func (lv *ListView) text(row int) string {
	rec, err := lv.model.At(row)
	if err != nil {
		return ""
	}
	v, ok := rec[lv.textRole]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

func (lv *ListView) hpad() float64 {
	lead, trail := layout.Padding(lv.item, layout.Horizontal)
	return lead + trail
}

// fitWidth sizes the current delegates to the view's width net of
// horizontal padding. Removed delegates are no longer children and keep
// their last width.
func (lv *ListView) fitWidth() {
	w := max(layout.Extent(lv.item, layout.Horizontal)-lv.hpad(), 0)
	for _, d := range lv.item.Items() {
		d.SetProperty(layout.PropWidth, w)
	}
}

// relayout stacks delegates top to bottom, fits their width and updates
// contentHeight.
func (lv *ListView) relayout() {
	rowHeight := lv.item.Property(PropRowHeight)
	spacing := layout.Spacing(lv.item)
	lead, _ := layout.Padding(lv.item, layout.Vertical)
	left, _ := layout.Padding(lv.item, layout.Horizontal)

	y := lead
	items := lv.item.Items()
	for i, d := range items {
		if i > 0 {
			y += spacing
		}
		d.SetProperty(layout.PropX, left)
		d.SetProperty(layout.PropY, y)
		d.SetProperty(layout.PropHeight, rowHeight)
		y += rowHeight
	}

	height := float64(len(items)) * rowHeight
	if len(items) > 1 {
		height += spacing * float64(len(items)-1)
	}
	lv.item.SetProperty(layout.PropContentHeight, height)
	lv.fitWidth()
}

func listViewFactory(it *scene.Item, s *scene.Spec) error {
	if len(s.Children) > 0 {
		return errors.New(errors.ErrCodeInvalidScene, "ListView children come from its model; found %d declared children", len(s.Children))
	}
	if s.Model == nil || len(s.Model.Roles) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "ListView needs a model with at least one role")
	}
	m, err := model.NewListModel(s.Model.Roles...)
	if err != nil {
		return err
	}
	items := make([]model.Item, len(s.Model.Items))
	for i, rec := range s.Model.Items {
		items[i] = model.Item(rec)
	}
	m.AppendMany(items)
	_, err = NewListView(it, m, s.Model.TextRole)
	return err
}

// ListViewOf returns the list view attached to it, if any.
func ListViewOf(it *scene.Item) (*ListView, bool) {
	lv, ok := it.Data().(*ListView)
	return lv, ok
}
