// Package model provides a list model that mirrors an ordered collection of
// records into a row-based view protocol.
//
// Every structural change is bracketed by an about-to notification and a
// done notification naming the exact inclusive row range affected, so views
// can mirror the collection incrementally. Field changes are announced with
// DataChanged. Records are addressed by row index and, for views, by numeric
// role IDs assigned to the role names in order starting at [FirstRole].
//
// A ListModel is not safe for concurrent use; listeners run synchronously
// and may read the model from their callbacks.
package model

import (
	"maps"

	"github.com/matzehuels/layoutkit/pkg/errors"
)

// Role identifies a record field in the view protocol.
type Role int

// FirstRole is the ID of the first role name. Lower IDs are reserved for
// the view's own roles.
const FirstRole Role = 0x0100 + 1

// Item is one record: field name to value.
type Item map[string]any

// Listener receives structural and data change notifications. Ranges are
// inclusive row indexes.
type Listener interface {
	RowsAboutToBeInserted(first, last int)
	RowsInserted(first, last int)
	RowsAboutToBeRemoved(first, last int)
	RowsRemoved(first, last int)
	DataChanged(first, last int)
}

// BaseListener implements Listener with no-ops, for embedding.
type BaseListener struct{}

func (BaseListener) RowsAboutToBeInserted(int, int) {}
func (BaseListener) RowsInserted(int, int)          {}
func (BaseListener) RowsAboutToBeRemoved(int, int)  {}
func (BaseListener) RowsRemoved(int, int)           {}
func (BaseListener) DataChanged(int, int)           {}

// ListModel is an ordered list of records with change notifications.
type ListModel struct {
	roles     []string
	items     []Item
	listeners []Listener
}

// NewListModel creates an empty model with the given role names.
func NewListModel(roles ...string) (*ListModel, error) {
	if err := errors.ValidateRoleNames(roles); err != nil {
		return nil, err
	}
	return &ListModel{roles: append([]string(nil), roles...)}, nil
}

// Subscribe registers l for notifications. Listeners are notified in
// registration order.
func (m *ListModel) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

// RowCount returns the number of rows.
func (m *ListModel) RowCount() int { return len(m.items) }

// ColumnCount is always 1: records are rows, fields are roles.
func (m *ListModel) ColumnCount() int { return 1 }

// RoleNames maps role IDs to role names.
func (m *ListModel) RoleNames() map[Role]string {
	out := make(map[Role]string, len(m.roles))
	for i, n := range m.roles {
		out[FirstRole+Role(i)] = n
	}
	return out
}

// RoleForName returns the role ID for a role name.
func (m *ListModel) RoleForName(name string) (Role, bool) {
	for i, n := range m.roles {
		if n == name {
			return FirstRole + Role(i), true
		}
	}
	return 0, false
}

func (m *ListModel) roleName(r Role) (string, error) {
	i := int(r - FirstRole)
	if i < 0 || i >= len(m.roles) {
		return "", errors.New(errors.ErrCodeInvalidRole, "unknown role %d", r)
	}
	return m.roles[i], nil
}

// =============================================================================
// Reads
// =============================================================================

// At returns a copy of the record at row.
func (m *ListModel) At(row int) (Item, error) {
	if err := m.checkRow("at", row); err != nil {
		return nil, err
	}
	return maps.Clone(m.items[row]), nil
}

// Items returns copies of all records.
func (m *ListModel) Items() []Item {
	out := make([]Item, len(m.items))
	for i, it := range m.items {
		out[i] = maps.Clone(it)
	}
	return out
}

// Data returns the field for role at row. A record without the field yields
// the empty string.
func (m *ListModel) Data(row int, role Role) (any, error) {
	if err := m.checkRow("data", row); err != nil {
		return nil, err
	}
	name, err := m.roleName(role)
	if err != nil {
		return nil, err
	}
	if v, ok := m.items[row][name]; ok {
		return v, nil
	}
	return "", nil
}

// SetData sets the field for role at row and announces the change.
func (m *ListModel) SetData(row int, role Role, v any) error {
	if err := m.checkRow("set data", row); err != nil {
		return err
	}
	name, err := m.roleName(role)
	if err != nil {
		return err
	}
	m.items[row][name] = v
	m.notify(func(l Listener) { l.DataChanged(row, row) })
	return nil
}

// =============================================================================
// Mutations
// =============================================================================

// Append adds one record at the end.
func (m *ListModel) Append(item Item) {
	m.insert(len(m.items), []Item{item})
}

// AppendMany adds records at the end. An empty batch does nothing.
func (m *ListModel) AppendMany(items []Item) {
	m.insert(len(m.items), items)
}

// Insert adds one record before row. Row may equal RowCount.
func (m *ListModel) Insert(row int, item Item) error {
	return m.InsertMany(row, []Item{item})
}

// InsertMany adds records before row, keeping their order. Row may equal
// RowCount. An empty batch does nothing.
func (m *ListModel) InsertMany(row int, items []Item) error {
	if row < 0 || row > len(m.items) {
		return &errors.IndexError{Op: "insert", Index: row, Len: len(m.items), Incl: true}
	}
	m.insert(row, items)
	return nil
}

func (m *ListModel) insert(row int, items []Item) {
	if len(items) == 0 {
		return
	}
	first, last := row, row+len(items)-1
	m.notify(func(l Listener) { l.RowsAboutToBeInserted(first, last) })

	copies := make([]Item, len(items))
	for i, it := range items {
		copies[i] = maps.Clone(it)
		if copies[i] == nil {
			copies[i] = Item{}
		}
	}
	tail := append([]Item(nil), m.items[row:]...)
	m.items = append(append(m.items[:row], copies...), tail...)

	m.notify(func(l Listener) { l.RowsInserted(first, last) })
}

// Update merges patch into the record at row, announces the change and
// returns a copy of the updated record.
func (m *ListModel) Update(row int, patch Item) (Item, error) {
	if err := m.checkRow("update", row); err != nil {
		return nil, err
	}
	maps.Copy(m.items[row], patch)
	m.notify(func(l Listener) { l.DataChanged(row, row) })
	return maps.Clone(m.items[row]), nil
}

// Pop removes the last record.
func (m *ListModel) Pop() error {
	if len(m.items) == 0 {
		return errors.New(errors.ErrCodeInvalidIndex, "pop from an empty model")
	}
	return m.PopMany(1)
}

// PopMany removes the last n records. n == 0 does nothing.
func (m *ListModel) PopMany(n int) error {
	if n < 0 || n > len(m.items) {
		return errors.New(errors.ErrCodeInvalidIndex, "cannot pop %d of %d rows", n, len(m.items))
	}
	m.remove(len(m.items)-n, n)
	return nil
}

// Delete removes the record at row.
func (m *ListModel) Delete(row int) error {
	if err := m.checkRow("delete", row); err != nil {
		return err
	}
	m.remove(row, 1)
	return nil
}

// DeleteMany removes n records starting at row. n == 0 does nothing.
func (m *ListModel) DeleteMany(row, n int) error {
	if n < 0 || row < 0 || row+n > len(m.items) {
		return errors.New(errors.ErrCodeInvalidIndex, "cannot delete rows [%d, %d) of %d", row, row+n, len(m.items))
	}
	m.remove(row, n)
	return nil
}

// Clear removes every record. Clearing an empty model does nothing.
func (m *ListModel) Clear() {
	m.remove(0, len(m.items))
}

func (m *ListModel) remove(row, n int) {
	if n == 0 {
		return
	}
	first, last := row, row+n-1
	m.notify(func(l Listener) { l.RowsAboutToBeRemoved(first, last) })
	m.items = append(m.items[:row], m.items[row+n:]...)
	m.notify(func(l Listener) { l.RowsRemoved(first, last) })
}

func (m *ListModel) checkRow(op string, row int) error {
	if row < 0 || row >= len(m.items) {
		return &errors.IndexError{Op: op, Index: row, Len: len(m.items)}
	}
	return nil
}

func (m *ListModel) notify(fn func(Listener)) {
	for _, l := range m.listeners {
		fn(l)
	}
}
