package layout

// Property names read and written by the engine.
const (
	PropWidth         = "width"
	PropHeight        = "height"
	PropX             = "x"
	PropY             = "y"
	PropLeftPadding   = "leftPadding"
	PropRightPadding  = "rightPadding"
	PropTopPadding    = "topPadding"
	PropBottomPadding = "bottomPadding"
	PropSpacing       = "spacing"
	PropContentWidth  = "contentWidth"
	PropContentHeight = "contentHeight"
)

// Object is a host node exposing named numeric properties.
// Reading a property the node does not have yields 0.
type Object interface {
	Property(name string) float64
	SetProperty(name string, v float64)
}

// TextObject is an Object carrying text content whose measured extent is
// published through the contentWidth and contentHeight properties.
type TextObject interface {
	Object
	Text() string
	SetText(text string)
}

// Notifier delivers per-property change notifications.
//
// Subscribe registers fn for changes of property; callbacks run in
// registration order on the goroutine that changed the property. Emit fires
// every callback registered for property without changing anything.
type Notifier interface {
	Subscribe(property string, fn func())
	Emit(property string)
}

// Dependency names one property of a notifying node.
type Dependency struct {
	Source   Notifier
	Property string
}

// Binder installs binding expressions: target.property is set to expr()
// immediately and again whenever any dependency changes.
type Binder interface {
	Bind(target Object, property string, expr func() float64, deps ...Dependency)
}

// Container is a node with ordered children that the engine lays out.
type Container interface {
	Object
	Notifier
	Binder

	// Children returns the current children in insertion order.
	Children() []Object

	// Orientation reports how the container arranges its children.
	// It is fixed when the container is constructed.
	Orientation() Orientation
}

// Orientation tags a container as a row, a column or a free-form item.
type Orientation int

const (
	Free Orientation = iota
	Row
	Column
)

// String returns the lower-case orientation name.
func (o Orientation) String() string {
	switch o {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "free"
	}
}

// Axis returns the axis along which the container stacks its children.
// Anything that is not a row stacks vertically.
func (o Orientation) Axis() Axis {
	if o == Row {
		return Horizontal
	}
	return Vertical
}
