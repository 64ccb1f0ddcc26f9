package layout

import (
	"github.com/matzehuels/layoutkit/pkg/errors"
)

// Axis is one of the two layout directions.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// ParseAxis converts an axis or orientation token into an Axis.
// Accepted tokens are "h", "horizontal", "v" and "vertical".
func ParseAxis(token string) (Axis, error) {
	if err := errors.ValidateAxisToken(token); err != nil {
		return 0, err
	}
	switch token {
	case "h", "horizontal":
		return Horizontal, nil
	default:
		return Vertical, nil
	}
}

// String returns the long token for the axis.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Extent returns the property holding a node's size along the axis.
func (a Axis) Extent() string {
	if a == Horizontal {
		return PropWidth
	}
	return PropHeight
}

// Position returns the property holding a node's offset along the axis.
func (a Axis) Position() string {
	if a == Horizontal {
		return PropX
	}
	return PropY
}

// Padding returns the leading and trailing padding properties for the axis.
func (a Axis) Padding() (leading, trailing string) {
	if a == Horizontal {
		return PropLeftPadding, PropRightPadding
	}
	return PropTopPadding, PropBottomPadding
}
