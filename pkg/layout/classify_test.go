package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	lkerrors "github.com/matzehuels/layoutkit/pkg/errors"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		name   string
		size   float64
		want   SizeClass
		wantOK bool
	}{
		{"zero stretches", 0, Stretch, true},
		{"small ratio", 0.01, Elastic, true},
		{"half", 0.5, Elastic, true},
		{"just below one", 0.999, Elastic, true},
		{"one is fixed", 1, Fixed, true},
		{"large fixed", 320, Fixed, true},
		{"negative", -1, Fixed, false},
		{"tiny negative", -0.0001, Fixed, false},
		{"not a number", math.NaN(), Fixed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassOf(tt.size)
			if ok != tt.wantOK {
				t.Fatalf("ClassOf(%v) ok = %v, want %v", tt.size, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ClassOf(%v) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		sizes []float64
		want  Allocation
	}{
		{
			name:  "mixed",
			sizes: []float64{50, 0.25, 0},
			want: Allocation{
				Claimed: 50,
				Elastic: []ElasticItem{{Index: 1, Ratio: 0.25}},
				Stretch: []int{2},
			},
		},
		{
			name:  "fixed only",
			sizes: []float64{10, 20, 30},
			want:  Allocation{Claimed: 60},
		},
		{
			name:  "index order kept",
			sizes: []float64{0.5, 0, 0.2, 0, 100},
			want: Allocation{
				Claimed: 100,
				Elastic: []ElasticItem{{Index: 0, Ratio: 0.5}, {Index: 2, Ratio: 0.2}},
				Stretch: []int{1, 3},
			},
		},
		{
			name:  "no children",
			sizes: nil,
			want:  Allocation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer(Row, nil, Horizontal, tt.sizes...)
			got, err := Classify(c, Horizontal)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			tt.want.Axis = Horizontal
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyDynamic(t *testing.T) {
	tests := []struct {
		name  string
		sizes []float64
		want  bool
	}{
		{"fixed only", []float64{10, 20}, false},
		{"no children", nil, false},
		{"one stretch", []float64{10, 0}, true},
		{"one elastic", []float64{0.3, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer(Row, nil, Horizontal, tt.sizes...)
			a, err := Classify(c, Horizontal)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			if got := a.Dynamic(); got != tt.want {
				t.Errorf("Dynamic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyNegativeSize(t *testing.T) {
	c := newContainer(Column, map[string]float64{PropHeight: 100}, Vertical, 10, 0.5, -1, 0)

	_, err := Classify(c, Vertical)
	if err == nil {
		t.Fatal("Classify() should fail on a negative size")
	}

	var se *lkerrors.SizeError
	if !errors.As(err, &se) {
		t.Fatalf("Classify() error = %T, want *errors.SizeError", err)
	}
	if se.Index != 2 {
		t.Errorf("SizeError.Index = %d, want 2", se.Index)
	}
	if se.Child != c.children[2] {
		t.Errorf("SizeError.Child = %v, want the third child", se.Child)
	}
	if se.Axis != PropHeight || se.Size != -1 {
		t.Errorf("SizeError = %s %v, want height -1", se.Axis, se.Size)
	}
	if !lkerrors.Is(err, lkerrors.ErrCodeInvalidSize) {
		t.Errorf("code = %v, want %v", lkerrors.GetCode(err), lkerrors.ErrCodeInvalidSize)
	}
	if c.childWrites() != 0 {
		t.Errorf("Classify() wrote %d properties, want none", c.childWrites())
	}
}

func TestClassifyNaNSize(t *testing.T) {
	c := newContainer(Row, map[string]float64{PropWidth: 210}, Horizontal, 50, math.NaN(), 0)

	_, err := Classify(c, Horizontal)
	var se *lkerrors.SizeError
	if !errors.As(err, &se) || se.Index != 1 {
		t.Fatalf("Classify() error = %v, want a SizeError for child 1", err)
	}

	ok, err := New(WithLogger(quietLogger())).AutoSizeChildren(c, "h")
	if ok || !lkerrors.Is(err, lkerrors.ErrCodeInvalidSize) {
		t.Errorf("AutoSizeChildren() = %v, %v, want false and %s", ok, err, lkerrors.ErrCodeInvalidSize)
	}
	if c.childWrites() != 0 {
		t.Errorf("wrote %d properties, want none", c.childWrites())
	}
	if w := c.sizes(Horizontal)[2]; w != 0 {
		t.Errorf("stretch child width = %v, want it untouched", w)
	}
}
