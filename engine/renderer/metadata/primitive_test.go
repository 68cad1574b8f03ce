package metadata

import (
	"testing"

	"github.com/spaghettifunk/ukiyo/engine/math"
)

func TestColourToLinear(t *testing.T) {
	tests := []struct {
		name string
		in   Colour
		want math.Vec4
	}{
		{name: "black", in: NewColour(0, 0, 0, 1), want: math.NewVec4(0, 0, 0, 1)},
		{name: "white", in: NewColour(1, 1, 1, 1), want: math.NewVec4(1, 1, 1, 1)},
		{name: "low segment is divided", in: NewColour(0.04045, 0, 0, 0.5), want: math.NewVec4(0.04045/12.92, 0, 0, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ToLinear()
			if !got.Compare(tt.want, tolerance) {
				t.Errorf("ToLinear() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColourToLinearAlphaPassthrough(t *testing.T) {
	c := NewColour(0.5, 0.25, 0.75, 0.3)
	got := c.ToLinear()
	if got.W != 0.3 {
		t.Errorf("alpha = %f, want 0.3 untouched", got.W)
	}
}

func TestColourToLinearDeterministic(t *testing.T) {
	c := NewColour(0.21, 0.47, 0.83, 0.9)
	first := c.ToLinear()
	second := c.ToLinear()
	if first != second {
		t.Errorf("conversion is not bit-identical across calls: %+v vs %+v", first, second)
	}
}
