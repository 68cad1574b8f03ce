package math

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, 4)

	if got := a.Add(b); !got.Compare(NewVec2(4, 6), 0.0001) {
		t.Errorf("Add = %+v", got)
	}
	if got := b.Sub(a); !got.Compare(NewVec2(2, 2), 0.0001) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Mul(b); !got.Compare(NewVec2(3, 8), 0.0001) {
		t.Errorf("Mul = %+v", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := NewVec2(3, 4)
	if got := v.Length(); got < 4.9999 || got > 5.0001 {
		t.Errorf("Length = %f, want 5", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1,0,10) = %d", got)
	}
	if got := Clamp(float32(11.5), 0, 10); got != 10 {
		t.Errorf("Clamp(11.5,0,10) = %f", got)
	}
}
