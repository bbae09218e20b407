package tensor

import "testing"

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3, 4, 4}, 96},
		{Shape{1, 1, 1, 1}, 1},
		{Shape{8, 16, 28, 28}, 8 * 16 * 28 * 28},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v NumElements: expected %d, got %d", tt.shape, tt.want, got)
		}
	}
}

func TestShape_Strides(t *testing.T) {
	s := Shape{2, 3, 4, 5}
	want := []int{60, 20, 5, 1}
	got := s.Strides()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Strides: expected %v, got %v", want, got)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{1, 3, 4, 4}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{1, -3, 4, 4}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
	if err := (Shape{}).Validate(); err == nil {
		t.Error("empty shape accepted")
	}
}

func TestShape_CloneDoesNotAlias(t *testing.T) {
	s := Shape{1, 2, 3, 4}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("Clone aliases the original")
	}
}
