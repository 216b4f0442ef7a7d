package geometry

import (
	"math"
	"testing"
)

func TestVector3Axis(t *testing.T) {
	v := NewVector3(1, 2, 3)
	for i, expected := range []float64{1, 2, 3} {
		if got := v.Axis(i); got != expected {
			t.Errorf("Axis(%d) failed: expected %v, got %v", i, expected, got)
		}
	}
}

func TestVector3AxisPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Axis(3) should panic")
		}
	}()
	NewVector3(1, 2, 3).Axis(3)
}

func TestVector3Sub(t *testing.T) {
	result := NewVector3(5, 7, 9).Sub(NewVector3(1, 2, 3))

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Distance(t *testing.T) {
	distance := NewVector3(0, 0, 0).Distance(NewVector3(3, 4, 0))

	if math.Abs(distance-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", 5.0, distance)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	if got := (Vector3{}).Normalize(); got != (Vector3{}) {
		t.Errorf("Normalize of zero vector failed: expected zero, got %v", got)
	}
}

func TestTriangleNormal(t *testing.T) {
	normal := TriangleNormal(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if normal != expected {
		t.Errorf("TriangleNormal failed: expected %v, got %v", expected, normal)
	}
}

func TestTriangleArea(t *testing.T) {
	// Right triangle with legs 3 and 4
	area := TriangleArea(NewVector3(0, 0, 0), NewVector3(3, 0, 0), NewVector3(0, 4, 0))

	if math.Abs(area-6.0) > 1e-10 {
		t.Errorf("TriangleArea failed: expected %v, got %v", 6.0, area)
	}
}
