package sparse

import (
	"math"
	"reflect"
	"testing"
)

func TestFromCountsSortsIndices(t *testing.T) {
	v := FromCounts(map[int]float64{7: 1, 2: 3, 5: 2})
	if !reflect.DeepEqual(v.Indices, []int{2, 5, 7}) {
		t.Fatalf("indices = %v", v.Indices)
	}
	if !reflect.DeepEqual(v.Values, []float64{3, 2, 1}) {
		t.Fatalf("values = %v", v.Values)
	}
}

func TestDot(t *testing.T) {
	a := Vector{Indices: []int{0, 2, 4}, Values: []float64{1, 2, 3}}
	b := Vector{Indices: []int{1, 2, 4, 9}, Values: []float64{5, 4, 1, 7}}
	if got := a.Dot(b); got != 11 {
		t.Fatalf("dot = %v, want 11", got)
	}
	if got := a.Dot(Vector{}); got != 0 {
		t.Fatalf("dot with zero = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Vector{Indices: []int{0, 1}, Values: []float64{3, 4}}
	v.Normalize()
	if math.Abs(v.Norm()-1) > 1e-12 {
		t.Fatalf("norm = %v", v.Norm())
	}
	if !reflect.DeepEqual(v.Dense(3), []float64{0.6, 0.8, 0}) {
		t.Fatalf("dense = %v", v.Dense(3))
	}

	var zero Vector
	zero.Normalize()
	if !zero.IsZero() {
		t.Fatal("zero vector must stay zero")
	}
}
