package sparse

import (
	"math"
	"sort"
)

// Vector is a sparse vector stored as parallel arrays of column indices and
// weights. Indices are sorted ascending and unique.
type Vector struct {
	Indices []int
	Values  []float64
}

// FromCounts builds a vector from a column->weight map, ordering indices.
func FromCounts(counts map[int]float64) Vector {
	v := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	for _, idx := range v.Indices {
		v.Values = append(v.Values, counts[idx])
	}
	return v
}

// Len returns the number of stored (non-zero) components.
func (v Vector) Len() int { return len(v.Indices) }

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize scales v in place to unit L2 norm. Zero vectors are left as is.
func (v Vector) Normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= norm
	}
}

// Dot returns the inner product by merging the two sorted index lists.
func (v Vector) Dot(o Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Dense expands v into a slice of the given dimension.
func (v Vector) Dense(dimension int) []float64 {
	out := make([]float64, dimension)
	for k, idx := range v.Indices {
		if idx < dimension {
			out[idx] = v.Values[k]
		}
	}
	return out
}
