// Package fenwick provides a list data structure supporting prefix sums
// and searching over them.
//
// A Fenwick tree, or binary indexed tree, is a space-efficient list
// data structure that can efficiently update elements and calculate
// prefix sums in a list of numbers. Both operations run in O(log n)
// time while using the same amount of memory as a plain slice.
// This is achieved by representing the list as an implicit tree,
// where the value of each node is the sum of the numbers in that
// subtree.
//
// Positions are 0-indexed and ranges are half-open: Sum(l, r) covers
// positions l, l+1, ..., r-1.
//
// Indexes outside the documented bounds are programming errors: every
// method panics with an error wrapping ErrOutOfRange when handed one.
package fenwick

import (
	"errors"
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// ErrOutOfRange is wrapped by the value of every panic raised for an
// index or range outside the tree.
var ErrOutOfRange = errors.New("fenwick: index out of range")

// Number is the set of element types a Tree can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Tree represents a fixed-size list of numbers with support for
// efficient prefix sum computation and prefix sum search.
type Tree[T Number] struct {
	// The data slice stores range sums of an underlying array t, seen
	// as 1-indexed: node i lives at data[i-1] and holds the sum of
	// t over (i - lsb(i), i]. To compute the prefix sum of the first k
	// elements, add the nodes which correspond to each 1 bit in the
	// binary expansion of k.
	//
	// For example, 13 is 1101₂ in binary, so nodes 1101₂, 1100₂ and
	// 1000₂ are added; they contain the range sums t[12],
	// t[8] + … + t[11] and t[0] + … + t[7], respectively.
	data []T
}

func lsb(i int) int {
	return i & -i
}

func outOfRange(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrOutOfRange}, args...)...)
}

// New creates a list of n zeroes.
func New[T Number](n int) *Tree[T] {
	if n < 0 {
		panic(outOfRange("negative size %d", n))
	}
	return &Tree[T]{data: make([]T, n)}
}

// From creates a new list with the given elements in O(n).
func From[T Number](values ...T) *Tree[T] {
	n := len(values)
	data := make([]T, n)
	copy(data, values)
	for i := 1; i <= n; i++ {
		if j := i + lsb(i); j <= n {
			data[j-1] += data[i-1]
		}
	}
	return &Tree[T]{data: data}
}

// Len returns the number of elements in the list.
func (t *Tree[T]) Len() int {
	return len(t.data)
}

// Add adds x to the element at index p.
func (t *Tree[T]) Add(p int, x T) {
	n := len(t.data)
	if p < 0 || p >= n {
		panic(outOfRange("Add(%d) on a list of length %d", p, n))
	}
	for p++; p <= n; p += lsb(p) {
		t.data[p-1] += x
	}
}

// Prefix returns the sum of the elements from index 0 to index r-1.
func (t *Tree[T]) Prefix(r int) T {
	if r < 0 || r > len(t.data) {
		panic(outOfRange("Prefix(%d) on a list of length %d", r, len(t.data)))
	}
	return t.prefix(r)
}

func (t *Tree[T]) prefix(r int) (sum T) {
	for ; r > 0; r -= lsb(r) {
		sum += t.data[r-1]
	}
	return sum
}

// Sum returns the sum of the elements from index l to index r-1.
func (t *Tree[T]) Sum(l, r int) T {
	if l < 0 || l > r || r > len(t.data) {
		panic(outOfRange("Sum(%d, %d) on a list of length %d", l, r, len(t.data)))
	}
	return t.prefix(r) - t.prefix(l)
}

// Get returns the element at index i.
func (t *Tree[T]) Get(i int) T {
	return t.Sum(i, i+1)
}

// Set sets the element at index i to x.
func (t *Tree[T]) Set(i int, x T) {
	t.Add(i, x-t.Get(i))
}

// LowerBound returns the smallest i such that Prefix(i) >= w.
//
// The result is a prefix length, not an element index. It is 0 when
// w <= 0 and Len()+1 when even the sum of the whole list is below w.
//
// LowerBound assumes every element is non-negative; the result is
// unspecified otherwise.
func (t *Tree[T]) LowerBound(w T) int {
	return t.search(w, func(v T) bool { return v < w })
}

// UpperBound returns the smallest i such that Prefix(i) > w, with the
// same conventions and preconditions as LowerBound.
func (t *Tree[T]) UpperBound(w T) int {
	return t.search(w, func(v T) bool { return v <= w })
}

// search descends the implicit tree from its widest node, extending the
// prefix whenever the extended sum still satisfies below. The final
// prefix is the longest one below the target, so the answer is one past
// it.
func (t *Tree[T]) search(w T, below func(T) bool) int {
	var zero T
	if w <= zero {
		return 0
	}
	n := len(t.data)
	idx := 0
	var cur T
	for step := highestPow2(n); step > 0; step >>= 1 {
		next := idx + step
		if next > n {
			continue
		}
		if v := cur + t.data[next-1]; below(v) {
			idx, cur = next, v
		}
	}
	return idx + 1
}

// highestPow2 returns the largest power of two <= n, or 0 for n == 0.
func highestPow2(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}
