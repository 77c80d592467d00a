// Package ordstat provides a dynamic ordered set with rank and select
// queries in O(log n).
//
// A Set is declared over a fixed universe: the sorted list of every value
// that may ever be inserted. Membership is kept as 0/1 counts in a Fenwick
// tree indexed by the position of each value in the universe, so counting
// the members below a value is a prefix sum and finding the k-th smallest
// member is a prefix sum search.
//
// The universe is usually produced offline by collecting every value a
// workload will touch and passing them through Compress.
//
// A Set is not safe for concurrent use.
package ordstat

import (
	"errors"
	"fmt"
	"sort"

	"github.com/caio/go-ordstat/fenwick"
	"golang.org/x/exp/constraints"
)

var (
	// ErrUnsortedUniverse is returned by New when the universe is not
	// strictly ascending and the Compressed option was not given.
	ErrUnsortedUniverse = errors.New("universe must be strictly ascending")
	// ErrNaN is returned by New when the universe holds a NaN.
	ErrNaN = errors.New("universe must not contain NaN")
)

// Set is an ordered set over a fixed universe of values.
type Set[T constraints.Ordered] struct {
	universe []T
	present  *fenwick.Tree[int]
	rng      RNG
}

// New creates an empty Set that may hold any value of universe.
//
// The universe is copied. It must be strictly ascending unless the
// Compressed option is given, in which case it is sorted and deduplicated
// first.
func New[T constraints.Ordered](universe []T, options ...setOption) (*Set[T], error) {
	cfg := &config{rng: &globalRNG{}}
	for _, option := range options {
		if err := option(cfg); err != nil {
			return nil, err
		}
	}

	var values []T
	if cfg.compress {
		values = Compress(universe)
	} else {
		values = append([]T(nil), universe...)
		for i, x := range values {
			if isNaN(x) {
				return nil, fmt.Errorf("%w: found at position %d", ErrNaN, i)
			}
			if i > 0 && !(values[i-1] < x) {
				return nil, fmt.Errorf("%w: %v followed by %v at position %d", ErrUnsortedUniverse, values[i-1], x, i)
			}
		}
	}

	return &Set[T]{
		universe: values,
		present:  fenwick.New[int](len(values)),
		rng:      cfg.rng,
	}, nil
}

// index returns the position of x in the universe and whether it is
// there at all.
func (s *Set[T]) index(x T) (int, bool) {
	i := s.searchGE(x)
	return i, i < len(s.universe) && s.universe[i] == x
}

// searchGE returns the position of the first universe value >= x. A NaN
// compares below everything.
func (s *Set[T]) searchGE(x T) int {
	if isNaN(x) {
		return 0
	}
	return sort.Search(len(s.universe), func(i int) bool {
		return s.universe[i] >= x
	})
}

// searchGT returns the position of the first universe value > x.
func (s *Set[T]) searchGT(x T) int {
	if isNaN(x) {
		return 0
	}
	return sort.Search(len(s.universe), func(i int) bool {
		return s.universe[i] > x
	})
}

// Contains reports whether x is a member of s.
func (s *Set[T]) Contains(x T) bool {
	i, ok := s.index(x)
	return ok && s.present.Get(i) != 0
}

// Insert adds x to s. It returns false, leaving s unchanged, if x is not
// part of the universe or is already a member.
func (s *Set[T]) Insert(x T) bool {
	i, ok := s.index(x)
	if !ok || s.present.Get(i) != 0 {
		return false
	}
	s.present.Add(i, 1)
	return true
}

// Erase removes x from s. It returns false, leaving s unchanged, if x is
// not a member.
func (s *Set[T]) Erase(x T) bool {
	i, ok := s.index(x)
	if !ok || s.present.Get(i) == 0 {
		return false
	}
	s.present.Add(i, -1)
	return true
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return s.present.Prefix(s.present.Len())
}

// CountLess returns the number of members strictly less than x. x need
// not be part of the universe. No member is ordered against NaN, so counts
// for a NaN are 0.
func (s *Set[T]) CountLess(x T) int {
	return s.present.Prefix(s.searchGE(x))
}

// CountLessOrEqual returns the number of members less than or equal to x.
func (s *Set[T]) CountLessOrEqual(x T) int {
	return s.present.Prefix(s.searchGT(x))
}

// Kth returns the k-th smallest member, counting from 0. The boolean is
// false when k is not in [0, Len()).
func (s *Set[T]) Kth(k int) (T, bool) {
	if k < 0 || k >= s.Len() {
		var zero T
		return zero, false
	}
	return s.universe[s.present.LowerBound(k+1)-1], true
}

// Ceiling returns the smallest member greater than or equal to x.
func (s *Set[T]) Ceiling(x T) (T, bool) {
	if isNaN(x) {
		var zero T
		return zero, false
	}
	return s.Kth(s.CountLess(x))
}

// Floor returns the greatest member less than or equal to x.
func (s *Set[T]) Floor(x T) (T, bool) {
	k := s.CountLessOrEqual(x)
	if k == 0 {
		var zero T
		return zero, false
	}
	return s.Kth(k - 1)
}

// Min returns the smallest member.
func (s *Set[T]) Min() (T, bool) {
	return s.Kth(0)
}

// Max returns the greatest member.
func (s *Set[T]) Max() (T, bool) {
	return s.Kth(s.Len() - 1)
}

// Random returns a member chosen uniformly at random, using the set's
// RNG. The boolean is false when s is empty.
func (s *Set[T]) Random() (T, bool) {
	n := s.Len()
	if n == 0 {
		var zero T
		return zero, false
	}
	return s.Kth(s.rng.Intn(n))
}

// Iterate calls f on every member in ascending order until f returns
// false.
func (s *Set[T]) Iterate(f func(x T) bool) {
	n := s.Len()
	for k := 0; k < n; k++ {
		x, _ := s.Kth(k)
		if !f(x) {
			break
		}
	}
}

// Universe returns a copy of the values s may hold, in ascending order.
func (s *Set[T]) Universe() []T {
	return append([]T(nil), s.universe...)
}

// Clone returns an independent copy of s sharing its RNG.
func (s *Set[T]) Clone() *Set[T] {
	counts := make([]int, len(s.universe))
	for i := range counts {
		counts[i] = s.present.Get(i)
	}
	return &Set[T]{
		universe: append([]T(nil), s.universe...),
		present:  fenwick.From(counts...),
		rng:      s.rng,
	}
}

func (s *Set[T]) String() string {
	return fmt.Sprintf("Set<len=%d, universe=%d>", s.Len(), len(s.universe))
}
