package ordstat

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Compress merges every given slice into one strictly ascending slice
// without duplicates, suitable as a Set universe. NaNs are dropped. The
// input slices are not modified.
func Compress[T constraints.Ordered](values ...[]T) []T {
	n := 0
	for _, v := range values {
		n += len(v)
	}

	merged := make([]T, 0, n)
	for _, v := range values {
		for _, x := range v {
			if !isNaN(x) {
				merged = append(merged, x)
			}
		}
	}

	slices.Sort(merged)
	return slices.Compact(merged)
}

// IsCompressed reports whether values is strictly ascending and free of
// NaNs, i.e. whether New accepts it without the Compressed option.
func IsCompressed[T constraints.Ordered](values []T) bool {
	for i, x := range values {
		if isNaN(x) || (i > 0 && !(values[i-1] < x)) {
			return false
		}
	}
	return true
}

// isNaN reports whether x is a floating point NaN. It is the only value
// of an ordered type that is not equal to itself.
func isNaN[T constraints.Ordered](x T) bool {
	return x != x
}
