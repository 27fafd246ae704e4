// Package collection holds the small set of generic slice helpers the
// app needs. Every function leaves its input untouched.
package collection

// Filter returns the elements of s for which keep returns true, in
// input order. An empty result is nil.
func Filter[T any](s []T, keep func(T) bool) []T {
	var out []T
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Chunk splits s into consecutive slices of at most n elements. The
// returned chunks alias the input's backing array.
func Chunk[T any](s []T, n int) [][]T {
	if n <= 0 || len(s) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(s)+n-1)/n)
	for n < len(s) {
		out = append(out, s[:n])
		s = s[n:]
	}
	return append(out, s)
}
