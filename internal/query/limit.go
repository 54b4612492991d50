package query

import "iter"

// Limit caps a result stream at n items. n <= 0 means unlimited and returns
// the source unchanged. The returned sequence stops pulling from its source
// the moment the cap is reached, so the scan's per-record short-circuiting
// carries through end-to-end.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		remaining := n
		for v := range seq {
			if !yield(v) {
				return
			}
			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}
