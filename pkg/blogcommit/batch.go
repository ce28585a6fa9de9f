package blogcommit

import "github.com/aretw0/blogcommit/pkg/core"

// Chunk splits items into consecutive windows of at most size elements.
// Concatenating the windows yields items unchanged.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, core.ErrInvalidBatchSize
	}
	if len(items) == 0 {
		return nil, nil
	}

	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		window := make([]T, end-start)
		copy(window, items[start:end])
		out = append(out, window)
	}
	return out, nil
}

// Limit keeps the first n groups. Zero keeps everything.
func Limit[T any](groups []T, n int) ([]T, error) {
	if n < 0 {
		return nil, core.ErrInvalidMaxCommits
	}
	if n == 0 || len(groups) <= n {
		return groups, nil
	}
	return groups[:n], nil
}
