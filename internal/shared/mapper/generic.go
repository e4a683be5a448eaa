// Package mapper converts persistence rows into domain values in bulk.
package mapper

import "fmt"

// Rows converts every row with fn. Nil in, nil out.
func Rows[T, R any](rows []T, fn func(T) R) []R {
	if rows == nil {
		return nil
	}
	out := make([]R, len(rows))
	for i := range rows {
		out[i] = fn(rows[i])
	}
	return out
}

// Keyed converts pointer rows with a fallible fn, skipping nil rows and nil
// results. The error names the failing row by key.
func Keyed[T, R any, K any](rows []*T, fn func(*T) (*R, error), key func(*T) K) ([]*R, error) {
	if rows == nil {
		return nil, nil
	}
	out := make([]*R, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		v, err := fn(row)
		switch {
		case err != nil:
			return nil, fmt.Errorf("row %v: %w", key(row), err)
		case v != nil:
			out = append(out, v)
		}
	}
	return out, nil
}
