package store

import (
	"golang.org/x/sync/errgroup"
)

// Merge loads every store in paths and returns their union. Inputs are
// read concurrently; the first load failure aborts the merge. Useful
// for combining baselines recorded on different machines.
func Merge(paths []string) (*Store, error) {
	loaded := make([]*Store, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			s, err := Load(p)
			if err != nil {
				return err
			}
			loaded[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := New()
	for _, s := range loaded {
		merged.AddAll(s)
	}
	return merged, nil
}
