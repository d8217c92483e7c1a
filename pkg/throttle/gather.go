package throttle

import (
	"context"
	"sync"
)

// GatherTolerant runs every task concurrently and unbounded, and
// returns the results of those that succeeded, in input order among
// the survivors. A task that fails is reported to onError (if
// non-nil) and dropped rather than aborting the others — the shape
// bulk enumeration needs (list_computers, list_folders), where one bad
// item must not fail the whole listing.
func GatherTolerant[T any](ctx context.Context, tasks []Task[T], onError func(index int, err error)) []T {
	if len(tasks) == 0 {
		return nil
	}

	type outcome struct {
		index int
		value T
		ok    bool
	}

	results := make(chan outcome, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		i, task := i, task
		go func() {
			defer wg.Done()
			v, err := task(ctx)
			if err != nil {
				if onError != nil {
					onError(i, err)
				}
				results <- outcome{index: i}
				return
			}
			results <- outcome{index: i, value: v, ok: true}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	survivors := make([]outcome, 0, len(tasks))
	for o := range results {
		if o.ok {
			survivors = append(survivors, o)
		}
	}

	out := make([]T, len(survivors))
	indices := make([]int, len(survivors))
	for i, s := range survivors {
		indices[i] = s.index
		out[i] = s.value
	}
	sortByIndex(indices, out)
	return out
}

// sortByIndex performs an insertion sort of out by the parallel
// indices slice; survivor counts are small (computer/folder listings
// are bounded well under a hundred items), so this avoids pulling in
// sort.Interface machinery for a handful of elements.
func sortByIndex[T any](indices []int, out []T) {
	for i := 1; i < len(indices); i++ {
		j := i
		for j > 0 && indices[j-1] > indices[j] {
			indices[j-1], indices[j] = indices[j], indices[j-1]
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
}
