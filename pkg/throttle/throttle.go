package throttle

import (
	"container/heap"
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is a single fallible unit of work submitted to JoinBounded.
type Task[T any] func(ctx context.Context) (T, error)

type indexedResult[T any] struct {
	index int
	value T
}

// resultHeap buffers out-of-order results, ordered by input index, so
// JoinBounded can drain them in order as soon as the next-expected
// index arrives.
type resultHeap[T any] []indexedResult[T]

func (h resultHeap[T]) Len() int           { return len(h) }
func (h resultHeap[T]) Less(i, j int) bool { return h[i].index < h[j].index }
func (h resultHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap[T]) Push(x any) { *h = append(*h, x.(indexedResult[T])) }

func (h *resultHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// JoinBounded runs tasks with at most limit in flight at once and
// returns their results in input order. On the first error the
// worker group's context is cancelled, idle workers stop pulling new
// work, and that error is returned; the number of tasks that actually
// ran is strictly less than len(tasks) unless the failure happened to
// be the very last one scheduled.
func JoinBounded[T any](ctx context.Context, limit int, tasks []Task[T]) ([]T, error) {
	total := len(tasks)
	if total == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > total {
		limit = total
	}

	g, gctx := errgroup.WithContext(ctx)

	var feedMu sync.Mutex
	nextIndex := 0
	outcomes := make(chan indexedResult[T])

	for w := 0; w < limit; w++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				feedMu.Lock()
				if nextIndex >= total {
					feedMu.Unlock()
					return nil
				}
				i := nextIndex
				nextIndex++
				feedMu.Unlock()

				v, err := tasks[i](gctx)
				if err != nil {
					return err
				}

				select {
				case outcomes <- indexedResult[T]{index: i, value: v}:
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(outcomes)
	}()

	out := make([]T, total)
	var buffered resultHeap[T]
	expected := 0

	for o := range outcomes {
		heap.Push(&buffered, o)
		for buffered.Len() > 0 && buffered[0].index == expected {
			item := heap.Pop(&buffered).(indexedResult[T])
			out[item.index] = item.value
			expected++
		}
	}

	if err := <-done; err != nil {
		return nil, err
	}
	return out, nil
}
