package throttle_test

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/snapvault/pkg/throttle"
)

func TestJoinBoundedPreservesOrderAndLimitsConcurrency(t *testing.T) {
	const n = 100
	const limit = 5

	var current int32
	var maxSeen int32

	tasks := make([]throttle.Task[int], n)
	for i := 0; i < n; i++ {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			c := atomic.AddInt32(&current, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if c <= m || atomic.CompareAndSwapInt32(&maxSeen, m, c) {
					break
				}
			}
			time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return i, nil
		}
	}

	out, err := throttle.JoinBounded(context.Background(), limit, tasks)
	require.NoError(t, err)
	require.Len(t, out, n)
	for i := range out {
		assert.Equal(t, i, out[i])
	}
	assert.LessOrEqual(t, int(atomic.LoadInt32(&maxSeen)), limit)
}

func TestJoinBoundedFewerTasksThanLimit(t *testing.T) {
	tasks := make([]throttle.Task[int], 5)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) { return i, nil }
	}

	out, err := throttle.JoinBounded(context.Background(), 100, tasks)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i := range out {
		assert.Equal(t, i, out[i])
	}
}

func TestJoinBoundedShortCircuitsOnError(t *testing.T) {
	const n = 50
	boom := errors.New("boom")
	var started int32

	tasks := make([]throttle.Task[int], n)
	for i := 0; i < n; i++ {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			atomic.AddInt32(&started, 1)
			if i == 3 {
				return 0, boom
			}
			time.Sleep(time.Millisecond)
			return i, nil
		}
	}

	out, err := throttle.JoinBounded(context.Background(), 4, tasks)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Less(t, int(atomic.LoadInt32(&started)), n)
}

func TestJoinBoundedEmpty(t *testing.T) {
	out, err := throttle.JoinBounded[int](context.Background(), 5, nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
