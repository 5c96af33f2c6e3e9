// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wozniakpl/obfuscator/pkg/operation"
	"github.com/wozniakpl/obfuscator/pkg/status"
	"gitlab.com/tozd/go/errors"
)

type funcOp func(ctx context.Context) error

func (f funcOp) Execute(ctx context.Context) error { return f(ctx) }

func TestRunner_Sequential(t *testing.T) {
	var order []int
	ops := make([]operation.Operation, 0, 5)
	for i := 0; i < 5; i++ {
		ops = append(ops, funcOp(func(ctx context.Context) error {
			order = append(order, i)
			return nil
		}))
	}

	mgr := status.New(t.TempDir(), nil)
	require.NoError(t, operation.NewRunner(nil, 1, mgr).Run(context.Background(), ops...))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)

	processed, total := mgr.Progress()
	assert.Equal(t, 5, processed)
	assert.Equal(t, 5, total)
}

func TestRunner_SequentialStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var ran []int
	ops := []operation.Operation{
		funcOp(func(ctx context.Context) error {
			ran = append(ran, 0)
			return nil
		}),
		funcOp(func(ctx context.Context) error {
			ran = append(ran, 1)
			return boom
		}),
		funcOp(func(ctx context.Context) error {
			ran = append(ran, 2)
			return nil
		}),
	}

	err := operation.NewRunner(nil, 0, nil).Run(context.Background(), ops...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []int{0, 1}, ran)
}

func TestRunner_Parallel(t *testing.T) {
	const jobs = 3

	var running, peak, count atomic.Int32
	var mu sync.Mutex
	release := make(chan struct{})

	ops := make([]operation.Operation, 0, 10)
	for i := 0; i < 10; i++ {
		ops = append(ops, funcOp(func(ctx context.Context) error {
			n := running.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			<-release
			running.Add(-1)
			count.Add(1)
			return nil
		}))
	}

	done := make(chan error)
	go func() {
		done <- operation.NewRunner(nil, jobs, nil).Run(context.Background(), ops...)
	}()
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, int32(10), count.Load())
	assert.LessOrEqual(t, peak.Load(), int32(jobs))
}

func TestRunner_ParallelError(t *testing.T) {
	boom := errors.New("boom")
	ops := []operation.Operation{
		funcOp(func(ctx context.Context) error { return nil }),
		funcOp(func(ctx context.Context) error { return boom }),
		funcOp(func(ctx context.Context) error { return nil }),
	}

	err := operation.NewRunner(nil, 2, nil).Run(context.Background(), ops...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	op := funcOp(func(ctx context.Context) error {
		ran = true
		return nil
	})

	for _, jobs := range []int{1, 4} {
		err := operation.NewRunner(nil, jobs, nil).Run(ctx, op, op)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	}
	assert.False(t, ran, "no operation runs after cancellation")
}
