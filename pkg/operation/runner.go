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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger   *zerolog.Logger
	jobs     int
	progress *status.Manager
}

// 🏗️ NewRunner creates a new runner. jobs <= 1 runs operations one after
// another; more runs up to jobs of them at once. progress may be nil.
func NewRunner(logger *zerolog.Logger, jobs int, progress *status.Manager) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if jobs < 1 {
		jobs = 1
	}
	return &OperationRunner{
		logger:   logger,
		jobs:     jobs,
		progress: progress,
	}
}

// 🏃 Run executes every operation. The first error stops the run and is
// returned; operations not yet started are not executed.
func (r *OperationRunner) Run(ctx context.Context, ops ...Operation) error {
	if r.progress != nil {
		r.progress.StartOperation(ctx, len(ops))
		defer r.progress.FinishOperation(ctx)
	}

	r.logger.Debug().Int("operations", len(ops)).Int("jobs", r.jobs).Msg("running operations")

	if r.jobs == 1 {
		return r.runSync(ctx, ops)
	}
	return r.runAsync(ctx, ops)
}

// 🔄 runSync runs operations in order
func (r *OperationRunner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := op.Execute(ctx); err != nil {
			return err
		}
		r.advance(ctx)
	}
	return nil
}

// ⚡ runAsync runs operations with bounded parallelism
func (r *OperationRunner) runAsync(ctx context.Context, ops []Operation) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for _, op := range ops {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			if err := op.Execute(gctx); err != nil {
				return err
			}
			r.advance(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	return nil
}

func (r *OperationRunner) advance(ctx context.Context) {
	if r.progress != nil {
		r.progress.Advance(ctx)
	}
}
