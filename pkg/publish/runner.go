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

package publish

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one unit of publish work.
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔌 OperationFunc adapts a plain function to the Operation interface.
type OperationFunc func(ctx context.Context) error

// Execute implements Operation.
func (f OperationFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// 🏃 Runner executes operations
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	if r.async {
		return r.runAsync(ctx, op)
	}
	return r.runSync(ctx, op)
}

// 🔄 runSync runs an operation synchronously
func (r *Runner) runSync(ctx context.Context, op Operation) error {
	return op.Execute(ctx)
}

// ⚡ runAsync runs the operation on its own goroutine. The operation sends
// its result, nil or not, on a single buffered channel: the caller either
// sees that exact result or a context cancellation, so a failure can never
// be dropped. The buffer also lets the goroutine finish after the caller
// has given up on a cancelled context.
func (r *Runner) runAsync(ctx context.Context, op Operation) error {
	r.logger.Debug().Msg("running operation asynchronously")

	result := make(chan error, 1)
	go func() {
		result <- op.Execute(ctx)
	}()

	select {
	case <-ctx.Done():
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case err := <-result:
		if err != nil {
			r.logger.Error().Err(err).Msg("async operation failed")
			return errors.Errorf("executing operation: %w", err)
		}
		return nil
	}
}
