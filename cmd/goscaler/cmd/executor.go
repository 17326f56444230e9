/*
copyright 2020 the Goployer authors

licensed under the apache license, version 2.0 (the "license");
you may not use this file except in compliance with the license.
you may obtain a copy of the license at

    http://www.apache.org/licenses/license-2.0

unless required by applicable law or agreed to in writing, software
distributed under the license is distributed on an "as is" basis,
without warranties or conditions of any kind, either express or implied.
see the license for the specific language governing permissions and
limitations under the license.
*/

package cmd

import (
	"context"

	"github.com/pkg/errors"
)

// Run function without executor
func runWithoutExecutor(ctx context.Context, action func() error) error {
	err := action()

	return alwaysSucceedWhenCancelled(ctx, err)
}

// runUntilInterrupted keeps the error of an interrupted run.
// Resources created before the interrupt are left in place, so it is never a success.
func runUntilInterrupted(ctx context.Context, action func() error) error {
	err := action()
	if err != nil && ctx.Err() == context.Canceled {
		return errors.Wrap(err, "provisioning is interrupted")
	}

	return err
}
