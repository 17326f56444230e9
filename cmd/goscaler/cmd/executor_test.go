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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptedProvisionFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := runUntilInterrupted(ctx, func() error {
		cancel()
		return errors.New("template step failed: context canceled")
	})

	assert.EqualError(t, err, "provisioning is interrupted: template step failed: context canceled")
}

func TestRunUntilInterrupted(t *testing.T) {
	assert.NoError(t, runUntilInterrupted(context.Background(), func() error { return nil }))

	err := runUntilInterrupted(context.Background(), func() error { return errors.New("quota exceeded") })
	assert.EqualError(t, err, "quota exceeded")
}

func TestCancelledStatusSucceeds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := runWithoutExecutor(ctx, func() error {
		cancel()
		return context.Canceled
	})

	assert.NoError(t, err)
}
