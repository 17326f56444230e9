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
	"io"

	"github.com/spf13/cobra"

	"github.com/DevopsArtFactory/goscaler/pkg/runner"
)

// Create new provision command
func NewProvisionCommand() *cobra.Command {
	return NewCmd("provision").
		WithDescription("create image, template, instance group, health check and backend service").
		WithLongDescription(`Runs every step in order and stops at the first failure.
Resources which are created before the failure are not removed.
Only the image creation is waited for.`).
		SetFlags().
		RunWithNoArgs(funcProvision)
}

// funcProvision runs provisioning
func funcProvision(ctx context.Context, _ io.Writer, mode string) error {
	return runUntilInterrupted(ctx, func() error {
		//Create new builder
		builderSt, err := runner.SetupBuilder(ctx, mode)
		if err != nil {
			return err
		}

		//Start runner
		return runner.Start(ctx, builderSt, mode)
	})
}
