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

package provisioner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

// CompletionMessage is printed after the last step
const CompletionMessage = "🚀 Auto Scaling setup with Load Balancer completed!"

// Step is a single provisioning call
type Step struct {
	Name string

	// Wait blocks until the remote operation is done
	Wait bool

	create  func(ctx context.Context, p Provider, c schemas.ProvisionConfig) (Operation, error)
	message func(c schemas.ProvisionConfig) string
}

// Steps returns every step in the order they are run
func Steps() []Step {
	return []Step{
		{
			Name: constants.StepImage,
			Wait: true,
			create: func(ctx context.Context, p Provider, c schemas.ProvisionConfig) (Operation, error) {
				return p.CreateImage(ctx, ImageSpec{
					Name:           c.ImageName,
					SourceInstance: c.InstanceName,
				})
			},
			message: func(c schemas.ProvisionConfig) string {
				return fmt.Sprintf("✅ Image %s created successfully!", c.ImageName)
			},
		},
		{
			Name: constants.StepTemplate,
			create: func(ctx context.Context, p Provider, c schemas.ProvisionConfig) (Operation, error) {
				return p.CreateInstanceTemplate(ctx, TemplateSpec{
					Name:        c.TemplateName,
					Image:       c.ImageName,
					MachineType: c.MachineType,
					Network:     c.Network,
				})
			},
			message: func(c schemas.ProvisionConfig) string {
				return fmt.Sprintf("✅ Instance template %s created successfully!", c.TemplateName)
			},
		},
		{
			Name: constants.StepInstanceGroup,
			create: func(ctx context.Context, p Provider, c schemas.ProvisionConfig) (Operation, error) {
				return p.CreateInstanceGroup(ctx, GroupSpec{
					Name:             c.GroupName,
					Template:         c.TemplateName,
					BaseInstanceName: c.BaseInstanceName,
					TargetSize:       c.TargetSize,
				})
			},
			message: func(c schemas.ProvisionConfig) string {
				return fmt.Sprintf("✅ Managed Instance Group %s created!", c.GroupName)
			},
		},
		{
			Name: constants.StepHealthCheck,
			create: func(ctx context.Context, p Provider, c schemas.ProvisionConfig) (Operation, error) {
				return p.CreateHealthCheck(ctx, HealthCheckSpec{
					Name:        c.HealthCheck.Name,
					Port:        c.HealthCheck.Port,
					RequestPath: c.HealthCheck.RequestPath,
				})
			},
			message: func(c schemas.ProvisionConfig) string {
				return fmt.Sprintf("✅ Health Check %s created!", c.HealthCheck.Name)
			},
		},
		{
			Name: constants.StepBackendService,
			create: func(ctx context.Context, p Provider, c schemas.ProvisionConfig) (Operation, error) {
				return p.CreateBackendService(ctx, BackendServiceSpec{
					Name:        c.BackendServiceName,
					Group:       c.GroupName,
					HealthCheck: c.HealthCheck.Name,
				})
			},
			message: func(c schemas.ProvisionConfig) string {
				// the declared backend service name, not a frontend name
				return fmt.Sprintf("✅ Backend Service %s created!", c.BackendServiceName)
			},
		},
	}
}

// Sequencer runs the provisioning steps one after another
type Sequencer struct {
	Provider Provider
	Config   schemas.ProvisionConfig
	Out      io.Writer
	Logger   *Logger.Logger

	// Timeout bounds waiting on an operation. Zero means no bound.
	Timeout time.Duration

	// Only restricts the run to the named steps. Empty means all steps.
	Only []string
}

// New creates a sequencer
func New(p Provider, config schemas.ProvisionConfig, out io.Writer, logger *Logger.Logger) Sequencer {
	return Sequencer{
		Provider: p,
		Config:   config,
		Out:      out,
		Logger:   logger,
	}
}

// Plan returns the steps which Run will execute
func (s Sequencer) Plan() []Step {
	var steps []Step
	for _, step := range Steps() {
		if len(s.Only) > 0 && !tool.IsStringInArray(step.Name, s.Only) {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// Run executes the planned steps in order and stops at the first error.
// Resources created before the failure are left in place.
func (s Sequencer) Run(ctx context.Context) error {
	steps := s.Plan()
	if len(steps) == 0 {
		return fmt.Errorf("no step to run: %s", strings.Join(s.Only, ","))
	}

	start := time.Now()
	for i, step := range steps {
		name := fmt.Sprintf("%s (%d/%d)", step.Name, i+1, len(steps))
		s.Logger.Debugf("[%s] starting", name)

		op, err := step.create(ctx, s.Provider, s.Config)
		if err != nil {
			s.Logger.Debugf("[%s] failed: %v", name, err)
			return errors.Wrapf(err, "%s step failed", step.Name)
		}

		if step.Wait {
			s.Logger.Debugf("[%s] waiting for operation %s", name, op.Name())
			waitStart := time.Now()
			if err := s.wait(ctx, op); err != nil {
				return errors.Wrapf(err, "%s step failed", step.Name)
			}
			s.Logger.Debugf("[%s] operation %s is done after %s", name, op.Name(), tool.RoundTime(time.Since(waitStart)))
		} else {
			s.Logger.Debugf("[%s] operation %s is not awaited", name, op.Name())
		}

		fmt.Fprintln(s.Out, step.message(s.Config))
	}

	s.Logger.Debugf("provisioning finished in %s", tool.RoundTime(time.Since(start)))
	if len(steps) == len(constants.StepOrder) {
		fmt.Fprintln(s.Out, CompletionMessage)
	}

	return nil
}

func (s Sequencer) wait(ctx context.Context, op Operation) error {
	if s.Timeout <= 0 {
		return op.Wait(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	return op.Wait(ctx)
}
