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

package gcp

import (
	"context"

	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
)

var _ provisioner.Backend = (*Client)(nil)

// CreateImage inserts the image and returns a handle waited on through global operations
func (c *Client) CreateImage(ctx context.Context, spec provisioner.ImageSpec) (provisioner.Operation, error) {
	req := NewImageRequest(c.Project, c.Zone, spec)
	Logger.Debugf("inserting image %s from %s", spec.Name, req.ImageResource.GetSourceDisk())

	op, err := c.Images.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	return globalOperation{
		project: c.Project,
		name:    op.Name(),
		client:  c.GlobalOperations,
	}, nil
}

func (c *Client) CreateInstanceTemplate(ctx context.Context, spec provisioner.TemplateSpec) (provisioner.Operation, error) {
	req := NewInstanceTemplateRequest(c.Project, spec)
	Logger.Debugf("inserting instance template %s: machine type %s", spec.Name, spec.MachineType)

	op, err := c.InstanceTemplates.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	return apiOperation{op: op}, nil
}

func (c *Client) CreateInstanceGroup(ctx context.Context, spec provisioner.GroupSpec) (provisioner.Operation, error) {
	req := NewInstanceGroupManagerRequest(c.Project, c.Zone, spec)
	Logger.Debugf("inserting instance group manager %s: target size %d", spec.Name, spec.TargetSize)

	op, err := c.InstanceGroupManagers.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	return apiOperation{op: op}, nil
}

func (c *Client) CreateHealthCheck(ctx context.Context, spec provisioner.HealthCheckSpec) (provisioner.Operation, error) {
	req := NewHealthCheckRequest(c.Project, spec)
	Logger.Debugf("inserting health check %s: port %d path %s", spec.Name, spec.Port, spec.RequestPath)

	op, err := c.HealthChecks.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	return apiOperation{op: op}, nil
}

func (c *Client) CreateBackendService(ctx context.Context, spec provisioner.BackendServiceSpec) (provisioner.Operation, error) {
	req := NewBackendServiceRequest(c.Project, c.Zone, spec)
	Logger.Debugf("inserting backend service %s", spec.Name)

	op, err := c.BackendServices.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	return apiOperation{op: op}, nil
}
