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
	"fmt"
	"strings"

	compute "cloud.google.com/go/compute/apiv1"
	Logger "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type Client struct {
	Project string
	Zone    string

	Images                *compute.ImagesClient
	InstanceTemplates     *compute.InstanceTemplatesClient
	InstanceGroupManagers *compute.InstanceGroupManagersClient
	HealthChecks          *compute.HealthChecksClient
	BackendServices       *compute.BackendServicesClient
	GlobalOperations      *compute.GlobalOperationsClient
}

// NewClient creates every compute REST client used for provisioning
func NewClient(ctx context.Context, project, zone string, opts ...option.ClientOption) (*Client, error) {
	c := &Client{
		Project: project,
		Zone:    zone,
	}

	var err error
	if c.Images, err = compute.NewImagesRESTClient(ctx, opts...); err != nil {
		return nil, fmt.Errorf("NewImagesRESTClient: %w", err)
	}

	if c.InstanceTemplates, err = compute.NewInstanceTemplatesRESTClient(ctx, opts...); err != nil {
		c.Close()
		return nil, fmt.Errorf("NewInstanceTemplatesRESTClient: %w", err)
	}

	if c.InstanceGroupManagers, err = compute.NewInstanceGroupManagersRESTClient(ctx, opts...); err != nil {
		c.Close()
		return nil, fmt.Errorf("NewInstanceGroupManagersRESTClient: %w", err)
	}

	if c.HealthChecks, err = compute.NewHealthChecksRESTClient(ctx, opts...); err != nil {
		c.Close()
		return nil, fmt.Errorf("NewHealthChecksRESTClient: %w", err)
	}

	if c.BackendServices, err = compute.NewBackendServicesRESTClient(ctx, opts...); err != nil {
		c.Close()
		return nil, fmt.Errorf("NewBackendServicesRESTClient: %w", err)
	}

	if c.GlobalOperations, err = compute.NewGlobalOperationsRESTClient(ctx, opts...); err != nil {
		c.Close()
		return nil, fmt.Errorf("NewGlobalOperationsRESTClient: %w", err)
	}

	Logger.Debugf("compute clients are ready: project=%s zone=%s", project, zone)

	return c, nil
}

// Close releases every client which has been created
func (c *Client) Close() error {
	var closers []func() error
	if c.Images != nil {
		closers = append(closers, c.Images.Close)
	}
	if c.InstanceTemplates != nil {
		closers = append(closers, c.InstanceTemplates.Close)
	}
	if c.InstanceGroupManagers != nil {
		closers = append(closers, c.InstanceGroupManagers.Close)
	}
	if c.HealthChecks != nil {
		closers = append(closers, c.HealthChecks.Close)
	}
	if c.BackendServices != nil {
		closers = append(closers, c.BackendServices.Close)
	}
	if c.GlobalOperations != nil {
		closers = append(closers, c.GlobalOperations.Close)
	}

	var msgs []string
	for _, f := range closers {
		if err := f(); err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	if len(msgs) > 0 {
		return fmt.Errorf("closing compute clients: %s", strings.Join(msgs, "; "))
	}
	return nil
}
