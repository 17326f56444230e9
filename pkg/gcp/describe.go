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
	"net/http"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/googleapis/gax-go/v2/apierror"
	Logger "github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
)

const statusExists = "EXISTS"

// Describe reads the five resources of the configuration
func (c *Client) Describe(ctx context.Context, config schemas.ProvisionConfig) ([]provisioner.ResourceStatus, error) {
	describers := []func(context.Context, schemas.ProvisionConfig) (provisioner.ResourceStatus, error){
		c.describeImage,
		c.describeInstanceTemplate,
		c.describeInstanceGroup,
		c.describeHealthCheck,
		c.describeBackendService,
	}

	var ret []provisioner.ResourceStatus
	for _, d := range describers {
		status, err := d(ctx, config)
		if err != nil {
			return nil, err
		}
		ret = append(ret, status)
	}

	return ret, nil
}

func (c *Client) describeImage(ctx context.Context, config schemas.ProvisionConfig) (provisioner.ResourceStatus, error) {
	rs := provisioner.ResourceStatus{Kind: constants.StepImage, Name: config.ImageName}

	img, err := c.Images.Get(ctx, &computepb.GetImageRequest{
		Project: c.Project,
		Image:   config.ImageName,
	})
	if err != nil {
		return notFoundOr(rs, err)
	}

	rs.Status = img.GetStatus()
	rs.Detail = img.GetSourceDisk()
	return rs, nil
}

func (c *Client) describeInstanceTemplate(ctx context.Context, config schemas.ProvisionConfig) (provisioner.ResourceStatus, error) {
	rs := provisioner.ResourceStatus{Kind: constants.StepTemplate, Name: config.TemplateName}

	tpl, err := c.InstanceTemplates.Get(ctx, &computepb.GetInstanceTemplateRequest{
		Project:          c.Project,
		InstanceTemplate: config.TemplateName,
	})
	if err != nil {
		return notFoundOr(rs, err)
	}

	rs.Status = statusExists
	rs.Detail = tpl.GetProperties().GetMachineType()
	return rs, nil
}

func (c *Client) describeInstanceGroup(ctx context.Context, config schemas.ProvisionConfig) (provisioner.ResourceStatus, error) {
	rs := provisioner.ResourceStatus{Kind: constants.StepInstanceGroup, Name: config.GroupName}

	mig, err := c.InstanceGroupManagers.Get(ctx, &computepb.GetInstanceGroupManagerRequest{
		Project:              c.Project,
		Zone:                 c.Zone,
		InstanceGroupManager: config.GroupName,
	})
	if err != nil {
		return notFoundOr(rs, err)
	}

	running, err := c.countRunningInstances(ctx, config.GroupName)
	if err != nil {
		return rs, err
	}

	rs.Status = "UPDATING"
	if mig.GetStatus().GetIsStable() {
		rs.Status = "STABLE"
	}
	rs.Detail = fmt.Sprintf("running %d/%d", running, mig.GetTargetSize())
	return rs, nil
}

func (c *Client) countRunningInstances(ctx context.Context, group string) (int, error) {
	it := c.InstanceGroupManagers.ListManagedInstances(ctx, &computepb.ListManagedInstancesInstanceGroupManagersRequest{
		Project:              c.Project,
		Zone:                 c.Zone,
		InstanceGroupManager: group,
	})

	count := 0
	for {
		mi, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		Logger.Tracef("managed instance %s: %s", mi.GetName(), mi.GetInstanceStatus())
		if mi.GetInstanceStatus() == computepb.ManagedInstance_RUNNING.String() {
			count++
		}
	}

	return count, nil
}

func (c *Client) describeHealthCheck(ctx context.Context, config schemas.ProvisionConfig) (provisioner.ResourceStatus, error) {
	rs := provisioner.ResourceStatus{Kind: constants.StepHealthCheck, Name: config.HealthCheck.Name}

	hc, err := c.HealthChecks.Get(ctx, &computepb.GetHealthCheckRequest{
		Project:     c.Project,
		HealthCheck: config.HealthCheck.Name,
	})
	if err != nil {
		return notFoundOr(rs, err)
	}

	rs.Status = statusExists
	rs.Detail = fmt.Sprintf("%s :%d%s", hc.GetType(), hc.GetHttpHealthCheck().GetPort(), hc.GetHttpHealthCheck().GetRequestPath())
	return rs, nil
}

func (c *Client) describeBackendService(ctx context.Context, config schemas.ProvisionConfig) (provisioner.ResourceStatus, error) {
	rs := provisioner.ResourceStatus{Kind: constants.StepBackendService, Name: config.BackendServiceName}

	bs, err := c.BackendServices.Get(ctx, &computepb.GetBackendServiceRequest{
		Project:        c.Project,
		BackendService: config.BackendServiceName,
	})
	if err != nil {
		return notFoundOr(rs, err)
	}

	rs.Status = statusExists
	rs.Detail = fmt.Sprintf("%d backend(s)", len(bs.GetBackends()))
	return rs, nil
}

func notFoundOr(rs provisioner.ResourceStatus, err error) (provisioner.ResourceStatus, error) {
	if isNotFound(err) {
		rs.Status = constants.NotFound
		return rs, nil
	}
	return rs, err
}

func isNotFound(err error) bool {
	if ae, ok := apierror.FromError(err); ok {
		return ae.HTTPCode() == http.StatusNotFound
	}
	return false
}
