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

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
)

var _ provisioner.Backend = (*Client)(nil)

// imageOperation is an AMI which is still pending
type imageOperation struct {
	ec2     EC2Client
	imageID string
}

func (o imageOperation) Name() string {
	return o.imageID
}

func (o imageOperation) Wait(ctx context.Context) error {
	Logger.Debugf("waiting for image %s to be available", o.imageID)
	return o.ec2.WaitImageAvailable(ctx, o.imageID)
}

// syncOperation is a call which is complete once the API returns
type syncOperation struct {
	name string
}

func (o syncOperation) Name() string {
	return o.name
}

func (o syncOperation) Wait(_ context.Context) error {
	return nil
}

// CreateImage creates an AMI from the instance tagged with the source instance name
func (c *Client) CreateImage(ctx context.Context, spec provisioner.ImageSpec) (provisioner.Operation, error) {
	instanceID, err := c.EC2Service.GetInstanceID(ctx, spec.SourceInstance)
	if err != nil {
		return nil, err
	}

	Logger.Debugf("creating image %s from %s(%s)", spec.Name, spec.SourceInstance, instanceID)
	imageID, err := c.EC2Service.CreateImage(ctx, spec.Name, instanceID)
	if err != nil {
		return nil, err
	}

	return imageOperation{ec2: c.EC2Service, imageID: imageID}, nil
}

// CreateInstanceTemplate creates a launch template from the image with the name
func (c *Client) CreateInstanceTemplate(ctx context.Context, spec provisioner.TemplateSpec) (provisioner.Operation, error) {
	img, err := c.EC2Service.GetImage(ctx, spec.Image)
	if err != nil {
		return nil, err
	}

	if img == nil {
		return nil, fmt.Errorf("image %s does not exist", spec.Image)
	}

	if err := c.EC2Service.CreateLaunchTemplate(ctx, spec.Name, aws.StringValue(img.ImageId), spec.MachineType); err != nil {
		return nil, err
	}

	return syncOperation{name: spec.Name}, nil
}

// CreateInstanceGroup creates an autoscaling group whose size is fixed to the target size
func (c *Client) CreateInstanceGroup(ctx context.Context, spec provisioner.GroupSpec) (provisioner.Operation, error) {
	if err := c.EC2Service.CreateAutoScalingGroup(ctx, spec.Name, spec.Template, c.Zone, int64(spec.TargetSize)); err != nil {
		return nil, err
	}

	return syncOperation{name: spec.Name}, nil
}

// CreateHealthCheck creates a target group in the default VPC
func (c *Client) CreateHealthCheck(ctx context.Context, spec provisioner.HealthCheckSpec) (provisioner.Operation, error) {
	vpc, err := c.EC2Service.GetDefaultVPC(ctx)
	if err != nil {
		return nil, err
	}

	tg, err := c.ELBV2Service.CreateTargetGroup(ctx, spec.Name, vpc, int64(spec.Port), spec.RequestPath)
	if err != nil {
		return nil, err
	}

	return syncOperation{name: aws.StringValue(tg.TargetGroupArn)}, nil
}

// CreateBackendService attaches the target group to the autoscaling group.
// AWS has no backend service resource, so the name is only logged.
func (c *Client) CreateBackendService(ctx context.Context, spec provisioner.BackendServiceSpec) (provisioner.Operation, error) {
	tg, err := c.ELBV2Service.GetTargetGroup(ctx, spec.HealthCheck)
	if err != nil {
		return nil, err
	}

	if tg == nil {
		return nil, fmt.Errorf("target group %s does not exist", spec.HealthCheck)
	}

	Logger.Debugf("backend service %s: attaching %s to %s", spec.Name, spec.HealthCheck, spec.Group)
	if err := c.EC2Service.AttachTargetGroup(ctx, spec.Group, aws.StringValue(tg.TargetGroupArn)); err != nil {
		return nil, err
	}

	return syncOperation{name: spec.Name}, nil
}

func (c *Client) Close() error {
	return nil
}
