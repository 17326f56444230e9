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
	"github.com/aws/aws-sdk-go/service/autoscaling"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

// Describe reads the five resources of the configuration
func (c *Client) Describe(ctx context.Context, config schemas.ProvisionConfig) ([]provisioner.ResourceStatus, error) {
	var ret []provisioner.ResourceStatus

	image := provisioner.ResourceStatus{Kind: constants.StepImage, Name: config.ImageName, Status: constants.NotFound}
	img, err := c.EC2Service.GetImage(ctx, config.ImageName)
	if err != nil {
		return nil, err
	}
	if img != nil {
		image.Status = aws.StringValue(img.State)
		image.Detail = aws.StringValue(img.ImageId)
	}
	ret = append(ret, image)

	template := provisioner.ResourceStatus{Kind: constants.StepTemplate, Name: config.TemplateName, Status: constants.NotFound}
	lt, err := c.EC2Service.GetLaunchTemplate(ctx, config.TemplateName)
	if err != nil {
		return nil, err
	}
	if lt != nil {
		template.Status = "EXISTS"
		template.Detail = fmt.Sprintf("%s v%d", aws.StringValue(lt.LaunchTemplateId), aws.Int64Value(lt.LatestVersionNumber))
	}
	ret = append(ret, template)

	group := provisioner.ResourceStatus{Kind: constants.StepInstanceGroup, Name: config.GroupName, Status: constants.NotFound}
	asg, err := c.EC2Service.GetMatchingAutoscalingGroup(ctx, config.GroupName)
	if err != nil {
		return nil, err
	}
	if asg != nil {
		group.Status = "EXISTS"
		if asg.Status != nil {
			group.Status = aws.StringValue(asg.Status)
		}
		group.Detail = fmt.Sprintf("running %d/%d", countInService(asg), aws.Int64Value(asg.DesiredCapacity))
	}
	ret = append(ret, group)

	hc := provisioner.ResourceStatus{Kind: constants.StepHealthCheck, Name: config.HealthCheck.Name, Status: constants.NotFound}
	tg, err := c.ELBV2Service.GetTargetGroup(ctx, config.HealthCheck.Name)
	if err != nil {
		return nil, err
	}
	if tg != nil {
		hc.Status = "EXISTS"
		hc.Detail = fmt.Sprintf("%s :%s%s", aws.StringValue(tg.HealthCheckProtocol), aws.StringValue(tg.HealthCheckPort), aws.StringValue(tg.HealthCheckPath))
	}
	ret = append(ret, hc)

	backend := provisioner.ResourceStatus{Kind: constants.StepBackendService, Name: config.BackendServiceName, Status: constants.NotFound}
	if asg != nil && tg != nil && tool.IsStringInPointerArray(aws.StringValue(tg.TargetGroupArn), asg.TargetGroupARNs) {
		backend.Status = "ATTACHED"
		backend.Detail = fmt.Sprintf("%s -> %s", config.HealthCheck.Name, config.GroupName)
	}
	ret = append(ret, backend)

	return ret, nil
}

func countInService(asg *autoscaling.Group) int {
	count := 0
	for _, i := range asg.Instances {
		if aws.StringValue(i.LifecycleState) == autoscaling.LifecycleStateInService {
			count++
		}
	}
	return count
}
