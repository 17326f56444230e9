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
	"bytes"
	"context"
	"io/ioutil"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/aws/aws-sdk-go/service/autoscaling/autoscalingiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/elbv2"
	"github.com/aws/aws-sdk-go/service/elbv2/elbv2iface"
	Logger "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
)

type fakeEC2 struct {
	ec2iface.EC2API

	images    []*ec2.Image
	templates []*ec2.LaunchTemplate

	createImage    *ec2.CreateImageInput
	waitedImages   []string
	launchTemplate *ec2.CreateLaunchTemplateInput
}

func (f *fakeEC2) DescribeInstancesWithContext(_ aws.Context, input *ec2.DescribeInstancesInput, _ ...request.Option) (*ec2.DescribeInstancesOutput, error) {
	return &ec2.DescribeInstancesOutput{
		Reservations: []*ec2.Reservation{
			{Instances: []*ec2.Instance{{InstanceId: aws.String("i-0123456789")}}},
		},
	}, nil
}

func (f *fakeEC2) CreateImageWithContext(_ aws.Context, input *ec2.CreateImageInput, _ ...request.Option) (*ec2.CreateImageOutput, error) {
	f.createImage = input
	f.images = append(f.images, &ec2.Image{ImageId: aws.String("ami-0123456789"), Name: input.Name, State: aws.String(ec2.ImageStatePending)})
	return &ec2.CreateImageOutput{ImageId: aws.String("ami-0123456789")}, nil
}

func (f *fakeEC2) WaitUntilImageAvailableWithContext(_ aws.Context, input *ec2.DescribeImagesInput, _ ...request.WaiterOption) error {
	f.waitedImages = append(f.waitedImages, aws.StringValueSlice(input.ImageIds)...)
	return nil
}

func (f *fakeEC2) DescribeImagesWithContext(_ aws.Context, input *ec2.DescribeImagesInput, _ ...request.Option) (*ec2.DescribeImagesOutput, error) {
	return &ec2.DescribeImagesOutput{Images: f.images}, nil
}

func (f *fakeEC2) CreateLaunchTemplateWithContext(_ aws.Context, input *ec2.CreateLaunchTemplateInput, _ ...request.Option) (*ec2.CreateLaunchTemplateOutput, error) {
	f.launchTemplate = input
	return &ec2.CreateLaunchTemplateOutput{}, nil
}

func (f *fakeEC2) DescribeLaunchTemplatesWithContext(_ aws.Context, input *ec2.DescribeLaunchTemplatesInput, _ ...request.Option) (*ec2.DescribeLaunchTemplatesOutput, error) {
	if len(f.templates) == 0 {
		return nil, awserr.New(launchTemplateNotFound, "not found", nil)
	}
	return &ec2.DescribeLaunchTemplatesOutput{LaunchTemplates: f.templates}, nil
}

func (f *fakeEC2) DescribeVpcsWithContext(_ aws.Context, input *ec2.DescribeVpcsInput, _ ...request.Option) (*ec2.DescribeVpcsOutput, error) {
	return &ec2.DescribeVpcsOutput{Vpcs: []*ec2.Vpc{{VpcId: aws.String("vpc-default")}}}, nil
}

type fakeAutoscaling struct {
	autoscalingiface.AutoScalingAPI

	groups []*autoscaling.Group

	created  *autoscaling.CreateAutoScalingGroupInput
	attached *autoscaling.AttachLoadBalancerTargetGroupsInput
}

func (f *fakeAutoscaling) CreateAutoScalingGroupWithContext(_ aws.Context, input *autoscaling.CreateAutoScalingGroupInput, _ ...request.Option) (*autoscaling.CreateAutoScalingGroupOutput, error) {
	f.created = input
	return &autoscaling.CreateAutoScalingGroupOutput{}, nil
}

func (f *fakeAutoscaling) DescribeAutoScalingGroupsWithContext(_ aws.Context, input *autoscaling.DescribeAutoScalingGroupsInput, _ ...request.Option) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	return &autoscaling.DescribeAutoScalingGroupsOutput{AutoScalingGroups: f.groups}, nil
}

func (f *fakeAutoscaling) AttachLoadBalancerTargetGroupsWithContext(_ aws.Context, input *autoscaling.AttachLoadBalancerTargetGroupsInput, _ ...request.Option) (*autoscaling.AttachLoadBalancerTargetGroupsOutput, error) {
	f.attached = input
	return &autoscaling.AttachLoadBalancerTargetGroupsOutput{}, nil
}

type fakeELBV2 struct {
	elbv2iface.ELBV2API

	targetGroups []*elbv2.TargetGroup
	created      *elbv2.CreateTargetGroupInput
}

func (f *fakeELBV2) CreateTargetGroupWithContext(_ aws.Context, input *elbv2.CreateTargetGroupInput, _ ...request.Option) (*elbv2.CreateTargetGroupOutput, error) {
	f.created = input
	tg := &elbv2.TargetGroup{
		TargetGroupName: input.Name,
		TargetGroupArn:  aws.String("arn:aws:elasticloadbalancing:ap-northeast-2:0123456789:targetgroup/my-health-check/abc"),
	}
	f.targetGroups = append(f.targetGroups, tg)
	return &elbv2.CreateTargetGroupOutput{TargetGroups: []*elbv2.TargetGroup{tg}}, nil
}

func (f *fakeELBV2) DescribeTargetGroupsWithContext(_ aws.Context, input *elbv2.DescribeTargetGroupsInput, _ ...request.Option) (*elbv2.DescribeTargetGroupsOutput, error) {
	if len(f.targetGroups) == 0 {
		return nil, awserr.New(elbv2.ErrCodeTargetGroupNotFoundException, "not found", nil)
	}
	return &elbv2.DescribeTargetGroupsOutput{TargetGroups: f.targetGroups}, nil
}

func newFakeClient() (*Client, *fakeEC2, *fakeAutoscaling, *fakeELBV2) {
	e := &fakeEC2{}
	as := &fakeAutoscaling{}
	elb := &fakeELBV2{}

	return &Client{
		Region:       "ap-northeast-2",
		Zone:         "ap-northeast-2a",
		EC2Service:   EC2Client{Client: e, AsClient: as},
		ELBV2Service: ELBV2Client{Client: elb},
	}, e, as, elb
}

func TestProvisionOnAWS(t *testing.T) {
	c, e, as, elb := newFakeClient()
	logger := Logger.New()
	logger.SetOutput(ioutil.Discard)
	out := bytes.Buffer{}

	s := provisioner.New(c, schemas.DefaultProvisionConfig(constants.ProviderAWS), &out, logger)
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, "i-0123456789", aws.StringValue(e.createImage.InstanceId))
	assert.Equal(t, "my-app-image", aws.StringValue(e.createImage.Name))
	assert.Equal(t, []string{"ami-0123456789"}, e.waitedImages)

	assert.Equal(t, "my-instance-template", aws.StringValue(e.launchTemplate.LaunchTemplateName))
	assert.Equal(t, "ami-0123456789", aws.StringValue(e.launchTemplate.LaunchTemplateData.ImageId))
	assert.Equal(t, "t3.medium", aws.StringValue(e.launchTemplate.LaunchTemplateData.InstanceType))

	assert.Equal(t, "my-instance-group", aws.StringValue(as.created.AutoScalingGroupName))
	assert.Equal(t, "my-instance-template", aws.StringValue(as.created.LaunchTemplate.LaunchTemplateName))
	assert.Equal(t, int64(2), aws.Int64Value(as.created.MinSize))
	assert.Equal(t, int64(2), aws.Int64Value(as.created.MaxSize))
	assert.Equal(t, int64(2), aws.Int64Value(as.created.DesiredCapacity))
	assert.Equal(t, []string{"ap-northeast-2a"}, aws.StringValueSlice(as.created.AvailabilityZones))

	assert.Equal(t, "my-health-check", aws.StringValue(elb.created.Name))
	assert.Equal(t, "vpc-default", aws.StringValue(elb.created.VpcId))
	assert.Equal(t, int64(80), aws.Int64Value(elb.created.Port))
	assert.Equal(t, "/health", aws.StringValue(elb.created.HealthCheckPath))
	assert.Equal(t, elbv2.ProtocolEnumHttp, aws.StringValue(elb.created.Protocol))

	assert.Equal(t, "my-instance-group", aws.StringValue(as.attached.AutoScalingGroupName))
	assert.Equal(t, []string{aws.StringValue(elb.targetGroups[0].TargetGroupArn)}, aws.StringValueSlice(as.attached.TargetGroupARNs))

	assert.Contains(t, out.String(), provisioner.CompletionMessage)
}

func TestCreateInstanceTemplateWithoutImage(t *testing.T) {
	c, e, _, _ := newFakeClient()

	_, err := c.CreateInstanceTemplate(context.Background(), provisioner.TemplateSpec{Name: "tpl", Image: "missing"})
	assert.Error(t, err)
	assert.Nil(t, e.launchTemplate)
}

func TestCreateBackendServiceWithoutTargetGroup(t *testing.T) {
	c, _, as, _ := newFakeClient()

	_, err := c.CreateBackendService(context.Background(), provisioner.BackendServiceSpec{
		Name:        "my-backend-service",
		Group:       "my-instance-group",
		HealthCheck: "my-health-check",
	})
	assert.Error(t, err)
	assert.Nil(t, as.attached)
}

func TestDescribeNotFound(t *testing.T) {
	c, _, _, _ := newFakeClient()

	statuses, err := c.Describe(context.Background(), schemas.DefaultProvisionConfig(constants.ProviderAWS))
	require.NoError(t, err)
	require.Len(t, statuses, len(constants.StepOrder))

	for i, s := range statuses {
		assert.Equal(t, constants.StepOrder[i], s.Kind)
		assert.Equal(t, constants.NotFound, s.Status)
	}
}

func TestDescribeAttached(t *testing.T) {
	c, e, as, elb := newFakeClient()
	arn := "arn:aws:elasticloadbalancing:ap-northeast-2:0123456789:targetgroup/my-health-check/abc"

	e.images = []*ec2.Image{{ImageId: aws.String("ami-0123456789"), State: aws.String(ec2.ImageStateAvailable)}}
	e.templates = []*ec2.LaunchTemplate{{LaunchTemplateId: aws.String("lt-0123"), LatestVersionNumber: aws.Int64(1)}}
	elb.targetGroups = []*elbv2.TargetGroup{{
		TargetGroupArn:      aws.String(arn),
		HealthCheckProtocol: aws.String("HTTP"),
		HealthCheckPort:     aws.String("80"),
		HealthCheckPath:     aws.String("/health"),
	}}
	as.groups = []*autoscaling.Group{{
		DesiredCapacity: aws.Int64(2),
		TargetGroupARNs: aws.StringSlice([]string{arn}),
		Instances: []*autoscaling.Instance{
			{LifecycleState: aws.String(autoscaling.LifecycleStateInService)},
			{LifecycleState: aws.String(autoscaling.LifecycleStatePending)},
		},
	}}

	statuses, err := c.Describe(context.Background(), schemas.DefaultProvisionConfig(constants.ProviderAWS))
	require.NoError(t, err)

	assert.Equal(t, ec2.ImageStateAvailable, statuses[0].Status)
	assert.Equal(t, "lt-0123 v1", statuses[1].Detail)
	assert.Equal(t, "running 1/2", statuses[2].Detail)
	assert.Equal(t, "HTTP :80/health", statuses[3].Detail)
	assert.Equal(t, "ATTACHED", statuses[4].Status)
}

func TestRegionFromZone(t *testing.T) {
	testData := map[string]string{
		"ap-northeast-2a": "ap-northeast-2",
		"us-east-1f":      "us-east-1",
		"us-east-1":       "us-east-1",
		"":                "",
	}

	for zone, expected := range testData {
		if got := RegionFromZone(zone); got != expected {
			t.Errorf("RegionFromZone(%q) = %q, expected %q", zone, got, expected)
		}
	}
}

func TestFilterS3Path(t *testing.T) {
	bucket, key, err := FilterS3Path("s3://manifests/app/hello.yaml")
	require.NoError(t, err)
	assert.Equal(t, "manifests", bucket)
	assert.Equal(t, "app/hello.yaml", key)

	_, _, err = FilterS3Path("s3://manifests")
	assert.Error(t, err)
}
