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
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/aws/aws-sdk-go/service/autoscaling/autoscalingiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
)

const (
	// returned by DescribeLaunchTemplates for an unknown name
	launchTemplateNotFound = "InvalidLaunchTemplateName.NotFoundException"

	imageWaiterMaxAttempts = 1000
)

type EC2Client struct {
	Client   ec2iface.EC2API
	AsClient autoscalingiface.AutoScalingAPI
}

func NewEC2Client(session client.ConfigProvider, region string, creds *credentials.Credentials) EC2Client {
	return EC2Client{
		Client:   getEC2ClientFn(session, region, creds),
		AsClient: getAsgClientFn(session, region, creds),
	}
}

func getEC2ClientFn(session client.ConfigProvider, region string, creds *credentials.Credentials) *ec2.EC2 {
	if creds == nil {
		return ec2.New(session, &aws.Config{Region: aws.String(region)})
	}
	return ec2.New(session, &aws.Config{Region: aws.String(region), Credentials: creds})
}

func getAsgClientFn(session client.ConfigProvider, region string, creds *credentials.Credentials) *autoscaling.AutoScaling {
	if creds == nil {
		return autoscaling.New(session, &aws.Config{Region: aws.String(region)})
	}
	return autoscaling.New(session, &aws.Config{Region: aws.String(region), Credentials: creds})
}

// GetInstanceID returns the id of the instance tagged with the name
func (e EC2Client) GetInstanceID(ctx context.Context, name string) (string, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("tag:Name"),
				Values: aws.StringSlice([]string{name}),
			},
			{
				Name:   aws.String("instance-state-name"),
				Values: aws.StringSlice([]string{ec2.InstanceStateNameRunning, ec2.InstanceStateNameStopped}),
			},
		},
	}

	result, err := e.Client.DescribeInstancesWithContext(ctx, input)
	if err != nil {
		return constants.EmptyString, err
	}

	var ids []string
	for _, r := range result.Reservations {
		for _, i := range r.Instances {
			ids = append(ids, aws.StringValue(i.InstanceId))
		}
	}

	// More than 1 instance..
	if len(ids) > 1 {
		return constants.EmptyString, fmt.Errorf("expected only one instance on name lookup for %s: %v", name, ids)
	}

	// No instance found
	if len(ids) < 1 {
		return constants.EmptyString, fmt.Errorf("unable to find instance on name lookup for %s", name)
	}

	return ids[0], nil
}

// CreateImage creates an AMI from the instance
func (e EC2Client) CreateImage(ctx context.Context, name, instanceID string) (string, error) {
	input := &ec2.CreateImageInput{
		InstanceId:  aws.String(instanceID),
		Name:        aws.String(name),
		Description: aws.String(fmt.Sprintf("created from %s", instanceID)),
	}

	result, err := e.Client.CreateImageWithContext(ctx, input)
	if err != nil {
		return constants.EmptyString, err
	}

	Logger.Infof("Successfully request new image : %s(%s)", name, aws.StringValue(result.ImageId))

	return aws.StringValue(result.ImageId), nil
}

// WaitImageAvailable blocks until the image state is available
func (e EC2Client) WaitImageAvailable(ctx context.Context, imageID string) error {
	// ctx bounds the wait, not the attempts
	return e.Client.WaitUntilImageAvailableWithContext(ctx, &ec2.DescribeImagesInput{
		ImageIds: aws.StringSlice([]string{imageID}),
	},
		request.WithWaiterDelay(request.ConstantWaiterDelay(constants.OperationPollingInterval)),
		request.WithWaiterMaxAttempts(imageWaiterMaxAttempts),
	)
}

// GetImage returns the image owned by this account with the name or nil
func (e EC2Client) GetImage(ctx context.Context, name string) (*ec2.Image, error) {
	input := &ec2.DescribeImagesInput{
		Owners: aws.StringSlice([]string{"self"}),
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("name"),
				Values: aws.StringSlice([]string{name}),
			},
		},
	}

	result, err := e.Client.DescribeImagesWithContext(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(result.Images) == 0 {
		return nil, nil
	}

	return result.Images[0], nil
}

// CreateLaunchTemplate creates new launch template
func (e EC2Client) CreateLaunchTemplate(ctx context.Context, name, ami, instanceType string) error {
	input := &ec2.CreateLaunchTemplateInput{
		LaunchTemplateData: &ec2.RequestLaunchTemplateData{
			ImageId:      aws.String(ami),
			InstanceType: aws.String(instanceType),
		},
		LaunchTemplateName: aws.String(name),
	}

	_, err := e.Client.CreateLaunchTemplateWithContext(ctx, input)
	if err != nil {
		return err
	}

	Logger.Infof("Successfully create new launch template : %s", name)

	return nil
}

// GetLaunchTemplate returns the launch template with the name or nil
func (e EC2Client) GetLaunchTemplate(ctx context.Context, name string) (*ec2.LaunchTemplate, error) {
	input := &ec2.DescribeLaunchTemplatesInput{
		LaunchTemplateNames: aws.StringSlice([]string{name}),
	}

	result, err := e.Client.DescribeLaunchTemplatesWithContext(ctx, input)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == launchTemplateNotFound {
			return nil, nil
		}
		return nil, err
	}

	if len(result.LaunchTemplates) == 0 {
		return nil, nil
	}

	return result.LaunchTemplates[0], nil
}

// GetDefaultVPC returns the id of the default VPC of the region
func (e EC2Client) GetDefaultVPC(ctx context.Context) (string, error) {
	input := &ec2.DescribeVpcsInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("isDefault"),
				Values: aws.StringSlice([]string{"true"}),
			},
		},
	}

	result, err := e.Client.DescribeVpcsWithContext(ctx, input)
	if err != nil {
		return constants.EmptyString, err
	}

	// No VPC found
	if len(result.Vpcs) < 1 {
		return constants.EmptyString, fmt.Errorf("unable to find default VPC")
	}

	return aws.StringValue(result.Vpcs[0].VpcId), nil
}

// CreateAutoScalingGroup creates new autoscaling group with a fixed size
func (e EC2Client) CreateAutoScalingGroup(ctx context.Context, name, launchTemplateName, zone string, size int64) error {
	input := &autoscaling.CreateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(name),
		LaunchTemplate: &autoscaling.LaunchTemplateSpecification{
			LaunchTemplateName: aws.String(launchTemplateName),
		},
		MaxSize:           aws.Int64(size),
		MinSize:           aws.Int64(size),
		DesiredCapacity:   aws.Int64(size),
		AvailabilityZones: aws.StringSlice([]string{zone}),
	}

	_, err := e.AsClient.CreateAutoScalingGroupWithContext(ctx, input)
	if err != nil {
		return err
	}

	Logger.Infof("Successfully create new autoscaling group : %s", name)
	return nil
}

// GetMatchingAutoscalingGroup returns the autoscaling group with the name or nil
func (e EC2Client) GetMatchingAutoscalingGroup(ctx context.Context, name string) (*autoscaling.Group, error) {
	input := &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: aws.StringSlice([]string{name}),
	}

	result, err := e.AsClient.DescribeAutoScalingGroupsWithContext(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(result.AutoScalingGroups) == 0 {
		return nil, nil
	}

	return result.AutoScalingGroups[0], nil
}

// AttachTargetGroup registers the autoscaling group to the target group
func (e EC2Client) AttachTargetGroup(ctx context.Context, asgName, targetGroupArn string) error {
	input := &autoscaling.AttachLoadBalancerTargetGroupsInput{
		AutoScalingGroupName: aws.String(asgName),
		TargetGroupARNs:      aws.StringSlice([]string{targetGroupArn}),
	}

	_, err := e.AsClient.AttachLoadBalancerTargetGroupsWithContext(ctx, input)
	if err != nil {
		return err
	}

	Logger.Infof("Successfully attach target group to %s", asgName)
	return nil
}
