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
	"github.com/aws/aws-sdk-go/service/elbv2"
	"github.com/aws/aws-sdk-go/service/elbv2/elbv2iface"
	Logger "github.com/sirupsen/logrus"
)

type ELBV2Client struct {
	Client elbv2iface.ELBV2API
}

func NewELBV2Client(session client.ConfigProvider, region string, creds *credentials.Credentials) ELBV2Client {
	return ELBV2Client{
		Client: getElbClientFn(session, region, creds),
	}
}

func getElbClientFn(session client.ConfigProvider, region string, creds *credentials.Credentials) *elbv2.ELBV2 {
	if creds == nil {
		return elbv2.New(session, &aws.Config{Region: aws.String(region)})
	}
	return elbv2.New(session, &aws.Config{Region: aws.String(region), Credentials: creds})
}

// CreateTargetGroup creates a new HTTP target group which probes port and path
func (e ELBV2Client) CreateTargetGroup(ctx context.Context, name, vpc string, port int64, path string) (*elbv2.TargetGroup, error) {
	input := &elbv2.CreateTargetGroupInput{
		Name:                       aws.String(name),
		Port:                       aws.Int64(port),
		Protocol:                   aws.String(elbv2.ProtocolEnumHttp),
		VpcId:                      aws.String(vpc),
		TargetType:                 aws.String(elbv2.TargetTypeEnumInstance),
		HealthCheckEnabled:         aws.Bool(true),
		HealthCheckProtocol:        aws.String(elbv2.ProtocolEnumHttp),
		HealthCheckPort:            aws.String(fmt.Sprintf("%d", port)),
		HealthCheckPath:            aws.String(path),
		HealthCheckIntervalSeconds: aws.Int64(30),
	}

	result, err := e.Client.CreateTargetGroupWithContext(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(result.TargetGroups) == 0 {
		return nil, fmt.Errorf("target group %s is not returned", name)
	}

	Logger.Infof("Successfully create new target group : %s", name)

	return result.TargetGroups[0], nil
}

// GetTargetGroup returns the target group with the name or nil if it does not exist
func (e ELBV2Client) GetTargetGroup(ctx context.Context, name string) (*elbv2.TargetGroup, error) {
	input := &elbv2.DescribeTargetGroupsInput{
		Names: aws.StringSlice([]string{name}),
	}

	result, err := e.Client.DescribeTargetGroupsWithContext(ctx, input)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == elbv2.ErrCodeTargetGroupNotFoundException {
			return nil, nil
		}
		return nil, err
	}

	if len(result.TargetGroups) == 0 {
		return nil, nil
	}

	return result.TargetGroups[0], nil
}
