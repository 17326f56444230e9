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

package constants

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLogLevel is the default global verbosity
	DefaultLogLevel = logrus.WarnLevel

	// EmptyString is the empty string
	EmptyString = ""

	// ProviderGCP is the id of google cloud provider
	ProviderGCP = "gcp"

	// ProviderAWS is the id of amazon web services provider
	ProviderAWS = "aws"

	// DefaultProvider is the provider used when nothing is specified
	DefaultProvider = ProviderGCP

	// DefaultProject is the default GCP project
	DefaultProject = "12345678"

	// DefaultZone is the default GCP zone
	DefaultZone = "us-central1-a"

	// DefaultInstanceName is the running instance whose disk becomes the image
	DefaultInstanceName = "your-running-instance"

	// DefaultImageName is the name of the custom image
	DefaultImageName = "my-app-image"

	// DefaultTemplateName is the name of the instance template
	DefaultTemplateName = "my-instance-template"

	// DefaultMachineType is the machine type of the instance template
	DefaultMachineType = "e2-medium"

	// DefaultNetwork is the network of the instance template
	DefaultNetwork = "global/networks/default"

	// DefaultGroupName is the name of the managed instance group
	DefaultGroupName = "my-instance-group"

	// DefaultBaseInstanceName is the prefix of instances in the group
	DefaultBaseInstanceName = "mig-instance"

	// DefaultTargetSize is the minimum number of instances
	DefaultTargetSize = int32(2)

	// DefaultHealthCheckName is the name of the health check
	DefaultHealthCheckName = "my-health-check"

	// DefaultHealthCheckPort is the port the health check probes
	DefaultHealthCheckPort = int32(80)

	// DefaultHealthCheckPath is the request path of the health check
	DefaultHealthCheckPath = "/health"

	// DefaultBackendServiceName is the name of the backend service
	DefaultBackendServiceName = "my-backend-service"

	// DefaultAWSZone is the default availability zone on AWS
	DefaultAWSZone = "ap-northeast-2a"

	// DefaultAWSInstanceType is the default instance type on AWS
	DefaultAWSInstanceType = "t3.medium"

	// DefaultTimeout is the default time to wait for the image
	DefaultTimeout = 60 * time.Minute

	// MinTimeout is the minimum value of timeout
	MinTimeout = 1 * time.Minute

	// OperationPollingInterval is the sleep between image state checks on AWS
	OperationPollingInterval = 15 * time.Second

	// S3Prefix is prefix of s3 URL
	S3Prefix = "s3://"

	// GSPrefix is prefix of google cloud storage URL
	GSPrefix = "gs://"

	// NotFound is the status of a resource that does not exist
	NotFound = "NOT FOUND"

	// SlackToken is the environment variable of slack token
	SlackToken = "SLACK_TOKEN"

	// SlackChannel is the environment variable of slack channel
	SlackChannel = "SLACK_CHANNEL"

	// SlackWebHookURL is the environment variable of slack webhook url
	SlackWebHookURL = "SLACK_WEBHOOK_URL"

	// DefaultSlackColor is default slack color
	DefaultSlackColor = "#0BE6C1"

	// StepImage creates the custom image
	StepImage = "image"

	// StepTemplate creates the instance template
	StepTemplate = "template"

	// StepInstanceGroup creates the managed instance group
	StepInstanceGroup = "instance-group"

	// StepHealthCheck creates the health check
	StepHealthCheck = "health-check"

	// StepBackendService creates the backend service
	StepBackendService = "backend-service"
)

var (
	// LogLevelMapper is the default global verbosity
	LogLevelMapper = map[string]logrus.Level{
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"trace":   logrus.TraceLevel,
		"fatal":   logrus.FatalLevel,
		"error":   logrus.ErrorLevel,
	}

	// AvailableProviders is a list of supported cloud providers
	AvailableProviders = []string{ProviderGCP, ProviderAWS}

	// StepOrder is the fixed order of provisioning steps
	StepOrder = []string{StepImage, StepTemplate, StepInstanceGroup, StepHealthCheck, StepBackendService}

	// TimeFields is a list of time.Duration field
	TimeFields = []string{"timeout"}

	// AllowedAnswerYes is a list of allowed answers with yes
	AllowedAnswerYes = []string{"y", "yes"}
)
