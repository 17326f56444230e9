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

package schemas

import (
	"time"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
)

// Config is the configuration from command line
type Config struct { // Do not add comments for this struct
	Manifest         string        `json:"manifest"`
	ManifestS3Region string        `json:"manifest_s3_region"`
	Provider         string        `json:"provider"`
	Project          string        `json:"project"`
	Zone             string        `json:"zone"`
	Region           string        `json:"region"`
	Step             string        `json:"step"`
	Timeout          time.Duration `json:"timeout"`
	DryRun           bool          `json:"dry_run"`
	AutoApply        bool          `json:"auto_apply"`
	SlackOff         bool          `json:"slack_off"`
	LogLevel         string        `json:"log_level"`
}

// YamlConfig is the manifest file layout
type YamlConfig struct {
	// Name of application
	Name string `yaml:"name"`

	// Cloud provider: gcp or aws
	Provider string `yaml:"provider,omitempty"`

	// GCP project ID
	Project string `yaml:"project,omitempty"`

	// Zone of instance and instance group
	Zone string `yaml:"zone,omitempty"`

	// Region of API calls, only used on AWS
	Region string `yaml:"region,omitempty"`

	// Image configuration
	Image ImageConfig `yaml:"image,omitempty"`

	// Instance template configuration
	Template TemplateConfig `yaml:"template,omitempty"`

	// Managed instance group configuration
	InstanceGroup InstanceGroupConfig `yaml:"instance_group,omitempty"`

	// Health check configuration
	HealthCheck HealthCheckConfig `yaml:"health_check,omitempty"`

	// Backend service configuration
	BackendService BackendServiceConfig `yaml:"backend_service,omitempty"`
}

// ImageConfig describes the custom image
type ImageConfig struct {
	// Name of image
	Name string `yaml:"name,omitempty"`

	// Running instance whose boot disk is captured
	SourceInstance string `yaml:"source_instance,omitempty"`
}

// TemplateConfig describes the instance template
type TemplateConfig struct {
	// Name of template
	Name string `yaml:"name,omitempty"`

	// Machine type (instance type on AWS)
	MachineType string `yaml:"machine_type,omitempty"`

	// Network of the network interface
	Network string `yaml:"network,omitempty"`
}

// InstanceGroupConfig describes the managed instance group
type InstanceGroupConfig struct {
	// Name of instance group
	Name string `yaml:"name,omitempty"`

	// Prefix of instance names
	BaseInstanceName string `yaml:"base_instance_name,omitempty"`

	// Number of instances
	TargetSize *int32 `yaml:"target_size,omitempty"`
}

// HealthCheckConfig describes the HTTP health check
type HealthCheckConfig struct {
	// Name of health check
	Name string `yaml:"name,omitempty"`

	// Port to probe
	Port int32 `yaml:"port,omitempty"`

	// Request path to probe
	RequestPath string `yaml:"request_path,omitempty"`
}

// BackendServiceConfig describes the backend service
type BackendServiceConfig struct {
	// Name of backend service
	Name string `yaml:"name,omitempty"`
}

// ProvisionConfig is every value the provisioning steps need
type ProvisionConfig struct {
	Application        string
	Provider           string
	Project            string
	Zone               string
	Region             string
	InstanceName       string
	ImageName          string
	TemplateName       string
	MachineType        string
	Network            string
	GroupName          string
	BaseInstanceName   string
	TargetSize         int32
	HealthCheck        HealthCheck
	BackendServiceName string
}

// HealthCheck holds the probe settings
type HealthCheck struct {
	Name        string
	Port        int32
	RequestPath string
}

// DefaultProvisionConfig returns the default configuration of the provider
func DefaultProvisionConfig(provider string) ProvisionConfig {
	c := ProvisionConfig{
		Provider:         provider,
		Project:          constants.DefaultProject,
		Zone:             constants.DefaultZone,
		InstanceName:     constants.DefaultInstanceName,
		ImageName:        constants.DefaultImageName,
		TemplateName:     constants.DefaultTemplateName,
		MachineType:      constants.DefaultMachineType,
		Network:          constants.DefaultNetwork,
		GroupName:        constants.DefaultGroupName,
		BaseInstanceName: constants.DefaultBaseInstanceName,
		TargetSize:       constants.DefaultTargetSize,
		HealthCheck: HealthCheck{
			Name:        constants.DefaultHealthCheckName,
			Port:        constants.DefaultHealthCheckPort,
			RequestPath: constants.DefaultHealthCheckPath,
		},
		BackendServiceName: constants.DefaultBackendServiceName,
	}

	if provider == constants.ProviderAWS {
		c.Project = constants.EmptyString
		c.Zone = constants.DefaultAWSZone
		c.MachineType = constants.DefaultAWSInstanceType
		c.Network = constants.EmptyString
	}

	return c
}
