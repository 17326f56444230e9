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

package provisioner

import (
	"context"

	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
)

// Operation is the handle of a remote creation call
type Operation interface {
	Name() string
	Wait(ctx context.Context) error
}

// Provider creates resources on a cloud compute API.
// Every method is a single remote call; none of them waits for completion.
type Provider interface {
	CreateImage(ctx context.Context, spec ImageSpec) (Operation, error)
	CreateInstanceTemplate(ctx context.Context, spec TemplateSpec) (Operation, error)
	CreateInstanceGroup(ctx context.Context, spec GroupSpec) (Operation, error)
	CreateHealthCheck(ctx context.Context, spec HealthCheckSpec) (Operation, error)
	CreateBackendService(ctx context.Context, spec BackendServiceSpec) (Operation, error)
	Close() error
}

// Describer reads the current state of the provisioned resources
type Describer interface {
	Describe(ctx context.Context, config schemas.ProvisionConfig) ([]ResourceStatus, error)
}

// Backend is a provider which can also describe its resources
type Backend interface {
	Provider
	Describer
}

// ResourceStatus is one row of `goscaler status`
type ResourceStatus struct {
	Kind   string
	Name   string
	Status string
	Detail string
}

// ImageSpec is the input of image creation
type ImageSpec struct {
	Name           string
	SourceInstance string
}

// TemplateSpec is the input of instance template creation
type TemplateSpec struct {
	Name        string
	Image       string
	MachineType string
	Network     string
}

// GroupSpec is the input of managed instance group creation
type GroupSpec struct {
	Name             string
	Template         string
	BaseInstanceName string
	TargetSize       int32
}

// HealthCheckSpec is the input of health check creation
type HealthCheckSpec struct {
	Name        string
	Port        int32
	RequestPath string
}

// BackendServiceSpec is the input of backend service creation
type BackendServiceSpec struct {
	Name        string
	Group       string
	HealthCheck string
}
