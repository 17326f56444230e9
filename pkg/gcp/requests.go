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
	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/protobuf/proto"

	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
)

// NewImageRequest captures the boot disk of the source instance
func NewImageRequest(project, zone string, spec provisioner.ImageSpec) *computepb.InsertImageRequest {
	return &computepb.InsertImageRequest{
		Project: project,
		ImageResource: &computepb.Image{
			Name:       proto.String(spec.Name),
			SourceDisk: proto.String(DiskPath(project, zone, spec.SourceInstance)),
		},
	}
}

// NewInstanceTemplateRequest boots a single auto-deleted disk from the image
func NewInstanceTemplateRequest(project string, spec provisioner.TemplateSpec) *computepb.InsertInstanceTemplateRequest {
	return &computepb.InsertInstanceTemplateRequest{
		Project: project,
		InstanceTemplateResource: &computepb.InstanceTemplate{
			Name: proto.String(spec.Name),
			Properties: &computepb.InstanceProperties{
				MachineType: proto.String(spec.MachineType),
				Disks: []*computepb.AttachedDisk{
					{
						Boot:       proto.Bool(true),
						AutoDelete: proto.Bool(true),
						InitializeParams: &computepb.AttachedDiskInitializeParams{
							SourceImage: proto.String(ImagePath(project, spec.Image)),
						},
					},
				},
				NetworkInterfaces: []*computepb.NetworkInterface{
					{
						Network: proto.String(spec.Network),
					},
				},
			},
		},
	}
}

func NewInstanceGroupManagerRequest(project, zone string, spec provisioner.GroupSpec) *computepb.InsertInstanceGroupManagerRequest {
	return &computepb.InsertInstanceGroupManagerRequest{
		Project: project,
		Zone:    zone,
		InstanceGroupManagerResource: &computepb.InstanceGroupManager{
			Name:             proto.String(spec.Name),
			BaseInstanceName: proto.String(spec.BaseInstanceName),
			InstanceTemplate: proto.String(InstanceTemplatePath(project, spec.Template)),
			TargetSize:       proto.Int32(spec.TargetSize),
		},
	}
}

func NewHealthCheckRequest(project string, spec provisioner.HealthCheckSpec) *computepb.InsertHealthCheckRequest {
	return &computepb.InsertHealthCheckRequest{
		Project: project,
		HealthCheckResource: &computepb.HealthCheck{
			Name: proto.String(spec.Name),
			Type: proto.String(computepb.HealthCheck_HTTP.String()),
			HttpHealthCheck: &computepb.HTTPHealthCheck{
				Port:        proto.Int32(spec.Port),
				RequestPath: proto.String(spec.RequestPath),
			},
		},
	}
}

// NewBackendServiceRequest attaches the group and the health check to a global backend service
func NewBackendServiceRequest(project, zone string, spec provisioner.BackendServiceSpec) *computepb.InsertBackendServiceRequest {
	return &computepb.InsertBackendServiceRequest{
		Project: project,
		BackendServiceResource: &computepb.BackendService{
			Name: proto.String(spec.Name),
			Backends: []*computepb.Backend{
				{
					Group: proto.String(InstanceGroupPath(project, zone, spec.Group)),
				},
			},
			HealthChecks: []string{HealthCheckPath(project, spec.HealthCheck)},
		},
	}
}
