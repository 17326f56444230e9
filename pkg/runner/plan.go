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

package runner

import (
	"io"
	"text/template"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/gcp"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/templates"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

// PlannedResource is a resource which a step would create
type PlannedResource struct {
	Step string
	Path string
}

// PlannedResources returns the resources of the steps.
// GCP resources are shown as resource paths, AWS resources by name.
func PlannedResources(config schemas.ProvisionConfig, steps []string) []PlannedResource {
	var ret []PlannedResource
	for _, step := range steps {
		ret = append(ret, PlannedResource{
			Step: step,
			Path: resourcePath(config, step),
		})
	}
	return ret
}

func resourcePath(c schemas.ProvisionConfig, step string) string {
	if c.Provider == constants.ProviderAWS {
		switch step {
		case constants.StepImage:
			return c.ImageName
		case constants.StepTemplate:
			return c.TemplateName
		case constants.StepInstanceGroup:
			return c.GroupName
		case constants.StepHealthCheck:
			return c.HealthCheck.Name
		case constants.StepBackendService:
			return c.HealthCheck.Name + " -> " + c.GroupName
		}
		return constants.EmptyString
	}

	switch step {
	case constants.StepImage:
		return gcp.ImagePath(c.Project, c.ImageName)
	case constants.StepTemplate:
		return gcp.InstanceTemplatePath(c.Project, c.TemplateName)
	case constants.StepInstanceGroup:
		return gcp.InstanceGroupPath(c.Project, c.Zone, c.GroupName)
	case constants.StepHealthCheck:
		return gcp.HealthCheckPath(c.Project, c.HealthCheck.Name)
	case constants.StepBackendService:
		return gcp.BackendServicePath(c.Project, c.BackendServiceName)
	}
	return constants.EmptyString
}

// PrintPlan prints what provisioning would create without calling any API
func PrintPlan(out io.Writer, config schemas.ProvisionConfig, steps []string) error {
	funcMap := template.FuncMap{
		"decorate": tool.DecorateAttr,
	}

	t := template.Must(template.New("Dry run").Funcs(funcMap).Parse(templates.DryRunPlan))

	return tool.PrintTemplate(out, struct {
		Resources []PlannedResource
	}{
		Resources: PlannedResources(config, steps),
	}, t)
}
