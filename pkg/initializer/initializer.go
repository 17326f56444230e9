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

package initializer

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	Logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

const manifestDir = "manifests"

type Initializer struct {
	AppName  string
	Provider string
	Dir      string
	Logger   *Logger.Logger

	// Confirm asks before writing. Nil writes without asking.
	Confirm func(message string) bool
}

func NewInitializer(appName, provider string) Initializer {
	return Initializer{
		AppName:  appName,
		Provider: provider,
		Dir:      manifestDir,
		Logger:   Logger.New(),
		Confirm:  tool.AskContinue,
	}
}

// SampleManifest returns a manifest filled with the default values of the provider
func SampleManifest(appName, provider string) schemas.YamlConfig {
	c := schemas.DefaultProvisionConfig(provider)
	size := c.TargetSize

	return schemas.YamlConfig{
		Name:     appName,
		Provider: c.Provider,
		Project:  c.Project,
		Zone:     c.Zone,
		Image: schemas.ImageConfig{
			Name:           fmt.Sprintf("%s-image", appName),
			SourceInstance: c.InstanceName,
		},
		Template: schemas.TemplateConfig{
			Name:        fmt.Sprintf("%s-template", appName),
			MachineType: c.MachineType,
			Network:     c.Network,
		},
		InstanceGroup: schemas.InstanceGroupConfig{
			Name:             fmt.Sprintf("%s-group", appName),
			BaseInstanceName: appName,
			TargetSize:       &size,
		},
		HealthCheck: schemas.HealthCheckConfig{
			Name:        fmt.Sprintf("%s-health-check", appName),
			Port:        c.HealthCheck.Port,
			RequestPath: c.HealthCheck.RequestPath,
		},
		BackendService: schemas.BackendServiceConfig{
			Name: fmt.Sprintf("%s-backend-service", appName),
		},
	}
}

// RunInit writes a sample manifest of the application
func (i Initializer) RunInit(out io.Writer) (string, error) {
	filePath := filepath.Join(i.Dir, fmt.Sprintf("%s.yaml", i.AppName))

	data, err := yaml.Marshal(SampleManifest(i.AppName, i.Provider))
	if err != nil {
		return filePath, err
	}

	tool.Yellow.Fprintf(out, "%s:", filePath)
	fmt.Fprintln(out, string(data))

	if tool.CheckFileExists(filePath) {
		return filePath, fmt.Errorf("manifest already exists: %s", filePath)
	}

	if i.Confirm != nil && !i.Confirm("Do you want to add this manifest file? ") {
		tool.Red.Fprintln(out, "canceled")
		return filePath, nil
	}

	if err := i.CheckDir(); err != nil {
		return filePath, err
	}

	i.Logger.Debugf("starts to write yaml configuration: %s", filePath)
	if err := ioutil.WriteFile(filePath, data, 0644); err != nil {
		return filePath, err
	}

	fmt.Fprintln(out, "manifest is successfully created")
	tool.Blue.Fprintln(out, "You have to put the right values on project, zone and source_instance in manifest file")
	return filePath, nil
}

// CheckDir creates the manifest directory if it does not exist
func (i Initializer) CheckDir() error {
	i.Logger.Debugf("check if manifest directory exists")
	if !tool.CheckFileExists(i.Dir) {
		i.Logger.Debugf("%s directory does not exist!", i.Dir)
		if err := os.MkdirAll(i.Dir, os.ModePerm); err != nil {
			return err
		}
		i.Logger.Debugf("%s directory is successfully created!", i.Dir)
	}

	return nil
}
