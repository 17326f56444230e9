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

package builder

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"reflect"
	"strings"
	"text/template"
	"time"

	Logger "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/DevopsArtFactory/goscaler/pkg/aws"
	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/templates"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

type Builder struct { // Do not add comments for this struct
	// Config from command
	Config schemas.Config

	// Manifest file contents
	Manifest schemas.YamlConfig

	// Values used for provisioning
	ProvisionConfig schemas.ProvisionConfig

	// Steps to run, in order
	Steps []string
}

var (
	NoManifestExists = "manifest file does not exist"
)

// NewBuilder creates a builder from command line arguments
func NewBuilder(config *schemas.Config) (Builder, error) {
	builder := Builder{}

	// parsing argument
	if config == nil {
		c := argumentParsing()
		config = &c
	}

	// set config
	builder.Config = *config

	return builder, nil
}

// SetManifestConfig reads the local manifest and builds the configuration.
// Without manifest, every value comes from the defaults.
func (b Builder) SetManifestConfig() (Builder, error) {
	if len(b.Config.Manifest) == 0 {
		Logger.Debug("no manifest is specified: default values are used")
		return b.SetManifestConfigWithBytes(nil)
	}

	if !tool.CheckFileExists(b.Config.Manifest) {
		return b, fmt.Errorf("%s: %s", NoManifestExists, b.Config.Manifest)
	}

	yamlFile, err := ioutil.ReadFile(b.Config.Manifest)
	if err != nil {
		return b, fmt.Errorf("error reading YAML file: %v", err)
	}

	return b.SetManifestConfigWithBytes(yamlFile)
}

// SetManifestConfigWithBytes builds the configuration from manifest contents
func (b Builder) SetManifestConfigWithBytes(fileBytes []byte) (Builder, error) {
	manifest, err := buildStructFromYaml(fileBytes)
	if err != nil {
		return b, err
	}

	b.Manifest = manifest
	b.ProvisionConfig = MergeConfig(b.Config, manifest)
	b.Steps = tool.SplitList(b.Config.Step)

	return b, nil
}

func buildStructFromYaml(yamlFile []byte) (schemas.YamlConfig, error) {
	yamlConfig := schemas.YamlConfig{}
	if len(yamlFile) == 0 {
		return yamlConfig, nil
	}

	if err := yaml.Unmarshal(yamlFile, &yamlConfig); err != nil {
		return yamlConfig, fmt.Errorf("manifest is not valid: %v", err)
	}

	return yamlConfig, nil
}

// MergeConfig overrides defaults with the manifest, then with command line flags
func MergeConfig(config schemas.Config, y schemas.YamlConfig) schemas.ProvisionConfig {
	provider := firstNonEmpty(config.Provider, y.Provider, constants.DefaultProvider)
	c := schemas.DefaultProvisionConfig(provider)

	c.Application = y.Name
	c.Project = firstNonEmpty(config.Project, y.Project, c.Project)
	c.Zone = firstNonEmpty(config.Zone, y.Zone, c.Zone)
	c.Region = firstNonEmpty(config.Region, y.Region, c.Region)

	c.ImageName = firstNonEmpty(y.Image.Name, c.ImageName)
	c.InstanceName = firstNonEmpty(y.Image.SourceInstance, c.InstanceName)

	c.TemplateName = firstNonEmpty(y.Template.Name, c.TemplateName)
	c.MachineType = firstNonEmpty(y.Template.MachineType, c.MachineType)
	c.Network = firstNonEmpty(y.Template.Network, c.Network)

	c.GroupName = firstNonEmpty(y.InstanceGroup.Name, c.GroupName)
	c.BaseInstanceName = firstNonEmpty(y.InstanceGroup.BaseInstanceName, c.BaseInstanceName)
	if y.InstanceGroup.TargetSize != nil {
		c.TargetSize = *y.InstanceGroup.TargetSize
	}

	c.HealthCheck.Name = firstNonEmpty(y.HealthCheck.Name, c.HealthCheck.Name)
	if y.HealthCheck.Port != 0 {
		c.HealthCheck.Port = y.HealthCheck.Port
	}
	c.HealthCheck.RequestPath = firstNonEmpty(y.HealthCheck.RequestPath, c.HealthCheck.RequestPath)

	c.BackendServiceName = firstNonEmpty(y.BackendService.Name, c.BackendServiceName)

	if len(c.Application) == 0 {
		c.Application = c.GroupName
	}

	if c.Provider == constants.ProviderAWS && len(c.Region) == 0 {
		c.Region = aws.RegionFromZone(c.Zone)
	}

	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return constants.EmptyString
}

// CheckValidation validates the configuration before any remote call
func (b Builder) CheckValidation() error {
	c := b.ProvisionConfig

	if !tool.IsStringInArray(c.Provider, constants.AvailableProviders) {
		return fmt.Errorf("provider is not supported: %s, available: %s", c.Provider, strings.Join(constants.AvailableProviders, ","))
	}

	if c.Provider == constants.ProviderGCP {
		if len(c.Project) == 0 {
			return errors.New("project is required for gcp")
		}
		if len(c.Network) == 0 {
			return errors.New("network is required for gcp")
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"zone", c.Zone},
		{"source instance", c.InstanceName},
		{"image name", c.ImageName},
		{"template name", c.TemplateName},
		{"machine type", c.MachineType},
		{"instance group name", c.GroupName},
		{"base instance name", c.BaseInstanceName},
		{"health check name", c.HealthCheck.Name},
		{"backend service name", c.BackendServiceName},
	}
	for _, r := range required {
		if len(r.value) == 0 {
			return fmt.Errorf("%s cannot be empty", r.name)
		}
	}

	if c.TargetSize < 0 {
		return fmt.Errorf("target size cannot be negative: %d", c.TargetSize)
	}

	if c.HealthCheck.Port < 1 || c.HealthCheck.Port > 65535 {
		return fmt.Errorf("health check port is out of range: %d", c.HealthCheck.Port)
	}

	if !strings.HasPrefix(c.HealthCheck.RequestPath, "/") {
		return fmt.Errorf("health check request path should start with /: %s", c.HealthCheck.RequestPath)
	}

	for _, s := range b.Steps {
		if !tool.IsStringInArray(s, constants.StepOrder) {
			return fmt.Errorf("no step exists: %s, available: %s", s, strings.Join(constants.StepOrder, ","))
		}
	}

	if b.Config.Timeout < constants.MinTimeout {
		return fmt.Errorf("timeout cannot be smaller than %.0f min", constants.MinTimeout.Minutes())
	}

	if len(b.Config.LogLevel) > 0 {
		if _, ok := constants.LogLevelMapper[b.Config.LogLevel]; !ok {
			return fmt.Errorf("log level is not valid: %s", b.Config.LogLevel)
		}
	}

	return nil
}

// PlannedSteps returns the steps which will run
func (b Builder) PlannedSteps() []string {
	if len(b.Steps) == 0 {
		return constants.StepOrder
	}

	var ret []string
	for _, s := range constants.StepOrder {
		if tool.IsStringInArray(s, b.Steps) {
			ret = append(ret, s)
		}
	}
	return ret
}

// PrintSummary prints the configuration which will be applied
func (b Builder) PrintSummary(out io.Writer) error {
	funcMap := template.FuncMap{
		"decorate":   tool.DecorateAttr,
		"joinString": strings.Join,
	}

	t := template.Must(template.New("Provisioning summary").Funcs(funcMap).Parse(templates.ProvisionSummary))

	return tool.PrintTemplate(out, struct {
		Config  schemas.ProvisionConfig
		Steps   []string
		Timeout time.Duration
	}{
		Config:  b.ProvisionConfig,
		Steps:   b.PlannedSteps(),
		Timeout: b.Config.Timeout,
	}, t)
}

func argumentParsing() schemas.Config {
	keys := viper.AllKeys()
	config := schemas.Config{}

	val := reflect.ValueOf(&config).Elem()
	for i := 0; i < val.NumField(); i++ {
		typeField := val.Type().Field(i)
		key := strings.ReplaceAll(typeField.Tag.Get("json"), "_", "-")
		if tool.IsStringInArray(key, keys) {
			t := val.FieldByName(typeField.Name)
			if t.CanSet() {
				switch t.Kind() {
				case reflect.String:
					t.SetString(viper.GetString(key))
				case reflect.Int:
					t.SetInt(viper.GetInt64(key))
				case reflect.Int64: // should use int64 not, int
					if tool.IsStringInArray(key, constants.TimeFields) {
						t.SetInt(int64(viper.GetDuration(key)))
					} else {
						t.SetInt(viper.GetInt64(key))
					}
				case reflect.Bool:
					t.SetBool(viper.GetBool(key))
				}
			}
		}
	}

	return RefineConfig(config)
}

// RefineConfig fills values which are not given
func RefineConfig(config schemas.Config) schemas.Config {
	// a bare number is minutes
	if config.Timeout > 0 && config.Timeout < time.Second {
		config.Timeout = config.Timeout * time.Minute
	}

	if config.Timeout == 0 {
		config.Timeout = constants.DefaultTimeout
	}

	if len(config.LogLevel) == 0 {
		config.LogLevel = constants.DefaultLogLevel.String()
	}

	return config
}
