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
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
)

const testManifest = `
name: hello
project: my-project
zone: asia-northeast3-a
image:
  name: hello-image
  source_instance: hello-golden
template:
  name: hello-template
  machine_type: n2-standard-2
instance_group:
  name: hello-group
  target_size: 0
health_check:
  name: hello-hc
  port: 8080
  request_path: /ping
backend_service:
  name: hello-backend
`

func newTestBuilder(config schemas.Config, manifest string) (Builder, error) {
	b, err := NewBuilder(&config)
	if err != nil {
		return b, err
	}

	return b.SetManifestConfigWithBytes([]byte(manifest))
}

func TestDefaultConfig(t *testing.T) {
	b, err := newTestBuilder(RefineConfig(schemas.Config{}), "")
	if err != nil {
		t.Fatal(err)
	}

	expected := schemas.DefaultProvisionConfig(constants.ProviderGCP)
	expected.Application = constants.DefaultGroupName

	if diff := deep.Equal(b.ProvisionConfig, expected); diff != nil {
		t.Error(diff)
	}

	if err := b.CheckValidation(); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}

	if diff := deep.Equal(b.PlannedSteps(), constants.StepOrder); diff != nil {
		t.Error(diff)
	}
}

func TestManifestOverridesDefault(t *testing.T) {
	b, err := newTestBuilder(RefineConfig(schemas.Config{}), testManifest)
	if err != nil {
		t.Fatal(err)
	}

	expected := schemas.ProvisionConfig{
		Application:      "hello",
		Provider:         constants.ProviderGCP,
		Project:          "my-project",
		Zone:             "asia-northeast3-a",
		InstanceName:     "hello-golden",
		ImageName:        "hello-image",
		TemplateName:     "hello-template",
		MachineType:      "n2-standard-2",
		Network:          constants.DefaultNetwork,
		GroupName:        "hello-group",
		BaseInstanceName: constants.DefaultBaseInstanceName,
		TargetSize:       0,
		HealthCheck: schemas.HealthCheck{
			Name:        "hello-hc",
			Port:        8080,
			RequestPath: "/ping",
		},
		BackendServiceName: "hello-backend",
	}

	if diff := deep.Equal(b.ProvisionConfig, expected); diff != nil {
		t.Error(diff)
	}
}

func TestFlagsOverrideManifest(t *testing.T) {
	b, err := newTestBuilder(RefineConfig(schemas.Config{
		Project: "flag-project",
		Zone:    "us-east1-b",
	}), testManifest)
	if err != nil {
		t.Fatal(err)
	}

	if b.ProvisionConfig.Project != "flag-project" || b.ProvisionConfig.Zone != "us-east1-b" {
		t.Errorf("flags are not applied: %s/%s", b.ProvisionConfig.Project, b.ProvisionConfig.Zone)
	}
}

func TestAWSProvider(t *testing.T) {
	b, err := newTestBuilder(RefineConfig(schemas.Config{Provider: constants.ProviderAWS}), "")
	if err != nil {
		t.Fatal(err)
	}

	c := b.ProvisionConfig
	if c.Region != "ap-northeast-2" {
		t.Errorf("region should be derived from zone: %s", c.Region)
	}

	if c.MachineType != constants.DefaultAWSInstanceType || len(c.Project) != 0 || len(c.Network) != 0 {
		t.Errorf("aws defaults are not applied: %+v", c)
	}

	if err := b.CheckValidation(); err != nil {
		t.Errorf("aws default configuration should be valid: %v", err)
	}
}

func TestInvalidManifest(t *testing.T) {
	if _, err := newTestBuilder(RefineConfig(schemas.Config{}), "name: [hello"); err == nil {
		t.Error("invalid yaml should fail")
	}
}

func TestCheckValidation(t *testing.T) {
	testData := []struct {
		Name     string
		Modify   func(b *Builder)
		Expected string
	}{
		{
			Name:     "provider",
			Modify:   func(b *Builder) { b.ProvisionConfig.Provider = "azure" },
			Expected: "provider is not supported: azure, available: gcp,aws",
		},
		{
			Name:     "project",
			Modify:   func(b *Builder) { b.ProvisionConfig.Project = "" },
			Expected: "project is required for gcp",
		},
		{
			Name:     "image name",
			Modify:   func(b *Builder) { b.ProvisionConfig.ImageName = "" },
			Expected: "image name cannot be empty",
		},
		{
			Name:     "target size",
			Modify:   func(b *Builder) { b.ProvisionConfig.TargetSize = -1 },
			Expected: "target size cannot be negative: -1",
		},
		{
			Name:     "port",
			Modify:   func(b *Builder) { b.ProvisionConfig.HealthCheck.Port = 70000 },
			Expected: "health check port is out of range: 70000",
		},
		{
			Name:     "request path",
			Modify:   func(b *Builder) { b.ProvisionConfig.HealthCheck.RequestPath = "health" },
			Expected: "health check request path should start with /: health",
		},
		{
			Name:     "step",
			Modify:   func(b *Builder) { b.Steps = []string{"image", "firewall"} },
			Expected: fmt.Sprintf("no step exists: firewall, available: %s", strings.Join(constants.StepOrder, ",")),
		},
		{
			Name:     "timeout",
			Modify:   func(b *Builder) { b.Config.Timeout = 30 * time.Second },
			Expected: "timeout cannot be smaller than 1 min",
		},
		{
			Name:     "log level",
			Modify:   func(b *Builder) { b.Config.LogLevel = "verbose" },
			Expected: "log level is not valid: verbose",
		},
	}

	for _, td := range testData {
		b, err := newTestBuilder(RefineConfig(schemas.Config{}), "")
		if err != nil {
			t.Fatal(err)
		}

		td.Modify(&b)
		if err := b.CheckValidation(); err == nil || err.Error() != td.Expected {
			t.Errorf("validation failed: %s, got %v", td.Name, err)
		}
	}
}

func TestPlannedStepsKeepOrder(t *testing.T) {
	b, err := newTestBuilder(RefineConfig(schemas.Config{Step: "backend-service, image"}), "")
	if err != nil {
		t.Fatal(err)
	}

	if diff := deep.Equal(b.PlannedSteps(), []string{constants.StepImage, constants.StepBackendService}); diff != nil {
		t.Error(diff)
	}
}

func TestRefineConfig(t *testing.T) {
	testData := map[time.Duration]time.Duration{
		0:                constants.DefaultTimeout,
		30:               30 * time.Minute,
		60:               60 * time.Minute,
		90 * time.Minute: 90 * time.Minute,
		45 * time.Second: 45 * time.Second,
	}

	for input, expected := range testData {
		if output := RefineConfig(schemas.Config{Timeout: input}).Timeout; output != expected {
			t.Errorf("input: %v, expected: %v, output: %v", input, expected, output)
		}
	}
}

func TestSetManifestConfigFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "goscaler")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "hello.yaml")
	if err := ioutil.WriteFile(path, []byte(testManifest), 0644); err != nil {
		t.Fatal(err)
	}

	b, _ := NewBuilder(&schemas.Config{Manifest: path, Timeout: constants.DefaultTimeout})
	b, err = b.SetManifestConfig()
	if err != nil {
		t.Fatal(err)
	}

	if b.ProvisionConfig.Application != "hello" {
		t.Errorf("manifest is not loaded: %s", b.ProvisionConfig.Application)
	}

	b, _ = NewBuilder(&schemas.Config{Manifest: filepath.Join(dir, "missing.yaml")})
	if _, err := b.SetManifestConfig(); err == nil || !strings.HasPrefix(err.Error(), NoManifestExists) {
		t.Errorf("missing manifest should fail: %v", err)
	}
}

func TestPrintSummary(t *testing.T) {
	b, err := newTestBuilder(RefineConfig(schemas.Config{}), testManifest)
	if err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	if err := b.PrintSummary(out); err != nil {
		t.Fatal(err)
	}

	for _, s := range []string{"hello-image", "hello-golden", "hello-group", "HTTP :8080/ping", "hello-backend", "image,template,instance-group,health-check,backend-service"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("summary does not contain %s", s)
		}
	}
}
