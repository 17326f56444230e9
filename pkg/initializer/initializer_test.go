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
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
	"gopkg.in/yaml.v2"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
)

func newTestInitializer(t *testing.T, confirm bool) (Initializer, func()) {
	dir, err := ioutil.TempDir("", "goscaler-init")
	if err != nil {
		t.Fatal(err)
	}

	i := NewInitializer("hello", constants.ProviderGCP)
	i.Dir = filepath.Join(dir, manifestDir)
	i.Logger.SetOutput(ioutil.Discard)
	i.Confirm = func(string) bool { return confirm }

	return i, func() { os.RemoveAll(dir) }
}

func TestRunInit(t *testing.T) {
	i, cleanup := newTestInitializer(t, true)
	defer cleanup()

	path, err := i.RunInit(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var written schemas.YamlConfig
	if err := yaml.Unmarshal(data, &written); err != nil {
		t.Fatal(err)
	}

	if diff := deep.Equal(written, SampleManifest("hello", constants.ProviderGCP)); diff != nil {
		t.Error(diff)
	}

	if _, err := i.RunInit(&bytes.Buffer{}); err == nil {
		t.Error("existing manifest should not be overwritten")
	}
}

func TestRunInitCanceled(t *testing.T) {
	i, cleanup := newTestInitializer(t, false)
	defer cleanup()

	path, err := i.RunInit(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("manifest should not be created: %s", path)
	}
}

func TestSampleManifest(t *testing.T) {
	m := SampleManifest("hello", constants.ProviderAWS)

	if m.Provider != constants.ProviderAWS || len(m.Project) != 0 || m.Template.MachineType != constants.DefaultAWSInstanceType {
		t.Errorf("aws sample is not valid: %+v", m)
	}

	if m.InstanceGroup.TargetSize == nil || *m.InstanceGroup.TargetSize != constants.DefaultTargetSize {
		t.Error("target size should be set")
	}
}
