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

package tool

import (
	"bytes"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/go-test/deep"
)

func TestSplitList(t *testing.T) {
	testData := []struct {
		Input    string
		Expected []string
	}{
		{
			Input:    "image,template",
			Expected: []string{"image", "template"},
		},
		{
			Input:    " image , health-check ,",
			Expected: []string{"image", "health-check"},
		},
		{
			Input:    "",
			Expected: nil,
		},
	}

	for _, td := range testData {
		if diff := deep.Equal(SplitList(td.Input), td.Expected); diff != nil {
			t.Errorf("input: %q, diff: %v", td.Input, diff)
		}
	}
}

func TestIsStringInPointerArray(t *testing.T) {
	a, b := "a", "b"

	if !IsStringInPointerArray("b", []*string{&a, nil, &b}) {
		t.Error("b should be found")
	}

	if IsStringInPointerArray("c", []*string{&a, &b}) {
		t.Error("c should not be found")
	}
}

func TestRoundTime(t *testing.T) {
	testData := map[time.Duration]string{
		500 * time.Millisecond:  "500.00ms",
		1500 * time.Millisecond: "1.50s",
		90 * time.Second:        "1.50m",
	}

	for d, expected := range testData {
		if output := RoundTime(d); output != expected {
			t.Errorf("expected: %s, output: %s", expected, output)
		}
	}
}

func TestPrintTemplate(t *testing.T) {
	tmpl := template.Must(template.New("").Parse("{{ .Name }}\t{{ .Size }}\n"))
	out := &bytes.Buffer{}

	err := PrintTemplate(out, struct {
		Name string
		Size int
	}{Name: "my-instance-group", Size: 2}, tmpl)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "my-instance-group") || !strings.Contains(out.String(), "2") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
