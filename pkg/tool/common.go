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
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"text/template"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
)

// IsStringInArray checks if string value is in array or not
func IsStringInArray(s string, arr []string) bool {
	for _, as := range arr {
		if as == s {
			return true
		}
	}
	return false
}

// IsStringInPointerArray checks if string value is in array or not
func IsStringInPointerArray(s string, arr []*string) bool {
	for _, as := range arr {
		if as != nil && *as == s {
			return true
		}
	}
	return false
}

// SplitList splits comma separated values and drops empty items
func SplitList(s string) []string {
	var ret []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if len(item) > 0 {
			ret = append(ret, item)
		}
	}
	return ret
}

// AskContinue asks a user whether or not to continue the process
func AskContinue(message string) bool {
	var answer string
	prompt := &survey.Input{
		Message: message,
	}
	survey.AskOne(prompt, &answer)
	if answer == "" {
		return false
	}

	if IsStringInArray(strings.ToLower(answer), constants.AllowedAnswerYes) {
		return true
	}

	return false
}

// CheckFileExists checks if a file or a directory exists or not
func CheckFileExists(filePath string) bool {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return false
	}
	return true
}

// RoundTime creates rounded time
func RoundTime(d time.Duration) string {
	var r float64
	var suffix string
	switch {
	case d > time.Minute:
		r = d.Minutes()
		suffix = "m"
	case d > time.Second:
		r = d.Seconds()
		suffix = "s"
	default:
		r = float64(d.Milliseconds())
		suffix = "ms"
	}

	return fmt.Sprintf("%.2f%s", r, suffix)
}

// LocalCheck checks whether or not to continue when it is run on localhost.
// Cannot add windows because goscaler could be run on Windows..
func LocalCheck(message string, autoApply bool) error {
	// From local os, you need to ensure that this command is intended
	if runtime.GOOS == "darwin" && !autoApply {
		if !AskContinue(message) {
			return errors.New("you declined to run command")
		}
	}
	return nil
}

// PrintTemplate prints template with data
func PrintTemplate(out io.Writer, data interface{}, t *template.Template) error {
	w := tabwriter.NewWriter(out, 0, 5, 3, ' ', tabwriter.TabIndent)
	err := t.Execute(w, data)
	if err != nil {
		return err
	}
	return w.Flush()
}
