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

import "fmt"

// DiskPath returns the boot disk of an instance. The disk has the instance's name.
func DiskPath(project, zone, instance string) string {
	return fmt.Sprintf("projects/%s/zones/%s/disks/%s", project, zone, instance)
}

func ImagePath(project, image string) string {
	return fmt.Sprintf("projects/%s/global/images/%s", project, image)
}

func InstanceTemplatePath(project, template string) string {
	return fmt.Sprintf("projects/%s/global/instanceTemplates/%s", project, template)
}

// InstanceGroupPath returns the instance group created by a managed instance group of the same name
func InstanceGroupPath(project, zone, group string) string {
	return fmt.Sprintf("projects/%s/zones/%s/instanceGroups/%s", project, zone, group)
}

func HealthCheckPath(project, healthCheck string) string {
	return fmt.Sprintf("projects/%s/global/healthChecks/%s", project, healthCheck)
}

func BackendServicePath(project, backendService string) string {
	return fmt.Sprintf("projects/%s/global/backendServices/%s", project, backendService)
}
