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

package templates

const ProvisionSummary = `============================================================
Provisioning Summary
============================================================
{{ decorate "underline bold" "Application" }}:	{{ .Config.Application }}
{{ decorate "underline bold" "Provider" }}:	{{ .Config.Provider }}
{{- if gt (len .Config.Project) 0 }}
{{ decorate "underline bold" "Project" }}:	{{ .Config.Project }}
{{- end }}
{{ decorate "underline bold" "Zone" }}:	{{ .Config.Zone }}
{{- if gt (len .Config.Region) 0 }}
{{ decorate "underline bold" "Region" }}:	{{ .Config.Region }}
{{- end }}
{{ decorate "underline bold" "Timeout" }}:	{{ .Timeout }}
{{ decorate "underline bold" "Steps" }}:	{{ joinString .Steps "," }}

{{ decorate "image" "" }}{{ decorate "underline bold" "Image" }}
{{ decorate "bullet" (decorate "bold" "Name") }}:	{{ .Config.ImageName }}
{{ decorate "bullet" (decorate "bold" "Source Instance") }}:	{{ .Config.InstanceName }}

{{ decorate "group" "" }}{{ decorate "underline bold" "Instance Group" }}
{{ decorate "bullet" (decorate "bold" "Template") }}:	{{ .Config.TemplateName }}
{{ decorate "bullet" (decorate "bold" "Machine Type") }}:	{{ .Config.MachineType }}
{{- if gt (len .Config.Network) 0 }}
{{ decorate "bullet" (decorate "bold" "Network") }}:	{{ .Config.Network }}
{{- end }}
{{ decorate "bullet" (decorate "bold" "Group") }}:	{{ .Config.GroupName }}
{{ decorate "bullet" (decorate "bold" "Base Instance Name") }}:	{{ .Config.BaseInstanceName }}
{{ decorate "bullet" (decorate "bold" "Target Size") }}:	{{ .Config.TargetSize }}

{{ decorate "network" "" }}{{ decorate "underline bold" "Load Balancing" }}
{{ decorate "bullet" (decorate "bold" "Health Check") }}:	{{ .Config.HealthCheck.Name }}
{{ decorate "bullet" (decorate "bold" "Probe") }}:	HTTP :{{ .Config.HealthCheck.Port }}{{ .Config.HealthCheck.RequestPath }}
{{ decorate "bullet" (decorate "bold" "Backend Service") }}:	{{ .Config.BackendServiceName }}
============================================================
`

const DryRunPlan = `{{ decorate "underline bold" "Planned resources" }}
STEP	RESOURCE
{{- range $r := .Resources }}
{{ $r.Step }}	{{ $r.Path }}
{{- end }}
No resource has been created.
`
