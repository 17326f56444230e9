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

package inspector

import (
	"context"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

type Inspector struct {
	Describer provisioner.Describer
	Statuses  []provisioner.ResourceStatus
}

func New(describer provisioner.Describer) Inspector {
	return Inspector{
		Describer: describer,
	}
}

// Inspect reads the status of every resource of the configuration
func (i Inspector) Inspect(ctx context.Context, config schemas.ProvisionConfig) (Inspector, error) {
	statuses, err := i.Describer.Describe(ctx, config)
	if err != nil {
		return i, err
	}

	i.Statuses = statuses
	return i, nil
}

// Missing returns the number of resources which do not exist
func (i Inspector) Missing() int {
	count := 0
	for _, s := range i.Statuses {
		if s.Status == constants.NotFound {
			count++
		}
	}
	return count
}

// Print writes the statuses as a table
func (i Inspector) Print(out io.Writer) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Step", "Name", "Status", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, s := range i.Statuses {
		status := s.Status
		if status == constants.NotFound {
			status = tool.DecorateAttr("red", status)
		}
		table.Append([]string{s.Kind, s.Name, status, s.Detail})
	}
	table.Render()

	if missing := i.Missing(); missing > 0 {
		tool.Yellow.Fprintf(out, "%d of %d resources do not exist", missing, len(i.Statuses))
	}

	return nil
}
