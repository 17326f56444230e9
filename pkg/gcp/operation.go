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

import (
	"context"
	"fmt"
	"strings"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/googleapis/gax-go/v2"
	Logger "github.com/sirupsen/logrus"
)

// operationWaiter is satisfied by *compute.GlobalOperationsClient
type operationWaiter interface {
	Wait(ctx context.Context, req *computepb.WaitGlobalOperationRequest, opts ...gax.CallOption) (*computepb.Operation, error)
}

// globalOperation is waited on through the global operations API
type globalOperation struct {
	project string
	name    string
	client  operationWaiter
}

func (o globalOperation) Name() string {
	return o.name
}

// Wait blocks until the operation is DONE.
// The API returns after roughly two minutes even if the operation is still running, so it is called in a loop.
func (o globalOperation) Wait(ctx context.Context) error {
	req := &computepb.WaitGlobalOperationRequest{
		Project:   o.project,
		Operation: o.name,
	}

	for {
		op, err := o.client.Wait(ctx, req)
		if err != nil {
			return fmt.Errorf("waiting for operation %s: %w", o.name, err)
		}

		if op.GetStatus() == computepb.Operation_DONE {
			return operationError(op)
		}

		Logger.Debugf("operation %s is %s", o.name, op.GetStatus().String())

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("operation %s is not done: %w", o.name, err)
		}
	}
}

// operationError returns the errors reported by a finished operation
func operationError(op *computepb.Operation) error {
	errs := op.GetError().GetErrors()
	if len(errs) == 0 {
		return nil
	}

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.GetCode(), e.GetMessage()))
	}

	return fmt.Errorf("operation %s failed: %s", op.GetName(), strings.Join(msgs, ", "))
}

// apiOperation is the handle returned by the client library
type apiOperation struct {
	op *compute.Operation
}

func (o apiOperation) Name() string {
	if o.op == nil {
		return ""
	}
	return o.op.Name()
}

func (o apiOperation) Wait(ctx context.Context) error {
	if o.op == nil {
		return nil
	}
	return o.op.Wait(ctx)
}
