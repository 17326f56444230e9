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
	"errors"
	"net/http"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/protobuf/proto"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
)

type fakeWaiter struct {
	responses []*computepb.Operation
	err       error
	requests  []*computepb.WaitGlobalOperationRequest
	cancel    context.CancelFunc
}

func (f *fakeWaiter) Wait(ctx context.Context, req *computepb.WaitGlobalOperationRequest, opts ...gax.CallOption) (*computepb.Operation, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.cancel != nil {
		f.cancel()
	}

	op := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return op, nil
}

func status(s computepb.Operation_Status) *computepb.Operation_Status {
	return &s
}

func TestGlobalOperationWaitsUntilDone(t *testing.T) {
	w := &fakeWaiter{
		responses: []*computepb.Operation{
			{Name: proto.String("op-1"), Status: status(computepb.Operation_RUNNING)},
			{Name: proto.String("op-1"), Status: status(computepb.Operation_RUNNING)},
			{Name: proto.String("op-1"), Status: status(computepb.Operation_DONE)},
		},
	}
	op := globalOperation{project: testProject, name: "op-1", client: w}

	require.NoError(t, op.Wait(context.Background()))
	require.Len(t, w.requests, 3)
	assert.Equal(t, testProject, w.requests[0].GetProject())
	assert.Equal(t, "op-1", w.requests[0].GetOperation())
}

func TestGlobalOperationSurfacesErrors(t *testing.T) {
	w := &fakeWaiter{
		responses: []*computepb.Operation{
			{
				Name:   proto.String("op-1"),
				Status: status(computepb.Operation_DONE),
				Error: &computepb.Error{
					Errors: []*computepb.Errors{
						{Code: proto.String("RESOURCE_NOT_FOUND"), Message: proto.String("disk your-running-instance was not found")},
					},
				},
			},
		},
	}
	op := globalOperation{project: testProject, name: "op-1", client: w}

	err := op.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESOURCE_NOT_FOUND")
	assert.Contains(t, err.Error(), "was not found")
}

func TestGlobalOperationCallError(t *testing.T) {
	apiErr := errors.New("permission denied")
	op := globalOperation{project: testProject, name: "op-1", client: &fakeWaiter{err: apiErr}}

	err := op.Wait(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiErr))
}

func TestGlobalOperationStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &fakeWaiter{
		responses: []*computepb.Operation{
			{Name: proto.String("op-1"), Status: status(computepb.Operation_RUNNING)},
		},
		cancel: cancel,
	}
	op := globalOperation{project: testProject, name: "op-1", client: w}

	err := op.Wait(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, w.requests, 1)
}

func TestApiOperationWithoutHandle(t *testing.T) {
	op := apiOperation{}

	assert.Equal(t, "", op.Name())
	assert.NoError(t, op.Wait(context.Background()))
}

func TestNotFoundOr(t *testing.T) {
	rs := provisioner.ResourceStatus{Kind: constants.StepImage, Name: "my-app-image"}

	got, err := notFoundOr(rs, &googleapi.Error{Code: http.StatusNotFound})
	require.NoError(t, err)
	assert.Equal(t, constants.NotFound, got.Status)

	_, err = notFoundOr(rs, &googleapi.Error{Code: http.StatusForbidden})
	assert.Error(t, err)

	_, err = notFoundOr(rs, errors.New("connection reset"))
	assert.Error(t, err)
}

func TestSplitGSPath(t *testing.T) {
	bucket, object, err := SplitGSPath("gs://manifests/app/hello.yaml")
	require.NoError(t, err)
	assert.Equal(t, "manifests", bucket)
	assert.Equal(t, "app/hello.yaml", object)

	for _, url := range []string{"s3://manifests/hello.yaml", "gs://manifests", "gs:///hello.yaml"} {
		_, _, err := SplitGSPath(url)
		assert.Error(t, err, url)
	}
}
