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
	"io/ioutil"
	"strings"

	"cloud.google.com/go/storage"
	Logger "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
)

// SplitGSPath returns bucket and object of gs://bucket/object
func SplitGSPath(url string) (string, string, error) {
	if !strings.HasPrefix(url, constants.GSPrefix) {
		return "", "", fmt.Errorf("not a google cloud storage url: %s", url)
	}

	parts := strings.SplitN(strings.TrimPrefix(url, constants.GSPrefix), "/", 2)
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return "", "", fmt.Errorf("url must be gs://bucket/object: %s", url)
	}

	return parts[0], parts[1], nil
}

// ReadObject downloads an object from google cloud storage
func ReadObject(ctx context.Context, url string, opts ...option.ClientOption) ([]byte, error) {
	bucket, object, err := SplitGSPath(url)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	Logger.Debugf("downloading manifest: bucket=%s object=%s", bucket, object)
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ioutil.ReadAll(r)
}
