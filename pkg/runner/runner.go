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

package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	Logger "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/DevopsArtFactory/goscaler/pkg/aws"
	"github.com/DevopsArtFactory/goscaler/pkg/builder"
	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/gcp"
	"github.com/DevopsArtFactory/goscaler/pkg/initializer"
	"github.com/DevopsArtFactory/goscaler/pkg/inspector"
	"github.com/DevopsArtFactory/goscaler/pkg/provisioner"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
	"github.com/DevopsArtFactory/goscaler/pkg/slack"
	"github.com/DevopsArtFactory/goscaler/pkg/tool"
)

// BackendFactory creates the cloud client of the configured provider
type BackendFactory func(ctx context.Context, config schemas.ProvisionConfig) (provisioner.Backend, error)

type Runner struct {
	Logger     *Logger.Logger
	Builder    builder.Builder
	Slacker    slack.Slack
	Out        io.Writer
	NewBackend BackendFactory
}

// NewRunner creates a new runner
func NewRunner(newBuilder builder.Builder) Runner {
	return Runner{
		Logger:     Logger.New(),
		Builder:    newBuilder,
		Slacker:    slack.NewSlackClient(newBuilder.Config.SlackOff),
		Out:        os.Stdout,
		NewBackend: newBackend,
	}
}

// FuncMapper returns the function of each mode, bound to the current runner
func (r Runner) FuncMapper() map[string]func(ctx context.Context) error {
	return map[string]func(ctx context.Context) error{
		"provision": r.Provision,
		"status":    r.Status,
	}
}

func newBackend(ctx context.Context, config schemas.ProvisionConfig) (provisioner.Backend, error) {
	switch config.Provider {
	case constants.ProviderAWS:
		return aws.BootstrapServices(config.Region, config.Zone, constants.EmptyString), nil
	case constants.ProviderGCP:
		c, err := gcp.NewClient(ctx, config.Project, config.Zone)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	return nil, fmt.Errorf("provider is not supported: %s", config.Provider)
}

// SetupBuilder setup builder struct for configuration
func SetupBuilder(ctx context.Context, mode string) (builder.Builder, error) {
	builderSt, err := builder.NewBuilder(nil)
	if err != nil {
		return builder.Builder{}, err
	}

	if !checkBuilderConfigurationNeeded(mode) {
		return builderSt, nil
	}

	return setManifestToBuilder(ctx, builderSt)
}

// setManifestToBuilder reads the manifest from local disk, s3 or google cloud storage
func setManifestToBuilder(ctx context.Context, builderSt builder.Builder) (builder.Builder, error) {
	manifest := builderSt.Config.Manifest

	switch {
	case strings.HasPrefix(manifest, constants.S3Prefix):
		bucket, key, err := aws.FilterS3Path(manifest)
		if err != nil {
			return builder.Builder{}, err
		}

		s := aws.BootstrapManifestService(builderSt.Config.ManifestS3Region, constants.EmptyString)
		fileBytes, err := s.S3Service.GetManifest(bucket, key)
		if err != nil {
			return builder.Builder{}, err
		}
		return builderSt.SetManifestConfigWithBytes(fileBytes)
	case strings.HasPrefix(manifest, constants.GSPrefix):
		fileBytes, err := gcp.ReadObject(ctx, manifest)
		if err != nil {
			return builder.Builder{}, err
		}
		return builderSt.SetManifestConfigWithBytes(fileBytes)
	}

	return builderSt.SetManifestConfig()
}

// Initialize creates a sample manifest for goscaler
func Initialize(args []string) error {
	var appName string
	var err error

	// validation
	if len(args) > 1 {
		return errors.New("usage: goscaler init <application name>")
	}

	if len(args) == 0 {
		appName, err = askApplicationName()
		if err != nil {
			return err
		}
	} else {
		appName = args[0]
	}

	provider := viper.GetString("provider")
	if len(provider) == 0 {
		provider = constants.DefaultProvider
	}

	level := logLevel(viper.GetString("log-level"))
	Logger.SetLevel(level)

	i := initializer.NewInitializer(appName, provider)
	i.Logger.SetLevel(level)

	_, err = i.RunInit(os.Stdout)
	return err
}

// Start function is the starting point of all processes.
func Start(ctx context.Context, builderSt builder.Builder, mode string) error {
	if checkBuilderConfigurationNeeded(mode) {
		// Check validation of configurations
		if err := builderSt.CheckValidation(); err != nil {
			return err
		}
	}

	// run with runner
	return withRunner(ctx, builderSt, mode, func(slacker slack.Slack) error {
		if !builderSt.Config.SlackOff && !builderSt.Config.DryRun && mode == "provision" {
			if err := slacker.SendSimpleMessage(fmt.Sprintf(":100: Provisioning is done: %s", builderSt.ProvisionConfig.Application)); err != nil {
				Logger.Warn(err.Error())
			}
		}

		return nil
	})
}

// withRunner creates runner and runs the provisioning process
func withRunner(ctx context.Context, builderSt builder.Builder, mode string, postAction func(slacker slack.Slack) error) error {
	runner := NewRunner(builderSt)
	runner.LogFormatting(builderSt.Config.LogLevel)

	if err := runner.Run(ctx, mode); err != nil {
		return err
	}

	return postAction(runner.Slacker)
}

// LogFormatting sets log format of the runner and of the package-level logger used by providers
func (r Runner) LogFormatting(name string) {
	level := logLevel(name)

	r.Logger.SetOutput(os.Stdout)
	r.Logger.SetLevel(level)

	Logger.SetOutput(os.Stdout)
	Logger.SetLevel(level)
}

func logLevel(name string) Logger.Level {
	if level, ok := constants.LogLevelMapper[name]; ok {
		return level
	}
	return constants.DefaultLogLevel
}

// Run executes the function of the mode
func (r Runner) Run(ctx context.Context, mode string) error {
	f, ok := r.FuncMapper()[mode]
	if !ok {
		return fmt.Errorf("no function exists to run for %s", mode)
	}
	return f(ctx)
}

// Provision is the main function of `goscaler provision`
func (r Runner) Provision(ctx context.Context) error {
	config := r.Builder.ProvisionConfig

	if err := r.Builder.PrintSummary(r.Out); err != nil {
		return err
	}

	if r.Builder.Config.DryRun {
		return PrintPlan(r.Out, config, r.Builder.PlannedSteps())
	}

	if err := tool.LocalCheck("Do you really want to provision these resources? ", r.Builder.Config.AutoApply); err != nil {
		return err
	}

	r.Logger.Infof("Beginning provisioning: %s", config.Application)

	if r.Slacker.ValidClient() {
		r.Logger.Debug("Slack configuration is valid")
		if err := r.Slacker.SendSummaryMessage(config, r.Builder.PlannedSteps()); err != nil {
			r.Logger.Warn(err.Error())
			r.Slacker.SlackOff = true
		}
	} else if !r.Builder.Config.SlackOff {
		// Slack variables are not set
		r.Logger.Warn("no slack variables exists. [ SLACK_TOKEN, SLACK_CHANNEL or SLACK_WEBHOOK_URL ]")
	}

	backend, err := r.NewBackend(ctx, config)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			r.Logger.Warnf("failed to close client: %v", err)
		}
	}()

	if config.Provider == constants.ProviderAWS {
		r.Logger.Warnf("aws has no backend service resource: %s is attached to %s as a target group", config.HealthCheck.Name, config.GroupName)
	}

	s := provisioner.New(backend, config, r.Out, r.Logger)
	s.Timeout = r.Builder.Config.Timeout
	s.Only = r.Builder.Steps

	if err := s.Run(ctx); err != nil {
		if !r.Slacker.SlackOff {
			if serr := r.Slacker.SendSimpleMessage(fmt.Sprintf(":x: Provisioning failed: %s\n%s", config.Application, err.Error())); serr != nil {
				r.Logger.Warn(serr.Error())
			}
		}
		return err
	}

	return nil
}

// Status shows the current state of every resource
func (r Runner) Status(ctx context.Context) error {
	backend, err := r.NewBackend(ctx, r.Builder.ProvisionConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	i, err := inspector.New(backend).Inspect(ctx, r.Builder.ProvisionConfig)
	if err != nil {
		return err
	}

	return i.Print(r.Out)
}

func askApplicationName() (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: "What is application name? ",
	}
	survey.AskOne(prompt, &answer)
	if answer == constants.EmptyString {
		return constants.EmptyString, errors.New("canceled")
	}

	return answer, nil
}

// checkBuilderConfigurationNeeded checks if mode needs manifest and validation
func checkBuilderConfigurationNeeded(mode string) bool {
	return tool.IsStringInArray(mode, []string{"provision", "status"})
}
