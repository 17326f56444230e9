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

package cmd

import (
	"reflect"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
)

type Flag struct {
	Name          string
	Shorthand     string
	Usage         string
	Value         interface{}
	DefValue      interface{}
	FlagAddMethod string
	Hidden        bool

	pflag *pflag.Flag
}

var zeroTimeout time.Duration

var flagKey = map[string]string{
	"provision": "provisionSet",
	"status":    "statusSet",
	"init":      "initSet",
}

var CommonFlagRegistry = []Flag{
	{
		Name:          "profile",
		Shorthand:     "p",
		Usage:         "Profile configuration of AWS",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "log-level",
		Usage:         "Level of logging",
		Shorthand:     "v",
		Value:         aws.String(constants.EmptyString),
		DefValue:      "warning",
		FlagAddMethod: "StringVar",
	},
}

// targetFlags select the manifest and the cloud resources
var targetFlags = []Flag{
	{
		Name:          "manifest",
		Shorthand:     "m",
		Usage:         "The manifest configuration file to use. Local path, s3:// or gs:// URL",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "manifest-s3-region",
		Usage:         "Region of bucket containing the manifest configuration file to use. (required if –manifest starts with s3://)",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "provider",
		Usage:         "Cloud provider to provision on: gcp or aws",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "project",
		Usage:         "GCP project ID, overrides the manifest",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "zone",
		Usage:         "Zone of the instance and the instance group, overrides the manifest",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "region",
		Usage:         "AWS region, derived from zone if undefined",
		Value:         aws.String(constants.EmptyString),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
}

var FlagRegistry = map[string][]Flag{
	"provisionSet": append(append([]Flag{}, targetFlags...), []Flag{
		{
			Name:          "step",
			Usage:         "Comma separated steps to run. Runs all steps if undefined",
			Value:         aws.String(constants.EmptyString),
			DefValue:      constants.EmptyString,
			FlagAddMethod: "StringVar",
		},
		{
			Name:          "timeout",
			Usage:         "Time to wait for the image before timing out (default 60m)",
			Value:         &zeroTimeout,
			DefValue:      constants.DefaultTimeout,
			FlagAddMethod: "DurationVar",
		},
		{
			Name:          "dry-run",
			Usage:         "Print resources which would be created without calling any API",
			Value:         aws.Bool(false),
			DefValue:      false,
			FlagAddMethod: "BoolVar",
		},
		{
			Name:          "slack-off",
			Usage:         "Turn off slack alarm",
			Value:         aws.Bool(false),
			DefValue:      false,
			FlagAddMethod: "BoolVar",
		},
		{
			Name:          "auto-apply",
			Usage:         "Apply command without confirmation from local terminal",
			Value:         aws.Bool(false),
			DefValue:      false,
			FlagAddMethod: "BoolVar",
		},
	}...),
	"statusSet": targetFlags,
	"initSet": {
		{
			Name:          "provider",
			Usage:         "Cloud provider of the sample manifest: gcp or aws",
			Value:         aws.String(constants.EmptyString),
			DefValue:      constants.DefaultProvider,
			FlagAddMethod: "StringVar",
		},
	},
}

func (fl *Flag) flag() *pflag.Flag {
	if fl.pflag != nil {
		return fl.pflag
	}

	inputs := []interface{}{fl.Value, fl.Name}
	if fl.FlagAddMethod != "Var" {
		inputs = append(inputs, fl.DefValue)
	}
	inputs = append(inputs, fl.Usage)

	fs := pflag.NewFlagSet(fl.Name, pflag.ContinueOnError)
	reflect.ValueOf(fs).MethodByName(fl.FlagAddMethod).Call(reflectValueOf(inputs))
	f := fs.Lookup(fl.Name)
	if fl.Shorthand != constants.EmptyString {
		f.Shorthand = fl.Shorthand
	}
	f.Hidden = fl.Hidden
	fl.pflag = f

	return f
}

func reflectValueOf(values []interface{}) []reflect.Value {
	var results []reflect.Value
	for _, v := range values {
		results = append(results, reflect.ValueOf(v))
	}
	return results
}

//Add command flags
func SetCommandFlags(cmd *cobra.Command) {
	var flagsForCommand []*Flag

	registries := append(append([]Flag{}, CommonFlagRegistry...), FlagRegistry[flagKey[cmd.Use]]...)
	for i := range registries {
		fl := &registries[i]
		cmd.PersistentFlags().AddFlag(fl.flag())
		flagsForCommand = append(flagsForCommand, fl)
	}

	// Bind flags of the command before it runs
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		for _, fl := range flagsForCommand {
			viper.BindPFlag(fl.Name, cmd.PersistentFlags().Lookup(fl.Name))
		}

		if parent := cmd.Parent(); parent != nil {
			if preRun := parent.PersistentPreRunE; preRun != nil {
				if err := preRun(cmd, args); err != nil {
					return err
				}
			} else if preRun := parent.PersistentPreRun; preRun != nil {
				preRun(cmd, args)
			}
		}

		return nil
	}
}
