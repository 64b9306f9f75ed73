/*
Copyright 2026 the Story Spoiler Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/storyspoiler/storyspoiler-tests/test/api"
	"github.com/storyspoiler/storyspoiler-tests/test/api/scenario"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// runOptions override the environment for a single run.
type runOptions struct {
	baseURL  string
	validate bool
	cleanup  bool
}

func (o *runOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", "", "API base URL, overrides API_BASE_URL")
	f.BoolVar(&o.validate, "validate-responses", false, "check every response against the API description")
	f.BoolVar(&o.cleanup, "cleanup-orphans", false, "delete stories the run created but could not delete")
}

// apply overlays flags that were explicitly set onto the loaded config.
func (o *runOptions) apply(f *pflag.FlagSet, config *api.TestConfig) {
	if f.Changed("base-url") {
		config.BaseURL = o.baseURL
	}

	if f.Changed("validate-responses") {
		config.ValidateResponses = o.validate
	}

	if f.Changed("cleanup-orphans") {
		config.CleanupOrphans = o.cleanup
	}
}

//nolint:gochecknoglobals
var (
	runFlags runOptions

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the story lifecycle against the configured API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadRunConfig(cmd.Flags(), &runFlags)
			if err != nil {
				return err
			}

			return runLifecycle(cmd.Context(), cmd.OutOrStdout(), config)
		},
	}
)

func init() {
	runFlags.AddFlags(runCmd.Flags())
}

// loadRunConfig loads the environment, overlays the flags and validates
// the result.
func loadRunConfig(f *pflag.FlagSet, o *runOptions) (*api.TestConfig, error) {
	config, err := api.LoadTestConfig()
	if err != nil {
		return nil, err
	}

	o.apply(f, config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func runLifecycle(ctx context.Context, out io.Writer, config *api.TestConfig) error {
	ctx, cancel := context.WithTimeout(ctx, config.TestTimeout)
	defer cancel()

	ctx = log.IntoContext(ctx, log.Log.WithName("run"))

	session, err := api.NewSession(ctx, config)
	if err != nil {
		return err
	}

	report := scenario.Run(ctx, session.Client, scenario.StoryLifecycle(config.NonExistentStoryID))

	for _, result := range report.Results {
		status := "PASS"
		if !result.Passed() {
			status = "FAIL"
		}

		fmt.Fprintf(out, "%s  %-40s %s\n", status, result.Name, result.Duration.Round(time.Millisecond))

		if !result.Passed() {
			fmt.Fprintf(out, "      %v\n", result.Err)
		}
	}

	return utilerrors.NewAggregate([]error{
		report.Err(),
		session.Close(ctx, report.State.Orphans()...),
	})
}
