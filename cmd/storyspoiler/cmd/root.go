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

// Package cmd implements the CLI commands for storyspoiler.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

//nolint:gochecknoglobals
var (
	zapOptions = zap.Options{}

	rootCmd = &cobra.Command{
		Use:   "storyspoiler",
		Short: "Black-box checks for the Story Spoiler API",
		Long: `storyspoiler authenticates against the Story Spoiler API and runs the
ordered story lifecycle: create, edit, list and delete a story, then probe
the failure paths with invalid and missing stories.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))
		},
	}
)

// Execute runs the root command until it completes or a signal arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}

	return nil
}

func init() {
	logFlags := flag.NewFlagSet("logging", flag.ContinueOnError)
	zapOptions.BindFlags(logFlags)

	rootCmd.PersistentFlags().AddGoFlagSet(logFlags)

	rootCmd.AddCommand(runCmd, fakeCmd)
}
