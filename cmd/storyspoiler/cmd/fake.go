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
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/storyspoiler/storyspoiler-tests/test/api"
	"github.com/storyspoiler/storyspoiler-tests/test/api/fake"
	"github.com/storyspoiler/storyspoiler-tests/test/api/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

//nolint:gochecknoglobals
var (
	listenAddress string

	fakeCmd = &cobra.Command{
		Use:   "fake",
		Short: "Serve an in-memory Story Spoiler API for local runs",
		Long: `fake serves an in-memory implementation of the Story Spoiler API that
accepts the configured credentials and validates requests against the
embedded API description. Point API_BASE_URL at it to run the lifecycle
without touching the real service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := api.LoadTestConfig()
			if err != nil {
				return err
			}

			return serveFake(cmd.Context(), config)
		},
	}
)

func init() {
	fakeCmd.Flags().StringVar(&listenAddress, "listen", "127.0.0.1:8080", "address to listen on")
}

func serveFake(ctx context.Context, config *api.TestConfig) error {
	logger := log.Log.WithName("fake")

	validator, err := openapi.NewValidator(ctx)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              listenAddress,
		Handler:           fake.New(fake.WithUser(config.Username, config.Password), fake.WithSchemaValidation(validator)),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return log.IntoContext(ctx, logger)
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "shutdown failed")
		}
	}()

	logger.Info("serving fake story spoiler api", "address", listenAddress, "user", config.Username)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving fake api: %w", err)
	}

	return nil
}
