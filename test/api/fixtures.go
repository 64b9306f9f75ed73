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

package api

import (
	"context"
	"fmt"
	"net/http"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// StoryPayloadBuilder builds story payloads for testing.
type StoryPayloadBuilder struct {
	payload StoryDTO
}

// NewStoryPayload creates a story payload with the minimal valid contents.
func NewStoryPayload() *StoryPayloadBuilder {
	return &StoryPayloadBuilder{
		payload: StoryDTO{
			Title:       "Test",
			Description: "Test",
			URL:         ptr.To(""),
		},
	}
}

// WithTitle sets the story title.
func (b *StoryPayloadBuilder) WithTitle(title string) *StoryPayloadBuilder {
	b.payload.Title = title
	return b
}

// WithDescription sets the story description.
func (b *StoryPayloadBuilder) WithDescription(description string) *StoryPayloadBuilder {
	b.payload.Description = description
	return b
}

// WithURL sets the story URL.
func (b *StoryPayloadBuilder) WithURL(url string) *StoryPayloadBuilder {
	b.payload.URL = ptr.To(url)
	return b
}

// WithoutURL sends the URL as null.
func (b *StoryPayloadBuilder) WithoutURL() *StoryPayloadBuilder {
	b.payload.URL = nil
	return b
}

// Build returns the completed story payload.
func (b *StoryPayloadBuilder) Build() StoryDTO {
	return b.payload
}

// Session is the one-time fixture around a run: a client that already
// carries the bearer token of the configured user.
type Session struct {
	Client *APIClient
	Config *TestConfig
}

// NewSession authenticates once with a dedicated login client and returns a
// session whose client attaches the token to every request.
func NewSession(ctx context.Context, config *TestConfig) (*Session, error) {
	log := log.FromContext(ctx)

	loginClient, err := NewAPIClientWithConfig(config)
	if err != nil {
		return nil, err
	}

	defer loginClient.Close()

	token, err := loginClient.Authenticate(ctx, config.Username, config.Password)
	if err != nil {
		return nil, err
	}

	client, err := NewAPIClientWithConfig(config)
	if err != nil {
		return nil, err
	}

	client.SetAuthToken(token)

	log.Info("authenticated", "baseURL", config.BaseURL, "user", config.Username)

	return &Session{
		Client: client,
		Config: config,
	}, nil
}

// teardownContext detaches from the caller's deadline so cleanup still runs
// after the run has used up its own timeout.
func (s *Session) teardownContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)

	if s.Config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.Config.RequestTimeout)
}

// Close tears the session down. When orphan cleanup is enabled any story
// identifiers passed in are deleted first, each with its own request
// timeout; failures are logged and returned but never stop the remaining
// deletions.
func (s *Session) Close(ctx context.Context, orphans ...string) error {
	log := log.FromContext(ctx)

	defer s.Client.Close()

	if !s.Config.CleanupOrphans {
		if len(orphans) > 0 {
			log.Info("leaving stories behind, cleanup is disabled", "ids", orphans)
		}

		return nil
	}

	var errs []error

	for _, id := range orphans {
		log.Info("cleaning up story", "id", id)

		deleteCtx, cancel := s.teardownContext(ctx)
		resp, err := s.Client.DeleteStory(deleteCtx, id)

		cancel()

		if err != nil {
			log.Error(err, "failed to delete story", "id", id)
			errs = append(errs, err)

			continue
		}

		if resp.StatusCode != http.StatusOK {
			log.Info("failed to delete story", "id", id, "status", resp.StatusCode, "traceID", resp.TraceID)
			errs = append(errs, fmt.Errorf("%w: deleting story %s: got %d (trace ID: %s)", ErrUnexpectedStatus, id, resp.StatusCode, resp.TraceID))
		}
	}

	return utilerrors.NewAggregate(errs)
}
