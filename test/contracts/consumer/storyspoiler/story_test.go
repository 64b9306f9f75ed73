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

package storyspoiler_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive
	"github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/pact-foundation/pact-go/v2/models"

	"github.com/storyspoiler/storyspoiler-tests/test/api"
)

var testingT *testing.T //nolint:gochecknoglobals

func TestContracts(t *testing.T) { //nolint:paralleltest
	testingT = t

	RegisterFailHandler(Fail)
	RunSpecs(t, "Story Spoiler Consumer Contract Suite")
}

const (
	username    = "VaseM"
	password    = "12345p"
	accessToken = "eyJhbGciOiJIUzI1NiJ9.e30.c2lnbmF0dXJl"
	missingID   = "101521"
)

// createStoryClient creates a client for the mock server that already carries a token.
func createStoryClient(config consumer.MockServerConfig, token string) (*api.APIClient, error) {
	client, err := api.NewAPIClientWithConfig(&api.TestConfig{
		BaseURL:        fmt.Sprintf("http://%s", net.JoinHostPort(config.Host, fmt.Sprintf("%d", config.Port))),
		RequestTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	client.SetAuthToken(token)

	return client, nil
}

var _ = Describe("Story Spoiler Service Contract", func() {
	var (
		pact *consumer.V4HTTPMockProvider
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		pact, err = consumer.NewV4Pact(consumer.MockHTTPProviderConfig{
			Consumer: "storyspoiler-tests",
			Provider: "storyspoiler-api",
			PactDir:  "../pacts",
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("Authentication", func() {
		Context("when logging in with valid credentials", func() {
			It("returns an access token", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "user exists",
						Parameters: map[string]interface{}{
							"username": username,
						},
					}).
					UponReceiving("a request to authenticate").
					WithRequest("POST", "/api/User/Authentication", func(b *consumer.V4RequestBuilder) {
						b.JSONBody(map[string]interface{}{
							"username": matchers.String(username),
							"password": matchers.String(password),
						})
					}).
					WillRespondWith(200, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(map[string]interface{}{
							"username":    matchers.String(username),
							"password":    matchers.String(password),
							"accessToken": matchers.String(accessToken),
						})
					})

				test := func(config consumer.MockServerConfig) error {
					client, err := createStoryClient(config, "")
					if err != nil {
						return fmt.Errorf("creating story client: %w", err)
					}

					token, err := client.Authenticate(ctx, username, password)
					if err != nil {
						return fmt.Errorf("authenticating: %w", err)
					}

					Expect(token).To(Equal(accessToken))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("Stories", func() {
		Context("when creating a story with the required fields", func() {
			It("returns the new story identifier", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "user is authenticated",
						Parameters: map[string]interface{}{
							"username": username,
						},
					}).
					UponReceiving("a request to create a story").
					WithRequest("POST", "/api/Story/Create", func(b *consumer.V4RequestBuilder) {
						b.JSONBody(map[string]interface{}{
							"title":       matchers.String("Test"),
							"description": matchers.String("Test"),
							"url":         matchers.String(""),
						})
					}).
					WillRespondWith(201, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(map[string]interface{}{
							"msg":     matchers.String(api.MessageCreated),
							"storyId": matchers.UUID(),
						})
					})

				test := func(config consumer.MockServerConfig) error {
					client, err := createStoryClient(config, accessToken)
					if err != nil {
						return fmt.Errorf("creating story client: %w", err)
					}

					resp, err := client.CreateStory(ctx, api.NewStoryPayload().Build())
					if err != nil {
						return err
					}

					Expect(resp.StatusCode).To(Equal(http.StatusCreated))
					Expect(resp.Contains(api.MessageCreated)).To(BeTrue())

					var result api.APIResponse
					Expect(resp.DecodeJSON(&result)).To(Succeed())
					Expect(result.StoryID).NotTo(BeEmpty())

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})

		Context("when editing a story that does not exist", func() {
			It("reports that there are no spoilers", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "story does not exist",
						Parameters: map[string]interface{}{
							"storyId": missingID,
						},
					}).
					UponReceiving("a request to edit a missing story").
					WithRequest("PUT", "/api/Story/Edit/"+missingID, func(b *consumer.V4RequestBuilder) {
						b.JSONBody(map[string]interface{}{
							"title":       matchers.String("New Title"),
							"description": matchers.String("New description"),
							"url":         matchers.String(""),
						})
					}).
					WillRespondWith(404, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(map[string]interface{}{
							"msg": matchers.String(api.MessageNoSpoilers),
						})
					})

				test := func(config consumer.MockServerConfig) error {
					client, err := createStoryClient(config, accessToken)
					if err != nil {
						return fmt.Errorf("creating story client: %w", err)
					}

					resp, err := client.EditStory(ctx, missingID, api.NewStoryPayload().
						WithTitle("New Title").
						WithDescription("New description").
						Build())
					if err != nil {
						return err
					}

					Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
					Expect(resp.Contains(api.MessageNoSpoilers)).To(BeTrue())

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})

		Context("when deleting a story that does not exist", func() {
			It("refuses to delete it", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "story does not exist",
						Parameters: map[string]interface{}{
							"storyId": missingID,
						},
					}).
					UponReceiving("a request to delete a missing story").
					WithRequest("DELETE", "/api/Story/Delete/"+missingID).
					WillRespondWith(400, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(map[string]interface{}{
							"msg": matchers.String(api.MessageUnableToDelete),
						})
					})

				test := func(config consumer.MockServerConfig) error {
					client, err := createStoryClient(config, accessToken)
					if err != nil {
						return fmt.Errorf("creating story client: %w", err)
					}

					resp, err := client.DeleteStory(ctx, missingID)
					if err != nil {
						return err
					}

					Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
					Expect(resp.Contains(api.MessageUnableToDelete)).To(BeTrue())

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})
})
