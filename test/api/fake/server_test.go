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

package fake_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storyspoiler/storyspoiler-tests/test/api"
	"github.com/storyspoiler/storyspoiler-tests/test/api/fake"
	"github.com/storyspoiler/storyspoiler-tests/test/api/openapi"
)

func serve(t *testing.T, server http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request

	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, r)

	return w
}

func login(t *testing.T, server http.Handler) string {
	t.Helper()

	w := serve(t, server, http.MethodPost, "/api/User/Authentication", "", `{"username":"VaseM","password":"12345p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var auth api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.AccessToken)
	require.Equal(t, "VaseM", auth.Username)

	return auth.AccessToken
}

func TestAuthenticateUnknownUser(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"))

	w := serve(t, server, http.MethodPost, "/api/User/Authentication", "", `{"username":"VaseM","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateWithoutAccessToken(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"), fake.WithoutAccessToken())

	w := serve(t, server, http.MethodPost, "/api/User/Authentication", "", `{"username":"VaseM","password":"12345p"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "accessToken")
}

func TestRequiresToken(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"))

	for _, token := range []string{"", "forged"} {
		w := serve(t, server, http.MethodGet, "/api/Story/All", token, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, token)
		require.Empty(t, w.Body.String(), token)
	}
}

func TestCreateInvalidStory(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"))
	token := login(t, server)

	w := serve(t, server, http.MethodPost, "/api/Story/Create", token, `{"title":"","description":"","url":null}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
	require.Contains(t, w.Body.String(), "Title")
	require.Contains(t, w.Body.String(), "Description")
	require.Zero(t, server.Len())
}

func TestStoryLifecycle(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"))
	token := login(t, server)

	w := serve(t, server, http.MethodPost, "/api/Story/Create", token, `{"title":"Test","description":"Test","url":""}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created api.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, api.MessageCreated, created.Msg)
	require.NotEmpty(t, created.StoryID)

	w = serve(t, server, http.MethodPut, "/api/Story/Edit/"+created.StoryID, token, `{"title":"New Title","description":"New description","url":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), api.MessageEdited)

	w = serve(t, server, http.MethodGet, "/api/Story/All", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stories []api.Story
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stories))
	require.Len(t, stories, 1)
	require.Equal(t, "New Title", stories[0].Title)

	w = serve(t, server, http.MethodDelete, "/api/Story/Delete/"+created.StoryID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), api.MessageDeleted)

	w = serve(t, server, http.MethodDelete, "/api/Story/Delete/"+created.StoryID, token, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), api.MessageUnableToDelete)

	w = serve(t, server, http.MethodPut, "/api/Story/Edit/"+created.StoryID, token, `{"title":"New Title","description":"New description","url":""}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), api.MessageNoSpoilers)
}

func TestListEmpty(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"))
	token := login(t, server)

	w := serve(t, server, http.MethodGet, "/api/Story/All", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestListPreservesCreationOrder(t *testing.T) {
	t.Parallel()

	server := fake.New(fake.WithUser("VaseM", "12345p"), fake.WithStory(api.NewStoryPayload().WithTitle("First").Build()))
	token := login(t, server)

	w := serve(t, server, http.MethodPost, "/api/Story/Create", token, `{"title":"Second","description":"Test","url":null}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(t, server, http.MethodGet, "/api/Story/All", token, "")

	var stories []api.Story
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stories))
	require.Len(t, stories, 2)
	require.Equal(t, "First", stories[0].Title)
	require.Equal(t, "Second", stories[1].Title)
	require.Nil(t, stories[1].URL)
}

func TestSchemaValidation(t *testing.T) {
	t.Parallel()

	validator, err := openapi.NewValidator(context.Background())
	require.NoError(t, err)

	server := fake.New(fake.WithUser("VaseM", "12345p"), fake.WithSchemaValidation(validator))
	token := login(t, server)

	w := serve(t, server, http.MethodPost, "/api/Story/Create", token, `{"title":"Test"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "request")
	require.Zero(t, server.Len())

	w = serve(t, server, http.MethodGet, "/api/Story/Unknown", token, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
