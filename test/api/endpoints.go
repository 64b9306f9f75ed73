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
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) Authenticate() string {
	return "/api/User/Authentication"
}

// Story endpoints.
func (e *Endpoints) CreateStory() string {
	return "/api/Story/Create"
}

func (e *Endpoints) EditStory(storyID string) string {
	return fmt.Sprintf("/api/Story/Edit/%s", url.PathEscape(storyID))
}

func (e *Endpoints) ListStories() string {
	return "/api/Story/All"
}

func (e *Endpoints) DeleteStory(storyID string) string {
	return fmt.Sprintf("/api/Story/Delete/%s", url.PathEscape(storyID))
}
