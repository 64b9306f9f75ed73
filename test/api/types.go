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

// Messages the service returns in the msg field of a response.
const (
	MessageCreated        = "Successfully created!"
	MessageEdited         = "Successfully edited"
	MessageDeleted        = "Deleted successfully!"
	MessageNoSpoilers     = "No spoilers..."
	MessageUnableToDelete = "Unable to delete this story spoiler!"
)

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the login response body.
type AuthResponse struct {
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// StoryDTO is the create and edit request body. A nil URL is sent as null.
type StoryDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         *string `json:"url"`
}

// APIResponse is the generic message envelope of story operations.
type APIResponse struct {
	Msg     string `json:"msg"`
	StoryID string `json:"storyId,omitempty"`
}

// Story is a single element of the list response.
type Story struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         *string `json:"url"`
}
