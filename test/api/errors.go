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
	"errors"
)

var (
	// ErrInvalidConfig is returned when the environment holds an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAuthenticationFailed is returned when login does not answer 200 OK.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMissingToken is returned when login succeeds but the response
	// carries no access token.
	ErrMissingToken = errors.New("authentication response has no access token")

	// ErrUnexpectedStatus is returned when a response status differs from
	// the one the caller required.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)
