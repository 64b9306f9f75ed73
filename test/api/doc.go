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

// Package api provides black-box test utilities for the Story Spoiler API.
//
// # Client
//
// APIClient is a small hand-written HTTP client for the five endpoints the
// suite exercises: authentication, and create, edit, list and delete of
// story spoilers. Story operations never turn an HTTP status into an error.
// They return a Response carrying the status code, the raw body and the
// trace ID of the request, so that callers can assert on exactly what the
// service said. Only transport failures are returned as errors.
//
// Every request carries a freshly generated W3C traceparent header, and the
// trace ID is logged alongside failures so a request can be found in the
// service logs.
//
// # Session
//
// NewSession authenticates once and returns a Session whose client attaches
// the bearer token to every subsequent request. The ordered lifecycle that
// runs on top of a session lives in the scenario package.
//
// # Configuration
//
// All settings come from the environment, optionally seeded from a .env
// file. See LoadTestConfig for the variables and their defaults.
package api
