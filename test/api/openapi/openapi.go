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

// Package openapi embeds the description of the Story Spoiler API and
// validates requests and responses against it.
package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed storyspoiler.yaml
var document []byte

// ErrUnknownRoute is returned when a request matches no described operation.
var ErrUnknownRoute = errors.New("no matching operation in the API description")

// Load parses and validates the embedded API description.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("loading API description: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating API description: %w", err)
	}

	return doc, nil
}

// Validator checks HTTP traffic against the API description.
type Validator struct {
	router routers.Router
}

// NewValidator loads the API description and builds a router over it.
// The description declares no servers so any host matches.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building API router: %w", err)
	}

	return &Validator{
		router: router,
	}, nil
}

func (v *Validator) requestInput(r *http.Request) (*openapi3filter.RequestValidationInput, error) {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnknownRoute, r.Method, r.URL.Path, err)
	}

	return &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			// Bearer tokens are checked by the service, not by the schema.
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}, nil
}

// ValidateRequest checks the parameters and body of a request. The body is
// restored so handlers can read it again.
func (v *Validator) ValidateRequest(r *http.Request) error {
	input, err := v.requestInput(r)
	if err != nil {
		return err
	}

	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return fmt.Errorf("validating %s %s request: %w", r.Method, r.URL.Path, err)
	}

	return nil
}

// ValidateResponse checks that the status is described for the route of r
// and that the body matches its schema.
func (v *Validator) ValidateResponse(r *http.Request, status int, header http.Header, body []byte) error {
	requestInput, err := v.requestInput(r)
	if err != nil {
		return err
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: requestInput,
		Status:                 status,
		Header:                 header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(r.Context(), input); err != nil {
		return fmt.Errorf("validating %s %s response %d: %w", r.Method, r.URL.Path, status, err)
	}

	return nil
}
