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

package scenario

import (
	"errors"
	"fmt"

	"github.com/storyspoiler/storyspoiler-tests/test/api"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

var (
	// ErrUnexpectedStatus is a status code assertion failure.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrMissingPhrase is a response body assertion failure.
	ErrMissingPhrase = errors.New("response body does not contain expected phrase")

	// ErrMissingStoryID means no story identifier is available, either
	// because create did not return one or because it never succeeded.
	ErrMissingStoryID = errors.New("no story identifier")

	// ErrEmptyList means the list response held no stories.
	ErrEmptyList = errors.New("story list is empty")

	// ErrContractViolation means the response does not match the API description.
	ErrContractViolation = errors.New("response violates the API description")
)

func expectStatus(resp *api.Response, want int) error {
	if resp.StatusCode != want {
		return fmt.Errorf("%w: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, want, resp.StatusCode, string(resp.Body), resp.TraceID)
	}

	return nil
}

func expectContains(resp *api.Response, phrase string) error {
	if !resp.Contains(phrase) {
		return fmt.Errorf("%w: %q not in %s (trace ID: %s)", ErrMissingPhrase, phrase, string(resp.Body), resp.TraceID)
	}

	return nil
}

// check asserts the status and every phrase, reporting all failures of a
// single response together.
func check(resp *api.Response, status int, phrases ...string) error {
	errs := []error{
		expectStatus(resp, status),
	}

	for _, phrase := range phrases {
		errs = append(errs, expectContains(resp, phrase))
	}

	if resp.ContractErr != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrContractViolation, resp.ContractErr))
	}

	return utilerrors.NewAggregate(errs)
}
