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

// Package scenario runs an ordered pipeline of checks against the Story
// Spoiler API. Steps share a State value that carries the identifier of the
// story under test from one step to the next.
package scenario

//go:generate mockgen -source=scenario.go -destination=mock/interfaces.go -package=mock

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spjmurray/go-util/pkg/set"

	"github.com/storyspoiler/storyspoiler-tests/test/api"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Client is the part of the API client a scenario drives.
type Client interface {
	CreateStory(ctx context.Context, story api.StoryDTO) (*api.Response, error)
	EditStory(ctx context.Context, storyID string, story api.StoryDTO) (*api.Response, error)
	ListStories(ctx context.Context) (*api.Response, error)
	DeleteStory(ctx context.Context, storyID string) (*api.Response, error)
}

// State is threaded through every step of a run.
type State struct {
	// StoryID is the story created by the run, empty until create succeeds.
	StoryID string

	created []string
	deleted []string
}

func (s *State) recordCreated(id string) {
	s.StoryID = id
	s.created = append(s.created, id)
}

func (s *State) recordDeleted(id string) {
	s.deleted = append(s.deleted, id)
}

// Deleted reports whether the run deleted the given story.
func (s *State) Deleted(id string) bool {
	return slices.Contains(s.deleted, id)
}

// Orphans returns the stories the run created but did not delete, sorted.
func (s *State) Orphans() []string {
	remaining := set.New[string](s.created...).Difference(set.New[string](s.deleted...))

	var orphans []string

	for id := range remaining.All() {
		orphans = append(orphans, id)
	}

	slices.Sort(orphans)

	return orphans
}

// Step is a single named check.
type Step struct {
	Name string
	Run  func(ctx context.Context, client Client, state *State) error
}

// Result is the outcome of one step.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the step succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report collects the results of a run in execution order.
type Report struct {
	Results []Result
	State   *State
}

// Passed reports whether every step succeeded.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the results of failed steps.
func (r *Report) Failed() []Result {
	var failed []Result

	for _, result := range r.Results {
		if !result.Passed() {
			failed = append(failed, result)
		}
	}

	return failed
}

// Result looks up the result of a named step.
func (r *Report) Result(name string) (Result, bool) {
	for _, result := range r.Results {
		if result.Name == name {
			return result, true
		}
	}

	return Result{}, false
}

// Err aggregates every step failure, or returns nil.
func (r *Report) Err() error {
	var errs []error

	for _, result := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", result.Name, result.Err))
	}

	return utilerrors.NewAggregate(errs)
}

// Run executes the steps in order with a fresh state.
func Run(ctx context.Context, client Client, steps []Step) *Report {
	return RunWithState(ctx, client, &State{}, steps)
}

// RunWithState executes the steps in order. A failed step never stops the
// run: every step executes and reports on its own, and nothing is retried
// or rolled back.
func RunWithState(ctx context.Context, client Client, state *State, steps []Step) *Report {
	log := log.FromContext(ctx)

	report := &Report{
		Results: make([]Result, 0, len(steps)),
		State:   state,
	}

	for _, step := range steps {
		start := time.Now()
		err := step.Run(ctx, client, state)
		duration := time.Since(start)

		if err != nil {
			log.Error(err, "step failed", "step", step.Name, "duration", duration)
		} else {
			log.Info("step passed", "step", step.Name, "duration", duration)
		}

		report.Results = append(report.Results, Result{
			Name:     step.Name,
			Err:      err,
			Duration: duration,
		})
	}

	return report
}
