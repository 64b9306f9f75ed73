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
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/storyspoiler/storyspoiler-tests/test/api"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Names of the story lifecycle steps, in execution order.
const (
	StepCreateStory        = "create story with required fields"
	StepEditStory          = "edit created story"
	StepListStories        = "list all stories"
	StepDeleteStory        = "delete created story"
	StepCreateInvalidStory = "create story without required fields"
	StepEditMissingStory   = "edit non-existing story"
	StepDeleteMissingStory = "delete non-existing story"
)

// StoryLifecycle returns the seven ordered checks over one story: create,
// edit, list and delete it, then probe the failure paths. Only the first
// four touch the created story; the last three use nonExistentID.
func StoryLifecycle(nonExistentID string) []Step {
	return []Step{
		{Name: StepCreateStory, Run: createStory},
		{Name: StepEditStory, Run: editStory},
		{Name: StepListStories, Run: listStories},
		{Name: StepDeleteStory, Run: deleteStory},
		{Name: StepCreateInvalidStory, Run: createInvalidStory},
		{Name: StepEditMissingStory, Run: editMissingStory(nonExistentID)},
		{Name: StepDeleteMissingStory, Run: deleteMissingStory(nonExistentID)},
	}
}

func editedPayload() api.StoryDTO {
	return api.NewStoryPayload().
		WithTitle("New Title").
		WithDescription("New description").
		Build()
}

// createStory records the returned identifier whenever one is present, even
// if an assertion fails, so that the story can still be cleaned up.
func createStory(ctx context.Context, client Client, state *State) error {
	resp, err := client.CreateStory(ctx, api.NewStoryPayload().Build())
	if err != nil {
		return err
	}

	checkErr := check(resp, http.StatusCreated, api.MessageCreated)

	var result api.APIResponse
	if err := resp.DecodeJSON(&result); err != nil {
		return utilerrors.NewAggregate([]error{checkErr, err})
	}

	if result.StoryID == "" {
		return utilerrors.NewAggregate([]error{checkErr, fmt.Errorf("%w: create response has no storyId (trace ID: %s)", ErrMissingStoryID, resp.TraceID)})
	}

	state.recordCreated(result.StoryID)

	return checkErr
}

func requireStoryID(state *State) (string, error) {
	if state.StoryID == "" {
		return "", fmt.Errorf("%w: create did not produce a story", ErrMissingStoryID)
	}

	return state.StoryID, nil
}

func editStory(ctx context.Context, client Client, state *State) error {
	id, err := requireStoryID(state)
	if err != nil {
		return err
	}

	resp, err := client.EditStory(ctx, id, editedPayload())
	if err != nil {
		return err
	}

	return check(resp, http.StatusOK, api.MessageEdited)
}

func listStories(ctx context.Context, client Client, _ *State) error {
	resp, err := client.ListStories(ctx)
	if err != nil {
		return err
	}

	if err := check(resp, http.StatusOK); err != nil {
		return err
	}

	var stories []json.RawMessage
	if err := resp.DecodeJSON(&stories); err != nil {
		return err
	}

	if len(stories) == 0 {
		return fmt.Errorf("%w (trace ID: %s)", ErrEmptyList, resp.TraceID)
	}

	return nil
}

func deleteStory(ctx context.Context, client Client, state *State) error {
	id, err := requireStoryID(state)
	if err != nil {
		return err
	}

	resp, err := client.DeleteStory(ctx, id)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusOK {
		state.recordDeleted(id)
	}

	return check(resp, http.StatusOK, api.MessageDeleted)
}

func createInvalidStory(ctx context.Context, client Client, _ *State) error {
	payload := api.NewStoryPayload().
		WithTitle("").
		WithDescription("").
		WithoutURL().
		Build()

	resp, err := client.CreateStory(ctx, payload)
	if err != nil {
		return err
	}

	return check(resp, http.StatusBadRequest)
}

func editMissingStory(id string) func(context.Context, Client, *State) error {
	return func(ctx context.Context, client Client, _ *State) error {
		resp, err := client.EditStory(ctx, id, editedPayload())
		if err != nil {
			return err
		}

		return check(resp, http.StatusNotFound, api.MessageNoSpoilers)
	}
}

func deleteMissingStory(id string) func(context.Context, Client, *State) error {
	return func(ctx context.Context, client Client, _ *State) error {
		resp, err := client.DeleteStory(ctx, id)
		if err != nil {
			return err
		}

		return check(resp, http.StatusBadRequest, api.MessageUnableToDelete)
	}
}
