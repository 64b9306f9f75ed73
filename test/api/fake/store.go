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

package fake

import (
	"slices"
	"sync"

	"github.com/storyspoiler/storyspoiler-tests/test/api"
)

// store holds stories in creation order.
type store struct {
	lock    sync.Mutex
	order   []string
	stories map[string]api.Story
}

func newStore() *store {
	return &store{
		stories: map[string]api.Story{},
	}
}

func (s *store) create(id string, story api.StoryDTO) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.order = append(s.order, id)
	s.stories[id] = api.Story{
		ID:          id,
		Title:       story.Title,
		Description: story.Description,
		URL:         story.URL,
	}
}

func (s *store) update(id string, story api.StoryDTO) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.stories[id]; !ok {
		return false
	}

	s.stories[id] = api.Story{
		ID:          id,
		Title:       story.Title,
		Description: story.Description,
		URL:         story.URL,
	}

	return true
}

func (s *store) delete(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.stories[id]; !ok {
		return false
	}

	delete(s.stories, id)
	s.order = slices.DeleteFunc(s.order, func(other string) bool {
		return other == id
	})

	return true
}

// list always returns a non-nil slice so an empty store encodes as [].
func (s *store) list() []api.Story {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]api.Story, 0, len(s.order))

	for _, id := range s.order {
		out = append(out, s.stories[id])
	}

	return out
}

func (s *store) len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.stories)
}
