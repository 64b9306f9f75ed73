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

// Package fake implements an in-memory Story Spoiler service. It answers
// with the same statuses and messages as the real service so the suite can
// be verified without network access.
package fake

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/storyspoiler/storyspoiler-tests/test/api"
	"github.com/storyspoiler/storyspoiler-tests/test/api/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// storyRequest is the create and edit body as the service validates it.
type storyRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	URL         *string `json:"url"`
}

// problem mirrors the validation error body of the real service.
type problem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors,omitempty"`
}

type Server struct {
	router   chi.Router
	validate *validator.Validate
	schema   *openapi.Validator

	// omitToken makes login succeed without an access token.
	omitToken bool

	lock   sync.Mutex
	users  map[string]string
	tokens map[string]string
	store  *store
}

// Option configures a Server.
type Option func(*Server)

// WithUser registers credentials that may log in.
func WithUser(username, password string) Option {
	return func(s *Server) {
		s.users[username] = password
	}
}

// WithStory seeds the store with an existing story.
func WithStory(story api.StoryDTO) Option {
	return func(s *Server) {
		s.store.create(uuid.NewString(), story)
	}
}

// WithSchemaValidation rejects requests that do not match the API description.
func WithSchemaValidation(v *openapi.Validator) Option {
	return func(s *Server) {
		s.schema = v
	}
}

// WithoutAccessToken makes login answer 200 OK with no accessToken field.
func WithoutAccessToken() Option {
	return func(s *Server) {
		s.omitToken = true
	}
}

// New returns a fake service with the given options applied.
func New(options ...Option) *Server {
	s := &Server{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		users:    map[string]string{},
		tokens:   map[string]string{},
		store:    newStore(),
	}

	for _, o := range options {
		o(s)
	}

	router := chi.NewRouter()

	if s.schema != nil {
		router.Use(s.validateSchema)
	}

	router.Post("/api/User/Authentication", s.authenticate)

	router.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/api/Story/Create", s.createStory)
		r.Put("/api/Story/Edit/{storyId}", s.editStory)
		r.Get("/api/Story/All", s.listStories)
		r.Delete("/api/Story/Delete/{storyId}", s.deleteStory)
	})

	s.router = router

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Len returns the number of stories held.
func (s *Server) Len() int {
	return s.store.len()
}

func writeJSON(w http.ResponseWriter, r *http.Request, contentType string, status int, body any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.FromContext(r.Context()).Error(err, "failed to write response")
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, "application/json; charset=utf-8", status, api.APIResponse{Msg: message})
}

func writeProblem(w http.ResponseWriter, r *http.Request, errs map[string][]string) {
	writeJSON(w, r, "application/problem+json; charset=utf-8", http.StatusBadRequest, problem{
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: errs,
	})
}

func (s *Server) validateSchema(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.schema.ValidateRequest(r); err != nil {
			writeProblem(w, r, map[string][]string{"request": {err.Error()}})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		s.lock.Lock()
		_, ok = s.tokens[token]
		s.lock.Unlock()

		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var credentials api.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeProblem(w, r, map[string][]string{"body": {err.Error()}})
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	password, ok := s.users[credentials.Username]
	if !ok || password != credentials.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	response := api.AuthResponse{
		Username: credentials.Username,
		Password: credentials.Password,
	}

	if !s.omitToken {
		token := uuid.NewString()
		s.tokens[token] = credentials.Username
		response.AccessToken = token
	}

	writeJSON(w, r, "application/json; charset=utf-8", http.StatusOK, response)
}

// decodeStory reads and validates a story body, writing a 400 on failure.
func (s *Server) decodeStory(w http.ResponseWriter, r *http.Request) (api.StoryDTO, bool) {
	var request storyRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeProblem(w, r, map[string][]string{"body": {err.Error()}})
		return api.StoryDTO{}, false
	}

	if err := s.validate.Struct(request); err != nil {
		errs := map[string][]string{}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				errs[fieldErr.Field()] = append(errs[fieldErr.Field()], "The "+fieldErr.Field()+" field is required.")
			}
		} else {
			errs["body"] = []string{err.Error()}
		}

		writeProblem(w, r, errs)

		return api.StoryDTO{}, false
	}

	return api.StoryDTO{
		Title:       request.Title,
		Description: request.Description,
		URL:         request.URL,
	}, true
}

// storyID binds the storyId path parameter, writing a 400 on failure.
func storyID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string

	err := runtime.BindStyledParameterWithOptions("simple", "storyId", chi.URLParam(r, "storyId"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeProblem(w, r, map[string][]string{"storyId": {err.Error()}})
		return "", false
	}

	return id, true
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	story, ok := s.decodeStory(w, r)
	if !ok {
		return
	}

	id := uuid.NewString()
	s.store.create(id, story)

	writeJSON(w, r, "application/json; charset=utf-8", http.StatusCreated, api.APIResponse{
		Msg:     api.MessageCreated,
		StoryID: id,
	})
}

func (s *Server) editStory(w http.ResponseWriter, r *http.Request) {
	id, ok := storyID(w, r)
	if !ok {
		return
	}

	story, ok := s.decodeStory(w, r)
	if !ok {
		return
	}

	if !s.store.update(id, story) {
		writeMessage(w, r, http.StatusNotFound, api.MessageNoSpoilers)
		return
	}

	writeMessage(w, r, http.StatusOK, api.MessageEdited)
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, "application/json; charset=utf-8", http.StatusOK, s.store.list())
}

func (s *Server) deleteStory(w http.ResponseWriter, r *http.Request) {
	id, ok := storyID(w, r)
	if !ok {
		return
	}

	if !s.store.delete(id) {
		writeMessage(w, r, http.StatusBadRequest, api.MessageUnableToDelete)
		return
	}

	writeMessage(w, r, http.StatusOK, api.MessageDeleted)
}
