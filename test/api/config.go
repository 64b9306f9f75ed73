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
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public deployment of the Story Spoiler API.
	DefaultBaseURL = "https://d3s5nxhwblsjbi.cloudfront.net"

	// DefaultUsername and DefaultPassword are the static credentials of the
	// test account.
	DefaultUsername = "VaseM"
	DefaultPassword = "12345p"

	// DefaultNonExistentStoryID is an identifier that never refers to a story.
	DefaultNonExistentStoryID = "101521"
)

type TestConfig struct {
	BaseURL            string
	Username           string
	Password           string
	NonExistentStoryID string
	RequestTimeout     time.Duration
	TestTimeout        time.Duration
	SkipIntegration    bool
	DebugLogging       bool
	LogRequests        bool
	LogResponses       bool
	ValidateResponses  bool
	CleanupOrphans     bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a configuration value is present but unusable.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	debugLogging := getBoolWithDefault("DEBUG_LOGGING", false)

	config := &TestConfig{
		BaseURL:            getStringWithDefault("API_BASE_URL", DefaultBaseURL),
		Username:           getStringWithDefault("STORY_USERNAME", DefaultUsername),
		Password:           getStringWithDefault("STORY_PASSWORD", DefaultPassword),
		NonExistentStoryID: getStringWithDefault("STORY_NONEXISTENT_ID", DefaultNonExistentStoryID),
		RequestTimeout:     getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:        getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		SkipIntegration:    getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:       debugLogging,
		LogRequests:        getBoolWithDefault("LOG_REQUESTS", debugLogging),
		LogResponses:       getBoolWithDefault("LOG_RESPONSES", debugLogging),
		ValidateResponses:  getBoolWithDefault("VALIDATE_RESPONSES", false),
		CleanupOrphans:     getBoolWithDefault("CLEANUP_ORPHANS", false),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",          // From the repository root
		"../../.env",    // From test/api
		"../../../.env", // From test/api/suites and test/api/scenario
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// Validate checks the configuration again, for callers that change it
// after LoadTestConfig.
func (c *TestConfig) Validate() error {
	return validateConfig(c)
}

// validateConfig checks that the base URL is absolute and the
// credentials are set.
func validateConfig(config *TestConfig) error {
	var invalid []string

	if u, err := url.Parse(config.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		invalid = append(invalid, "API_BASE_URL")
	}

	required := map[string]string{
		"STORY_USERNAME":       config.Username,
		"STORY_PASSWORD":       config.Password,
		"STORY_NONEXISTENT_ID": config.NonExistentStoryID,
	}

	for envVar, value := range required {
		if strings.TrimSpace(value) == "" {
			invalid = append(invalid, envVar)
		}
	}

	if len(invalid) > 0 {
		slices.Sort(invalid)

		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrInvalidConfig, strings.Join(invalid, ", "))
	}

	return nil
}
