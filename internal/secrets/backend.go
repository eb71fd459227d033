// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secrets

import (
	"context"
	"errors"
)

var (
	// ErrSecretNotFound is returned when no password is stored for a login.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrBackendUnavailable is returned when a backend cannot be used in the current environment.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrReadOnlyBackend is returned when attempting to modify a read-only backend.
	ErrReadOnlyBackend = errors.New("backend is read-only")
)

// Backend stores passwords keyed by login.
type Backend interface {
	// Name returns the backend identifier (e.g., "keychain", "config").
	Name() string

	// Get returns the password for login, or ErrSecretNotFound.
	Get(ctx context.Context, login string) (string, error)

	// Set stores a password. Returns ErrReadOnlyBackend if not supported.
	Set(ctx context.Context, login, password string) error

	// Delete removes a password. Returns ErrSecretNotFound if not present.
	Delete(ctx context.Context, login string) error

	// Available returns true if this backend is usable in the current environment.
	Available() bool

	// Priority returns the resolution priority (higher = checked first).
	Priority() int
}

// StaticBackendPriority places explicit passwords ahead of the keychain.
const StaticBackendPriority = 100

// StaticBackend serves a password that was supplied directly, for example
// through MOYSKLAD_PASSWORD. It is read-only.
type StaticBackend struct {
	password string
}

// NewStaticBackend returns a backend answering every login with password.
// An empty password makes the backend unavailable.
func NewStaticBackend(password string) *StaticBackend {
	return &StaticBackend{password: password}
}

// Name returns the backend identifier.
func (s *StaticBackend) Name() string { return "config" }

// Get returns the configured password.
func (s *StaticBackend) Get(ctx context.Context, login string) (string, error) {
	if s.password == "" {
		return "", ErrSecretNotFound
	}
	return s.password, nil
}

// Set returns ErrReadOnlyBackend.
func (s *StaticBackend) Set(ctx context.Context, login, password string) error {
	return ErrReadOnlyBackend
}

// Delete returns ErrReadOnlyBackend.
func (s *StaticBackend) Delete(ctx context.Context, login string) error {
	return ErrReadOnlyBackend
}

// Available reports whether a password was supplied.
func (s *StaticBackend) Available() bool { return s.password != "" }

// Priority returns the backend priority.
func (s *StaticBackend) Priority() int { return StaticBackendPriority }
