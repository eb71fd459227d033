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
	"fmt"
	"sort"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// Resolver queries backends in priority order.
type Resolver struct {
	backends []Backend
}

// NewResolver creates a resolver over the available backends, sorted by
// priority (highest first).
func NewResolver(backends ...Backend) *Resolver {
	available := make([]Backend, 0, len(backends))
	for _, b := range backends {
		if b != nil && b.Available() {
			available = append(available, b)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Priority() > available[j].Priority()
	})

	return &Resolver{backends: available}
}

// Password returns the first password found for login.
func (r *Resolver) Password(ctx context.Context, login string) (string, error) {
	if len(r.backends) == 0 {
		return "", fmt.Errorf("%w: no available backends", ErrBackendUnavailable)
	}

	var lastErr error
	for _, backend := range r.backends {
		value, err := backend.Get(ctx, login)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", skladerrors.Wrapf(lastErr, "failed to get password for %q", login)
	}
	return "", fmt.Errorf("%w: no password stored for %q", ErrSecretNotFound, login)
}

// Store saves a password in the first writable backend and returns its name.
func (r *Resolver) Store(ctx context.Context, login, password string) (string, error) {
	for _, backend := range r.backends {
		err := backend.Set(ctx, login, password)
		if errors.Is(err, ErrReadOnlyBackend) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to store password in %s: %w", backend.Name(), err)
		}
		return backend.Name(), nil
	}
	return "", fmt.Errorf("%w: no writable backend available", ErrBackendUnavailable)
}

// Forget removes the password from every writable backend. It succeeds if
// at least one backend held it.
func (r *Resolver) Forget(ctx context.Context, login string) error {
	removed := false
	for _, backend := range r.backends {
		err := backend.Delete(ctx, login)
		switch {
		case err == nil:
			removed = true
		case errors.Is(err, ErrReadOnlyBackend), errors.Is(err, ErrSecretNotFound):
		default:
			return fmt.Errorf("failed to remove password from %s: %w", backend.Name(), err)
		}
	}
	if !removed {
		return fmt.Errorf("%w: no password stored for %q", ErrSecretNotFound, login)
	}
	return nil
}
