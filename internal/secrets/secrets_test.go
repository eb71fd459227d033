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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeychainBackend_Lifecycle(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	backend := NewKeychainBackend()
	require.True(t, backend.Available())
	assert.Equal(t, "keychain", backend.Name())
	assert.Equal(t, KeychainBackendPriority, backend.Priority())

	_, err := backend.Get(ctx, "admin@acme")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	require.NoError(t, backend.Set(ctx, "admin@acme", "first"))
	require.NoError(t, backend.Set(ctx, "admin@acme", "second"))

	got, err := backend.Get(ctx, "admin@acme")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	require.NoError(t, backend.Delete(ctx, "admin@acme"))
	assert.ErrorIs(t, backend.Delete(ctx, "admin@acme"), ErrSecretNotFound)
}

func TestKeychainBackend_Unavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus: connection refused"))
	defer keyring.MockInit()

	backend := NewKeychainBackend()
	assert.False(t, backend.Available())

	_, err := backend.Get(context.Background(), "admin@acme")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestIsKeychainUnavailableError(t *testing.T) {
	assert.False(t, isKeychainUnavailableError(nil))
	assert.True(t, isKeychainUnavailableError(errors.New("The keyring is LOCKED")))
	assert.False(t, isKeychainUnavailableError(errors.New("item is malformed")))
}

func TestStaticBackend(t *testing.T) {
	ctx := context.Background()

	empty := NewStaticBackend("")
	assert.False(t, empty.Available())
	_, err := empty.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	static := NewStaticBackend("hunter2")
	assert.True(t, static.Available())
	got, err := static.Get(ctx, "anyone")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.ErrorIs(t, static.Set(ctx, "a", "b"), ErrReadOnlyBackend)
	assert.ErrorIs(t, static.Delete(ctx, "a"), ErrReadOnlyBackend)
}

func TestResolver_PasswordOrder(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	keychain := NewKeychainBackend()
	require.NoError(t, keychain.Set(ctx, "admin@acme", "from-keychain"))

	got, err := NewResolver(keychain, NewStaticBackend("from-env")).Password(ctx, "admin@acme")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got, "explicit password wins")

	got, err = NewResolver(keychain, NewStaticBackend("")).Password(ctx, "admin@acme")
	require.NoError(t, err)
	assert.Equal(t, "from-keychain", got)

	_, err = NewResolver(keychain).Password(ctx, "nobody@acme")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	_, err = NewResolver().Password(ctx, "admin@acme")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestResolver_StoreAndForget(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	r := NewResolver(NewStaticBackend("from-env"), NewKeychainBackend())

	name, err := r.Store(ctx, "admin@acme", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "keychain", name, "read-only backends are skipped")

	stored, err := keyring.Get(KeychainService, "admin@acme")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", stored)

	require.NoError(t, r.Forget(ctx, "admin@acme"))
	assert.ErrorIs(t, r.Forget(ctx, "admin@acme"), ErrSecretNotFound)

	_, err = NewResolver(NewStaticBackend("x")).Store(ctx, "a", "b")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
