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

package errors_test

import (
	"errors"
	"testing"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

func TestWrap(t *testing.T) {
	if skladerrors.Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := errors.New("boom")
	wrapped := skladerrors.Wrap(base, "loading config")
	if wrapped.Error() != "loading config: boom" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !skladerrors.Is(wrapped, base) {
		t.Error("wrapped error should match base")
	}
}

func TestWrapf(t *testing.T) {
	if skladerrors.Wrapf(nil, "reading %s", "x") != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	wrapped := skladerrors.Wrapf(errors.New("denied"), "reading %s", "config.yaml")
	if wrapped.Error() != "reading config.yaml: denied" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestKindOf(t *testing.T) {
	err := skladerrors.Wrap(&skladerrors.ValidationError{Kind: skladerrors.KindWrongAttribute}, "read")
	if got := skladerrors.KindOf(err); got != skladerrors.KindWrongAttribute {
		t.Errorf("KindOf() = %q, want %q", got, skladerrors.KindWrongAttribute)
	}
	if got := skladerrors.KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestStatusCode(t *testing.T) {
	err := skladerrors.Wrap(&skladerrors.APIError{StatusCode: 404}, "get")
	if got := skladerrors.StatusCode(err); got != 404 {
		t.Errorf("StatusCode() = %d, want 404", got)
	}
	if got := skladerrors.StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode(plain) = %d, want 0", got)
	}
}

func TestClassify_Unknown(t *testing.T) {
	if got := skladerrors.Classify(nil); got != "" {
		t.Errorf("Classify(nil) = %q", got)
	}
	if got := skladerrors.Classify(errors.New("plain")); got != "unknown" {
		t.Errorf("Classify(plain) = %q", got)
	}
}
