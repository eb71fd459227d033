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

// Package testing holds test doubles for exercising the client and the CLI
// without a live MoySklad account.
//
//   - fixture: canned API exchanges loaded from YAML
//   - mock: a scripted transport that serves fixtures and records requests
//   - clitest: runs commands against the mock with an isolated config
package testing
