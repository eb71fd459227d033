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

// Package moysklad is a client for the MoySklad JSON API (remap 1.1).
//
// The client translates method calls into authenticated HTTP requests. Every
// request is validated before any network I/O: entity types are resolved
// through a Registry, identifiers are checked against the canonical UUID
// format, sub-resources and query keys are checked against fixed whitelists,
// and write bodies are held to a 10 MiB ceiling.
//
// # Usage
//
//	client, err := moysklad.New("admin@company", password)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := client.Read(ctx, []string{"counterparty"}, moysklad.Params{
//	    "limit": 10,
//	    moysklad.FiltersKey: moysklad.Filters{
//	        {Field: "state.name", Operand: moysklad.OpEqual, Value: "Done"},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	rows, err := resp.Get("rows")
//
// # Retries
//
// Transient network failures (host resolution, connect, timeout, dropped
// request, TLS handshake) are retried up to three times per call. A fixed
// 250ms pause precedes every request. Responses with status >= 400 are never
// retried and surface as *errors.APIError.
package moysklad
