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

package moysklad

import (
	"fmt"
	"sort"
	"strings"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/transport"
)

// MaxSegments is the deepest read path the planner accepts.
const MaxSegments = 4

// BulkAttributes may stand in place of an id as the second read segment.
var BulkAttributes = []string{"metadata", "all", "bystore", "byoperation"}

// SubResources may appear as the third read segment.
var SubResources = []string{"accounts", "contactpersons", "packs", "cashiers", "positions"}

// QueryKeys are the parameters accepted on one- and two-segment reads.
var QueryKeys = []string{
	"updatedFrom",
	"updatedTo",
	"updatedBy",
	"state.name",
	"state.id",
	"organization.id",
	"search",
	"isDeleted",
	"limit",
	"offset",
	FiltersKey,
}

// Plan is a validated request: method, path below the API root and the
// encoded query string.
type Plan struct {
	Method string
	Path   string
	Query  string
}

// URL joins the plan onto base, which is expected to end with '/'.
func (p *Plan) URL(base string) string {
	u := base + p.Path
	if p.Query != "" {
		u += "?" + p.Query
	}
	return u
}

// Planner turns entity types, identifiers and parameters into Plans.
// It performs no I/O.
type Planner struct {
	registry *Registry
}

// NewPlanner returns a planner resolving entity types through registry.
// A nil registry uses DefaultRegistry.
func NewPlanner(registry *Registry) *Planner {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Planner{registry: registry}
}

// Registry returns the registry used for entity type resolution.
func (p *Planner) Registry() *Registry {
	return p.registry
}

// PlanRead validates a GET path of one to four segments:
//
//	[type]                      collection, params checked against QueryKeys
//	[type, id|bulk]             entity or bulk attribute, params checked
//	[type, id, sub]             sub-resource collection
//	[type, id, sub, subId]      sub-resource item
//
// Params on three- and four-segment reads are forwarded as given.
func (p *Planner) PlanRead(segments []string, params Params) (*Plan, error) {
	n := len(segments)
	if n == 0 || n > MaxSegments {
		return nil, &skladerrors.ValidationError{
			Kind:    skladerrors.KindSegmentCount,
			Field:   "path",
			Value:   strings.Join(segments, "/"),
			Message: fmt.Sprintf("a read takes 1 to %d path segments, got %d", MaxSegments, n),
		}
	}

	category, err := p.registry.Resolve(segments[0])
	if err != nil {
		return nil, err
	}

	switch {
	case n <= 2:
		if err := checkQueryKeys(params); err != nil {
			return nil, err
		}
		if n == 2 && !contains(BulkAttributes, segments[1]) {
			if err := ValidateUUID(segments[1]); err != nil {
				return nil, err
			}
		}
	default:
		if err := ValidateUUID(segments[1]); err != nil {
			return nil, err
		}
		if !contains(SubResources, segments[2]) {
			return nil, &skladerrors.ValidationError{
				Kind:    skladerrors.KindUnknownSubResource,
				Field:   "sub_resource",
				Value:   segments[2],
				Message: fmt.Sprintf("wrong attribute: `%s`", segments[2]),
			}
		}
		if n == 4 {
			if err := ValidateUUID(segments[3]); err != nil {
				return nil, err
			}
		}
	}

	query, err := EncodeQuery(params)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Method: transport.MethodGet,
		Path:   buildPath(category, segments...),
		Query:  query,
	}, nil
}

// PlanCreate plans a POST to the collection, or to a single entity when id
// is not empty.
func (p *Planner) PlanCreate(entityType, id string) (*Plan, error) {
	category, err := p.registry.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return &Plan{Method: transport.MethodPost, Path: buildPath(category, entityType)}, nil
	}
	if err := ValidateUUID(id); err != nil {
		return nil, err
	}
	return &Plan{Method: transport.MethodPost, Path: buildPath(category, entityType, id)}, nil
}

// PlanUpdate plans a PUT to a single entity.
func (p *Planner) PlanUpdate(entityType, id string) (*Plan, error) {
	return p.planItem(transport.MethodPut, entityType, id)
}

// PlanDelete plans a DELETE of a single entity.
func (p *Planner) PlanDelete(entityType, id string) (*Plan, error) {
	return p.planItem(transport.MethodDelete, entityType, id)
}

func (p *Planner) planItem(method, entityType, id string) (*Plan, error) {
	category, err := p.registry.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	if err := ValidateUUID(id); err != nil {
		return nil, err
	}
	return &Plan{Method: method, Path: buildPath(category, entityType, id)}, nil
}

// checkQueryKeys reports every key outside QueryKeys at once, sorted.
func checkQueryKeys(params Params) error {
	var unknown []string
	for key := range params {
		if !contains(QueryKeys, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &skladerrors.ValidationError{
		Kind:    skladerrors.KindDisallowedKey,
		Field:   "query",
		Value:   strings.Join(unknown, ", "),
		Message: fmt.Sprintf("wrong query parameters: %s", strings.Join(unknown, ", ")),
	}
}

func buildPath(category Category, segments ...string) string {
	path := string(category) + "/" + strings.Join(segments, "/")
	return strings.TrimRight(path, "/")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
