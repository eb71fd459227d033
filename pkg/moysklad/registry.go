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

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// Category is the API area an entity type belongs to.
type Category string

const (
	CategoryEntity Category = "entity"
	CategoryReport Category = "report"
	CategoryPOS    Category = "pos"
)

// Registry maps entity type names to their category prefix.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	entries map[string]Category
}

// NewRegistry builds a registry from the given mapping. The map is copied.
func NewRegistry(entries map[string]Category) *Registry {
	r := &Registry{entries: make(map[string]Category, len(entries))}
	for name, category := range entries {
		r.entries[name] = category
	}
	return r
}

// DefaultRegistry returns a registry with the entity types of remap 1.1.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultEntities)
}

// Lookup returns the category for an entity type.
func (r *Registry) Lookup(entityType string) (Category, bool) {
	category, ok := r.entries[entityType]
	return category, ok
}

// Resolve is Lookup that reports a missing entity type as a validation error.
func (r *Registry) Resolve(entityType string) (Category, error) {
	category, ok := r.Lookup(entityType)
	if !ok {
		return "", &skladerrors.ValidationError{
			Kind:    skladerrors.KindUnknownEntity,
			Field:   "entity_type",
			Value:   entityType,
			Message: fmt.Sprintf("unknown entity type: `%s`", entityType),
		}
	}
	return category, nil
}

// Names returns all registered entity types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entity types.
func (r *Registry) Len() int {
	return len(r.entries)
}

var defaultEntities = map[string]Category{
	"counterparty":    CategoryEntity,
	"consignment":     CategoryEntity,
	"currency":        CategoryEntity,
	"productFolder":   CategoryEntity,
	"service":         CategoryEntity,
	"product":         CategoryEntity,
	"contract":        CategoryEntity,
	"variant":         CategoryEntity,
	"project":         CategoryEntity,
	"state":           CategoryEntity,
	"employee":        CategoryEntity,
	"store":           CategoryEntity,
	"organization":    CategoryEntity,
	"retailshift":     CategoryEntity,
	"retailstore":     CategoryEntity,
	"cashier":         CategoryEntity,
	"customerOrder":   CategoryEntity,
	"demand":          CategoryEntity,
	"invoiceout":      CategoryEntity,
	"retaildemand":    CategoryEntity,
	"purchaseOrder":   CategoryEntity,
	"supply":          CategoryEntity,
	"invoicein":       CategoryEntity,
	"paymentin":       CategoryEntity,
	"paymentout":      CategoryEntity,
	"cashin":          CategoryEntity,
	"cashout":         CategoryEntity,
	"companysettings": CategoryEntity,
	"expenseItem":     CategoryEntity,
	"country":         CategoryEntity,
	"uom":             CategoryEntity,
	"customentity":    CategoryEntity,
	"salesreturn":     CategoryEntity,
	"purchasereturn":  CategoryEntity,
	"stock":           CategoryReport,
	"assortment":      CategoryPOS,
	"openshift":       CategoryPOS,
	"closeshift":      CategoryPOS,
}
