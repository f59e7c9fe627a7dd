// Package document defines the document-store domain: records, filters,
// metadata, and the store abstraction the CRUD services are built on.
package document

import (
	"fmt"
	"sort"
	"strings"
)

// IdentityField is the store-internal identity key. The Store strips it from
// every record it returns and assigns it on insert; application code never
// sees or supplies it.
const IdentityField = "_id"

// Record is a schemaless document belonging to one logical collection.
// Records are identified by an entity-specific key (e.g. "scholarship_id"),
// never by the store's internal identity.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Without returns a copy of the record with the given keys removed.
func (r Record) Without(keys ...string) Record {
	cp := r.Clone()
	for _, k := range keys {
		delete(cp, k)
	}
	return cp
}

// Render formats the record as deterministic "key: value" lines sorted by
// key, excluding the given keys. This is the text blob handed to the vector
// index for searchable entities.
func (r Record) Render(exclude ...string) string {
	skip := make(map[string]struct{}, len(exclude)+1)
	skip[IdentityField] = struct{}{}
	for _, k := range exclude {
		skip[k] = struct{}{}
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		if _, ok := skip[k]; ok {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, r[k])
	}
	return b.String()
}

// Metadata is the subset of a record's fields attached to its vector
// entries and join entry: identifying keys plus a denormalized reference.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata.
func (m Metadata) Clone() Metadata {
	cp := make(Metadata, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Filter is an open field-value map that returned documents must satisfy.
// Required identifying keys are validated at the API boundary, not here.
type Filter map[string]any

// Clone returns a shallow copy of the filter.
func (f Filter) Clone() Filter {
	cp := make(Filter, len(f))
	for k, v := range f {
		cp[k] = v
	}
	return cp
}

// Matches reports whether the record satisfies every field-value pair in
// the filter. Values are compared by their formatted representation so that
// numeric types decoded differently (int vs int64 vs float64) still match,
// mirroring the loose equality of the document store's native filters.
func (f Filter) Matches(r Record) bool {
	for k, want := range f {
		got, ok := r[k]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}
