// Package catalog defines the entity catalog: every document collection the
// API serves, which of them are mirrored into the vector index, and how a
// record maps to index metadata and text.
package catalog

import (
	"github.com/unifly-app/unifly/domain/document"
)

// ReferenceField is the metadata key carrying an entity's denormalized
// reference (typically its contact details).
const ReferenceField = "reference"

// Entity describes one logical record type: its API slug, backing
// collection, optional vector-index collection, and identifying fields.
type Entity struct {
	name       string
	collection string
	index      string
	idField    string
	metaFields []string
	refField   string
}

// NewEntity creates an Entity that is not mirrored into the vector index.
func NewEntity(name, collection, idField string) Entity {
	return Entity{name: name, collection: collection, idField: idField}
}

// NewSearchableEntity creates an Entity mirrored into the named vector-index
// collection. metaFields are the identifying fields lifted into the index
// metadata alongside idField; refField, when non-empty, is the record field
// copied into the metadata under ReferenceField.
func NewSearchableEntity(name, collection, index, idField string, metaFields []string, refField string) Entity {
	fields := make([]string, len(metaFields))
	copy(fields, metaFields)
	return Entity{
		name:       name,
		collection: collection,
		index:      index,
		idField:    idField,
		metaFields: fields,
		refField:   refField,
	}
}

// Name returns the entity's API slug (e.g. "scholarships").
func (e Entity) Name() string { return e.name }

// Collection returns the backing document collection name.
func (e Entity) Collection() string { return e.collection }

// Index returns the vector-index collection name, or empty when the entity
// is not searchable.
func (e Entity) Index() string { return e.index }

// Searchable reports whether records of this entity are mirrored into the
// vector index.
func (e Entity) Searchable() bool { return e.index != "" }

// IDField returns the primary identifying field (e.g. "scholarship_id").
func (e Entity) IDField() string { return e.idField }

// Metadata extracts the identifying fields from the record: the id field,
// the additional meta fields, and the reference field (stored under
// ReferenceField). Never the full record.
func (e Entity) Metadata(r document.Record) document.Metadata {
	meta := make(document.Metadata, len(e.metaFields)+2)
	if v, ok := r[e.idField]; ok {
		meta[e.idField] = v
	}
	for _, f := range e.metaFields {
		if v, ok := r[f]; ok {
			meta[f] = v
		}
	}
	if e.refField != "" {
		if v, ok := r[e.refField]; ok {
			meta[ReferenceField] = v
		}
	}
	return meta
}

// Text renders the record's remaining fields (everything outside the
// metadata) as the text blob handed to the vector index.
func (e Entity) Text(r document.Record) string {
	exclude := make([]string, 0, len(e.metaFields)+2)
	exclude = append(exclude, e.idField)
	exclude = append(exclude, e.metaFields...)
	if e.refField != "" {
		exclude = append(exclude, e.refField)
	}
	return r.Render(exclude...)
}

// IDFilter builds the filter keyed on the entity's primary identifying
// field, used to pass record-level filters back to the synchronizer.
func (e Entity) IDFilter(id any) document.Filter {
	return document.Filter{e.idField: id}
}
