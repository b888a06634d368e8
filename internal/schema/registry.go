package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcncl/jsonobj/internal/errors"
)

// Registry holds records by name. Lookups are case-insensitive.
type Registry struct {
	records map[string]Record
}

// NewRegistry creates a registry holding the built-in records plus records,
// which replace built-ins of the same name
func NewRegistry(records ...Record) (*Registry, error) {
	r := &Registry{records: make(map[string]Record)}
	if err := r.Register(BundleRecord); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := r.Register(rec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates rec and adds it to the registry
func (r *Registry) Register(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	r.records[strings.ToLower(rec.Name)] = rec
	return nil
}

// Lookup returns the record called name
func (r *Registry) Lookup(name string) (Record, error) {
	rec, ok := r.records[strings.ToLower(name)]
	if !ok {
		return Record{}, errors.NewSchemaError(fmt.Sprintf("no record named '%s'", name), errors.ErrUnknownRecord)
	}
	return rec, nil
}

// Names returns the registered record names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		names = append(names, rec.Name)
	}
	sort.Strings(names)
	return names
}
