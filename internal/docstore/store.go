// Package docstore defines the document-store capabilities the application
// relies on: CRUD by collection and id, equality queries, partial merges and
// atomic array/timestamp transforms. Backends live in sub-packages.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrInvalidTransform is returned when a transform is used where the backend cannot apply it.
	ErrInvalidTransform = errors.New("docstore: invalid field transform")
)

// Document is a schemaless record addressed by collection and id.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is implemented by every backend. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Where(ctx context.Context, collection, field string, value any) ([]Document, error)
	All(ctx context.Context, collection string) ([]Document, error)
	// Add persists data under a store-assigned id and returns that id.
	// Only plain values and ServerTimestamp are accepted.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Update merges fields into an existing document in a single atomic write.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}

type transformKind int

const (
	transformServerTimestamp transformKind = iota + 1
	transformArrayUnion
	transformArrayRemove
)

// Transform is a field value resolved by the store at write time.
type Transform struct {
	kind   transformKind
	values []any
}

// ServerTimestamp stamps the field with the store's clock.
var ServerTimestamp = Transform{kind: transformServerTimestamp}

// ArrayUnion appends each value not already present in the array field.
func ArrayUnion(values ...any) Transform {
	return Transform{kind: transformArrayUnion, values: values}
}

// ArrayRemove removes every occurrence of each value from the array field.
func ArrayRemove(values ...any) Transform {
	return Transform{kind: transformArrayRemove, values: values}
}

func (t Transform) String() string {
	switch t.kind {
	case transformServerTimestamp:
		return "ServerTimestamp"
	case transformArrayUnion:
		return fmt.Sprintf("ArrayUnion%v", t.values)
	case transformArrayRemove:
		return fmt.Sprintf("ArrayRemove%v", t.values)
	default:
		return "InvalidTransform"
	}
}

// Plan is a field map split by how each field must be written.
// Every key slice is sorted so backends emit deterministic statements.
type Plan struct {
	Set        map[string]any
	Timestamps []string
	Union      map[string][]any
	Remove     map[string][]any
}

// SetKeys returns the plain fields in sorted order.
func (p Plan) SetKeys() []string {
	return slices.Sorted(maps.Keys(p.Set))
}

func (p Plan) UnionKeys() []string {
	return slices.Sorted(maps.Keys(p.Union))
}

func (p Plan) RemoveKeys() []string {
	return slices.Sorted(maps.Keys(p.Remove))
}

// PlanUpdate splits fields for Update.
func PlanUpdate(fields map[string]any) (Plan, error) {
	p := Plan{
		Set:    make(map[string]any),
		Union:  make(map[string][]any),
		Remove: make(map[string][]any),
	}
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if key == "" {
			return Plan{}, fmt.Errorf("%w: empty field name", ErrInvalidTransform)
		}
		switch v := fields[key].(type) {
		case Transform:
			switch v.kind {
			case transformServerTimestamp:
				p.Timestamps = append(p.Timestamps, key)
			case transformArrayUnion:
				p.Union[key] = Normalize(v.values).([]any)
			case transformArrayRemove:
				p.Remove[key] = Normalize(v.values).([]any)
			default:
				return Plan{}, fmt.Errorf("%w: field %q", ErrInvalidTransform, key)
			}
		default:
			p.Set[key] = Normalize(v)
		}
	}
	return p, nil
}

// PlanCreate splits fields for Add, rejecting array transforms.
func PlanCreate(data map[string]any) (Plan, error) {
	p, err := PlanUpdate(data)
	if err != nil {
		return Plan{}, err
	}
	if len(p.Union) > 0 || len(p.Remove) > 0 {
		return Plan{}, fmt.Errorf("%w: array transforms are only valid on update", ErrInvalidTransform)
	}
	return p, nil
}
