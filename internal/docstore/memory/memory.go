// Package memory is an in-process docstore backend used by tests and by
// DOCSTORE_DRIVER=memory for local runs. Data does not survive a restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"go-jobboard-backend/internal/docstore"

	"github.com/google/uuid"
)

type record struct {
	seq  uint64
	data map[string]any
}

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]*record
	seq         uint64
	now         func() time.Time
	newID       func() string
}

type Option func(*Store)

// WithClock replaces the server clock used for ServerTimestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]map[string]*record),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(_ context.Context, collection, id string) (docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return docstore.Document{ID: id, Data: docstore.NormalizeMap(rec.data)}, nil
}

func (s *Store) Where(_ context.Context, collection, field string, value any) ([]docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(collection, func(data map[string]any) bool {
		v, ok := data[field]
		return ok && docstore.Equal(v, value)
	}), nil
}

func (s *Store) All(_ context.Context, collection string) ([]docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(collection, func(map[string]any) bool { return true }), nil
}

// collect returns matching documents in insertion order. Callers hold the read lock.
func (s *Store) collect(collection string, match func(map[string]any) bool) []docstore.Document {
	type hit struct {
		seq uint64
		doc docstore.Document
	}
	var hits []hit
	for id, rec := range s.collections[collection] {
		if match(rec.data) {
			hits = append(hits, hit{seq: rec.seq, doc: docstore.Document{ID: id, Data: docstore.NormalizeMap(rec.data)}})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	docs := make([]docstore.Document, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, h.doc)
	}
	return docs
}

func (s *Store) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	plan, err := docstore.PlanCreate(data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]*record)
		s.collections[collection] = coll
	}

	id := s.newID()
	for _, exists := coll[id]; exists; _, exists = coll[id] {
		id = s.newID()
	}

	rec := &record{data: make(map[string]any)}
	s.apply(rec.data, plan)
	s.seq++
	rec.seq = s.seq
	coll[id] = rec
	return id, nil
}

func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	plan, err := docstore.PlanUpdate(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return docstore.ErrNotFound
	}
	s.apply(rec.data, plan)
	return nil
}

// apply mutates data in place. Callers hold the write lock.
func (s *Store) apply(data map[string]any, plan docstore.Plan) {
	for key, v := range plan.Set {
		data[key] = v
	}

	for key, values := range plan.Union {
		arr, _ := docstore.Normalize(data[key]).([]any)
		if arr == nil {
			arr = []any{}
		}
		for _, v := range values {
			if !slices.ContainsFunc(arr, func(e any) bool { return docstore.Equal(e, v) }) {
				arr = append(arr, v)
			}
		}
		data[key] = arr
	}

	for key, values := range plan.Remove {
		arr, _ := docstore.Normalize(data[key]).([]any)
		kept := make([]any, 0, len(arr))
		for _, e := range arr {
			if !slices.ContainsFunc(values, func(v any) bool { return docstore.Equal(e, v) }) {
				kept = append(kept, e)
			}
		}
		data[key] = kept
	}

	if len(plan.Timestamps) > 0 {
		now := s.now().UTC()
		for _, key := range plan.Timestamps {
			data[key] = now
		}
	}
}

func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return docstore.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
