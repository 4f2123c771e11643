// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"nenkin/internal/checklist"
	"nenkin/internal/service"
)

// UpdateCall records one DocumentStore.Update invocation.
type UpdateCall struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// FakeDocumentStore is an in-memory implementation of service.DocumentStore.
type FakeDocumentStore struct {
	mu   sync.Mutex
	docs map[string]map[string]map[string]any // collection -> id -> fields

	// Calls records every Update in issue order, including failed ones.
	Calls []UpdateCall

	// Error injection for testing
	ReadAllErr error
	UpdateErr  map[string]error // document id -> error

	// ReadAllBlock makes ReadAll wait for context cancellation.
	ReadAllBlock bool

	// ReadAllGate, if set, makes ReadAll wait until it is closed, ignoring ctx.
	ReadAllGate chan struct{}
}

// NewFakeDocumentStore creates an empty store.
func NewFakeDocumentStore() *FakeDocumentStore {
	return &FakeDocumentStore{
		docs:      make(map[string]map[string]map[string]any),
		UpdateErr: make(map[string]error),
	}
}

// Put stores a document with the given fields, replacing any existing one.
func (f *FakeDocumentStore) Put(collection, id string, fields map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docs[collection] == nil {
		f.docs[collection] = make(map[string]map[string]any)
	}
	cp := make(map[string]any, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	f.docs[collection][id] = cp
}

// PutItems stores items as full documents, as an initial population would.
func (f *FakeDocumentStore) PutItems(collection string, items []checklist.Item) {
	for _, it := range items {
		f.Put(collection, it.ID, map[string]any{
			"id":       it.ID,
			"section":  it.Section,
			"title":    it.Title,
			"question": it.Question,
			"answer":   it.Answer,
			"checked":  it.Checked,
		})
	}
}

// Get returns a copy of a document's fields.
func (f *FakeDocumentStore) Get(collection, id string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[collection][id]
	if !ok {
		return nil, false
	}
	cp := make(map[string]any, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	return cp, true
}

// UpdatedIDs returns the ids of all Update calls in issue order.
func (f *FakeDocumentStore) UpdatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		ids[i] = c.ID
	}
	return ids
}

// ReadAll implements service.DocumentStore. Documents are returned in
// descending id order so callers cannot rely on store order.
func (f *FakeDocumentStore) ReadAll(ctx context.Context, collection string) ([]service.Document, error) {
	if f.ReadAllBlock {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.ReadAllGate != nil {
		<-f.ReadAllGate
	}
	if f.ReadAllErr != nil {
		return nil, f.ReadAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []service.Document
	for id, fields := range f.docs[collection] {
		cp := make(map[string]any, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		out = append(out, service.Document{ID: id, Fields: cp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Update implements service.DocumentStore.
func (f *FakeDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, UpdateCall{Collection: collection, ID: id, Fields: fields})

	if err, ok := f.UpdateErr[id]; ok && err != nil {
		return err
	}
	doc, ok := f.docs[collection][id]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, service.ErrNotFound)
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}
