// Package remote implements service.Backend over a per-item document collection.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"nenkin/internal/checklist"
	"nenkin/internal/logging"
	"nenkin/internal/pipeline"
	"nenkin/internal/service"
)

// DefaultLoadTimeout bounds the bulk read.
const DefaultLoadTimeout = 30 * time.Second

// Order selects how loaded documents are arranged.
type Order int

const (
	// OrderByID sorts items by id, lexicographically.
	OrderByID Order = iota

	// OrderBySeed arranges known ids in seed order, unknown ids after them by id.
	OrderBySeed
)

// Backend loads all documents of a collection and saves item by item.
type Backend struct {
	store       service.DocumentStore
	collection  string
	loadTimeout time.Duration
	order       Order
	seed        func() []checklist.Item
	log         *slog.Logger
	closer      func() error
}

// Option configures a Backend.
type Option func(*Backend)

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(b *Backend) { b.loadTimeout = d }
}

// WithOrder selects the load ordering.
func WithOrder(o Order) Option {
	return func(b *Backend) { b.order = o }
}

// WithSeed sets the reference list used by OrderBySeed.
func WithSeed(seed func() []checklist.Item) Option {
	return func(b *Backend) { b.seed = seed }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// WithCloser registers a function run by Close.
func WithCloser(fn func() error) Option {
	return func(b *Backend) { b.closer = fn }
}

// New creates a remote backend over collection in store.
func New(store service.DocumentStore, collection string, opts ...Option) *Backend {
	b := &Backend{
		store:       store,
		collection:  collection,
		loadTimeout: DefaultLoadTimeout,
		seed:        checklist.Seed,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = logging.OrDiscard(b.log).With("backend", "remote", "collection", collection)
	return b
}

// Name implements service.Backend.
func (b *Backend) Name() string { return "remote" }

// Load implements service.Backend. On timeout or failure it returns an
// empty, non-nil slice and the error. The timeout holds even when the store
// does not observe ctx; its late result is dropped.
func (b *Backend) Load(ctx context.Context) ([]checklist.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, b.loadTimeout)
	defer cancel()

	docs, err := b.readAll(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			b.log.Debug("load timed out", "timeout", b.loadTimeout)
			return []checklist.Item{}, fmt.Errorf("%w after %s", service.ErrLoadTimeout, b.loadTimeout)
		}
		b.log.Debug("load failed", "error", err)
		return []checklist.Item{}, fmt.Errorf("%w: %w", service.ErrLoadFailed, err)
	}

	items := make([]checklist.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, decode(d))
	}
	if err := checklist.Validate(items); err != nil {
		b.log.Debug("collection is inconsistent", "error", err)
		return []checklist.Item{}, fmt.Errorf("%w: %w", service.ErrLoadFailed, err)
	}

	switch b.order {
	case OrderBySeed:
		sortBySeed(items, b.seed())
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}
	b.log.Debug("collection loaded", "items", len(items))
	return items, nil
}

type readResult struct {
	docs []service.Document
	err  error
}

func (b *Backend) readAll(ctx context.Context) ([]service.Document, error) {
	ch := make(chan readResult, 1)
	go func() {
		docs, err := b.store.ReadAll(ctx, b.collection)
		ch <- readResult{docs: docs, err: err}
	}()

	select {
	case r := <-ch:
		return r.docs, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// decode maps a document onto an item. The document key is the item id;
// missing or mistyped fields keep their zero values.
func decode(d service.Document) checklist.Item {
	return checklist.Item{
		ID:       d.ID,
		Section:  stringField(d.Fields, "section"),
		Title:    stringField(d.Fields, "title"),
		Question: stringField(d.Fields, "question"),
		Answer:   stringField(d.Fields, service.FieldAnswer),
		Checked:  boolField(d.Fields, service.FieldChecked),
	}
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

func boolField(fields map[string]any, name string) bool {
	v, _ := fields[name].(bool)
	return v
}

func sortBySeed(items []checklist.Item, seed []checklist.Item) {
	rank := make(map[string]int, len(seed))
	for i, it := range seed {
		rank[it.ID] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, iKnown := rank[items[i].ID]
		rj, jKnown := rank[items[j].ID]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return items[i].ID < items[j].ID
		}
	})
}

// Save implements service.Backend. Each item's answer and checked fields are
// written to its own document, one at a time in slice order. The first
// failure stops the save; documents already written stay written.
func (b *Backend) Save(ctx context.Context, items []checklist.Item) (service.SaveResult, error) {
	steps := make([]pipeline.Step, len(items))
	for i, it := range items {
		fields := map[string]any{
			service.FieldAnswer:  it.Answer,
			service.FieldChecked: it.Checked,
		}
		id := it.ID
		steps[i] = pipeline.Step{
			ID: id,
			Run: func(ctx context.Context) error {
				return b.store.Update(ctx, b.collection, id, fields)
			},
		}
	}

	run := pipeline.Run(ctx, steps, b.log)
	res := service.SaveResult{
		Succeeded: run.Succeeded,
		FailedID:  run.FailedID,
		Remaining: run.Remaining,
	}
	if !run.OK() {
		b.log.Debug("save aborted",
			"run", run.RunID,
			"failed", run.FailedID,
			"saved", len(run.Succeeded),
			"not_attempted", len(run.Remaining),
			"error", run.Err)
		return res, &service.SaveError{Result: res, Err: run.Err}
	}
	b.log.Debug("collection saved", "run", run.RunID, "items", len(items))
	return res, nil
}

// Close implements service.Backend.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}
