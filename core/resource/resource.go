// Package resource binds the SDK's query and pagination core to a concrete
// HTTP backend. A Resource represents one remote collection (tasks,
// projects, ...) and exposes CRUD wrappers, the four pagination access
// modes, and resource-bound query builders, emitting lifecycle events on a
// typed event bus as it goes.
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajones55555/rocketlane-sdk/core/paginate"
	"github.com/ajones55555/rocketlane-sdk/core/query"
)

// Doer is the HTTP surface a Resource needs from the rest layer. It performs
// the actual network calls and owns retry, auth and timeout policy; the
// resource layer treats every call as opaque and possibly failing.
type Doer interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, path string, params map[string]any, out any) error
}

// Resource is a typed handle on one remote collection.
type Resource[T any] struct {
	name     string
	path     string
	client   Doer
	engine   *paginate.Engine[T]
	logger   *zap.Logger
	maxPages int

	bus           *events.TypedEventBus[Event]
	subscriptions map[string]func()
	subMu         sync.Mutex
}

// Option configures a Resource.
type Option[T any] func(*Resource[T])

// WithLogger sets the resource's logger, which is also handed to its
// pagination engine.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(r *Resource[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxPages overrides the eager fetch-all page cap for this resource.
func WithMaxPages[T any](n int) Option[T] {
	return func(r *Resource[T]) {
		r.maxPages = n
	}
}

// New creates a resource for the collection with the given query name and
// endpoint path (e.g. "tasks", "/1.0/tasks").
func New[T any](client Doer, name, path string, opts ...Option[T]) (*Resource[T], error) {
	bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("resource %s: could not initialize event bus: %w", name, err)
	}
	r := &Resource[T]{
		name:          name,
		path:          path,
		client:        client,
		logger:        zap.NewNop(),
		maxPages:      paginate.DefaultMaxPages,
		bus:           bus,
		subscriptions: map[string]func(){},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.engine = paginate.NewEngine(r.fetch,
		paginate.WithMaxPages[T](r.maxPages),
		paginate.WithLogger[T](r.logger))
	return r, nil
}

// Name returns the collection name used for query building.
func (r *Resource[T]) Name() string { return r.name }

// fetch is the injected fetch primitive handed to the pagination engine:
// one page request against the collection's list endpoint.
func (r *Resource[T]) fetch(ctx context.Context, params paginate.Params) (*paginate.Page[T], error) {
	start := time.Now()
	r.emit(newEvent(ListStart, r.name, "list", params, 0, "", start))

	var page paginate.Page[T]
	if err := r.client.List(ctx, r.path, params, &page); err != nil {
		r.emit(newEvent(ListFailed, r.name, "list", params, 0, err.Error(), start))
		return nil, err
	}

	r.emit(newEvent(ListSuccess, r.name, "list", params, len(page.Data), "", start))
	r.logger.Debug("fetched page",
		zap.String("resource", r.name),
		zap.Int("records", len(page.Data)),
		zap.Bool("hasMore", page.Pagination.HasMore))
	return &page, nil
}

// List fetches a single page using the given flat parameters.
func (r *Resource[T]) List(ctx context.Context, params paginate.Params) (*paginate.Page[T], error) {
	return r.engine.First(ctx, params)
}

// NextPage fetches the page after the given one, or returns nil when the
// chain is exhausted. The fetch primitive is not invoked on an exhausted
// page.
func (r *Resource[T]) NextPage(ctx context.Context, page *paginate.Page[T], params paginate.Params) (*paginate.Page[T], error) {
	return r.engine.Next(ctx, page, params)
}

// ListAll eagerly fetches every page, subject to the engine's page cap.
func (r *Resource[T]) ListAll(ctx context.Context, params paginate.Params) ([]T, error) {
	return r.engine.All(ctx, params)
}

// Pages returns a lazy page sequence over the collection.
func (r *Resource[T]) Pages(ctx context.Context, params paginate.Params) iter.Seq2[*paginate.Page[T], error] {
	return r.engine.Pages(ctx, params)
}

// Items returns a lazy record sequence over the collection.
func (r *Resource[T]) Items(ctx context.Context, params paginate.Params) iter.Seq2[T, error] {
	return r.engine.Items(ctx, params)
}

// Get retrieves a single record by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	start := time.Now()
	r.emit(newEvent(GetStart, r.name, "get", nil, 0, "", start))
	var out T
	if err := r.client.Get(ctx, r.path+"/"+id, &out); err != nil {
		r.emit(newEvent(GetFailed, r.name, "get", nil, 0, err.Error(), start))
		return nil, err
	}
	r.emit(newEvent(GetSuccess, r.name, "get", nil, 1, "", start))
	return &out, nil
}

// Create creates a record from the given payload and returns the stored
// representation.
func (r *Resource[T]) Create(ctx context.Context, in any) (*T, error) {
	start := time.Now()
	r.emit(newEvent(CreateStart, r.name, "create", nil, 0, "", start))
	var out T
	if err := r.client.Post(ctx, r.path, in, &out); err != nil {
		r.emit(newEvent(CreateFailed, r.name, "create", nil, 0, err.Error(), start))
		return nil, err
	}
	r.emit(newEvent(CreateSuccess, r.name, "create", nil, 1, "", start))
	return &out, nil
}

// Update replaces mutable fields of the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, in any) (*T, error) {
	start := time.Now()
	r.emit(newEvent(UpdateStart, r.name, "update", nil, 0, "", start))
	var out T
	if err := r.client.Put(ctx, r.path+"/"+id, in, &out); err != nil {
		r.emit(newEvent(UpdateFailed, r.name, "update", nil, 0, err.Error(), start))
		return nil, err
	}
	r.emit(newEvent(UpdateSuccess, r.name, "update", nil, 1, "", start))
	return &out, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	r.emit(newEvent(DeleteStart, r.name, "delete", nil, 0, "", start))
	if err := r.client.Delete(ctx, r.path+"/"+id); err != nil {
		r.emit(newEvent(DeleteFailed, r.name, "delete", nil, 0, err.Error(), start))
		return err
	}
	r.emit(newEvent(DeleteSuccess, r.name, "delete", nil, 1, "", start))
	return nil
}

// Query returns a fluent builder bound to this resource's list method.
func (r *Resource[T]) Query() *Query[T] {
	return &Query[T]{
		Builder: query.NewBuilder(r.name),
		res:     r,
	}
}

// QueryTemplate parses a pseudo-SQL template and executes it against this
// resource's list endpoint in a single page fetch. The template's table name
// is advisory; the request always targets this resource.
func (r *Resource[T]) QueryTemplate(ctx context.Context, text string, args ...any) (*paginate.Page[T], error) {
	params := query.NewTemplate(text, args...).Params()
	return r.List(ctx, params)
}

// Subscribe registers a callback for one lifecycle event type and returns a
// subscription id for Unsubscribe.
func (r *Resource[T]) Subscribe(event EventType, cb EventCallback) string {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	unsubscribe := r.bus.Subscribe(string(event), cb)
	id := uuid.New().String()
	r.subscriptions[id] = unsubscribe
	return id
}

// Unsubscribe removes a previously registered subscription. Unknown ids are
// ignored.
func (r *Resource[T]) Unsubscribe(id string) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	if unsubscribe, ok := r.subscriptions[id]; ok {
		unsubscribe()
		delete(r.subscriptions, id)
	}
}

func (r *Resource[T]) emit(event Event) {
	if r.bus != nil {
		r.bus.Emit(string(event.Type), event)
	}
}

// Query is a fluent builder attached to a resource. Chain methods are
// inherited from the embedded query.Builder and mutate shared state; the
// typed execution methods below translate the accumulated directives and
// drive this resource's list endpoint.
type Query[T any] struct {
	*query.Builder
	res *Resource[T]
}

// Execute performs exactly one page fetch with the built parameters.
func (q *Query[T]) Execute(ctx context.Context) (*paginate.Page[T], error) {
	return q.res.List(ctx, q.Params())
}

// ExecuteAll drains the query through the pagination engine, subject to the
// engine's page cap.
func (q *Query[T]) ExecuteAll(ctx context.Context) ([]T, error) {
	return q.res.ListAll(ctx, q.Params())
}

// Pages returns the query results as a lazy page sequence.
func (q *Query[T]) Pages(ctx context.Context) iter.Seq2[*paginate.Page[T], error] {
	return q.res.Pages(ctx, q.Params())
}

// Items returns the query results as a lazy record sequence.
func (q *Query[T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return q.res.Items(ctx, q.Params())
}

// ExecuteProjected performs one page fetch and applies the query's selection
// tree to the fetched records, returning partial documents. Records are
// round-tripped through JSON to obtain their wire-shaped map form before
// projection.
func (q *Query[T]) ExecuteProjected(ctx context.Context) ([]query.Document, error) {
	page, err := q.Execute(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := toDocuments(page.Data)
	if err != nil {
		return nil, err
	}
	sel := q.Selection()
	if sel == nil {
		return docs, nil
	}
	return query.ProjectDocuments(docs, sel), nil
}

// toDocuments converts typed records to their map form via JSON.
func toDocuments[T any](items []T) ([]query.Document, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("resource: could not encode records for projection: %w", err)
	}
	var docs []query.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("resource: could not decode records for projection: %w", err)
	}
	return docs, nil
}
