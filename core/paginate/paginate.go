// Package paginate drives token-based iteration over the remote API's list
// endpoints. Every list endpoint returns a page of records plus an opaque
// continuation token; this package wraps an injected fetch primitive with
// four access modes: a single next-page fetch, an eager fetch-all with a
// page-count safety cap, a lazy page sequence, and a lazy item sequence.
//
// All fetches in one pagination chain are strictly sequential: page N's
// token is required to request page N+1, so there is nothing to parallelize
// within a chain. Independent chains may run concurrently at the caller's
// discretion; no state is shared between them.
package paginate

import (
	"context"
	"iter"
	"maps"

	"go.uber.org/zap"
)

// Params is the flat request shape passed to the fetch primitive.
type Params = map[string]any

// Reserved parameter keys understood by the remote list endpoints.
const (
	ParamPageSize  = "pageSize"
	ParamPageToken = "pageToken"
)

// DefaultMaxPages is the safety cap on the eager All mode. Callers that
// expect more pages than this should switch to the lazy Pages or Items
// modes, which are uncapped.
const DefaultMaxPages = 50

// PageInfo is the pagination envelope returned alongside each page of data.
// A present NextPageToken implies HasMore; HasMore false implies the token
// is absent.
type PageInfo struct {
	PageSize         int    `json:"pageSize"`
	HasMore          bool   `json:"hasMore"`
	TotalRecordCount int    `json:"totalRecordCount"`
	NextPageToken    string `json:"nextPageToken,omitempty"`
}

// Page is one fetched page of records. Pages are immutable once returned:
// the engine never mutates a fetched page, only requests the next one.
type Page[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

// Exhausted reports whether the page terminates its pagination chain.
func (p *Page[T]) Exhausted() bool {
	return p == nil || !p.Pagination.HasMore || p.Pagination.NextPageToken == ""
}

// ListFunc is the injected fetch primitive: one network round trip returning
// one page. The engine treats it as opaque and possibly failing; errors are
// propagated to the caller unmodified, and retry policy (if any) belongs to
// whoever supplies the function.
type ListFunc[T any] func(ctx context.Context, params Params) (*Page[T], error)

// Engine coordinates repeated calls to a ListFunc for one resource.
type Engine[T any] struct {
	list     ListFunc[T]
	maxPages int
	logger   *zap.Logger
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithMaxPages overrides the eager fetch-all page cap. Values below one are
// ignored.
func WithMaxPages[T any](n int) Option[T] {
	return func(e *Engine[T]) {
		if n >= 1 {
			e.maxPages = n
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(e *Engine[T]) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine around the given fetch primitive.
func NewEngine[T any](list ListFunc[T], opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{
		list:     list,
		maxPages: DefaultMaxPages,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// First fetches the opening page of a chain. Any stale continuation token in
// params is dropped so the chain starts from the beginning.
func (e *Engine[T]) First(ctx context.Context, params Params) (*Page[T], error) {
	p := clone(params)
	delete(p, ParamPageToken)
	return e.list(ctx, p)
}

// Next fetches the page following the given one, reusing the originating
// parameters with the page's continuation token substituted in. It returns
// nil without invoking the fetch primitive when the chain is exhausted;
// exhaustion is terminal, not an error.
func (e *Engine[T]) Next(ctx context.Context, page *Page[T], params Params) (*Page[T], error) {
	if page.Exhausted() {
		return nil, nil
	}
	p := clone(params)
	p[ParamPageToken] = page.Pagination.NextPageToken
	return e.list(ctx, p)
}

// All eagerly drains the chain, concatenating every page's records, subject
// to the engine's page-count cap. Hitting the cap is a deliberate truncation:
// the records collected so far are returned without error. A fetch failure
// surfaces immediately and discards nothing already collected by the caller.
func (e *Engine[T]) All(ctx context.Context, params Params) ([]T, error) {
	var items []T
	page, err := e.First(ctx, params)
	if err != nil {
		return nil, err
	}
	fetched := 1
	items = append(items, page.Data...)

	for !page.Exhausted() {
		if fetched >= e.maxPages {
			e.logger.Debug("fetch-all stopped at page cap",
				zap.Int("pages", fetched),
				zap.Int("items", len(items)))
			break
		}
		page, err = e.Next(ctx, page, params)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		fetched++
		items = append(items, page.Data...)
	}
	return items, nil
}

// Pages returns a lazy sequence of pages. Nothing is fetched until the
// consumer pulls; each pull past the current page performs exactly one
// fetch. The sequence has no page cap and restarts from the first page on
// every range. A fetch failure is yielded as the error of the pull that
// triggered it, after which the sequence stops. Abandoning the sequence is
// the only cancellation mechanism, matching the token protocol: there is no
// in-flight work to interrupt between pulls.
func (e *Engine[T]) Pages(ctx context.Context, params Params) iter.Seq2[*Page[T], error] {
	return func(yield func(*Page[T], error) bool) {
		page, err := e.First(ctx, params)
		for {
			if err != nil {
				yield(nil, err)
				return
			}
			if page == nil {
				return
			}
			if !yield(page, nil) {
				return
			}
			if page.Exhausted() {
				return
			}
			page, err = e.Next(ctx, page, params)
		}
	}
}

// Items flattens Pages into a lazy sequence of individual records,
// preserving page-internal order and page-to-page order.
func (e *Engine[T]) Items(ctx context.Context, params Params) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for page, err := range e.Pages(ctx, params) {
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range page.Data {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// clone copies a parameter map so the caller's map is never mutated.
func clone(params Params) Params {
	if params == nil {
		return Params{}
	}
	return maps.Clone(params)
}
