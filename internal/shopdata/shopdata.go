// Package shopdata reads the shop's name for the app's index page.
package shopdata

import (
	"context"
	"sync"
)

// LoadingText is shown until the query resolves
const LoadingText = "Loading..."

// Fetcher resolves the shop name, e.g. service.ShopName bound to a client
type Fetcher func(ctx context.Context) (string, error)

// Status of the query
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusLoaded
)

// Query runs `{ shop { name } }` once and renders one of three states
type Query struct {
	fetch Fetcher

	mu     sync.RWMutex
	status Status
	name   string
	err    error
}

func NewQuery(fetch Fetcher) *Query {
	return &Query{fetch: fetch, status: StatusLoading}
}

// Run executes the query. It is not retried on failure.
func (q *Query) Run(ctx context.Context) error {
	name, err := q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		q.status, q.err = StatusError, err
		return err
	}
	q.status, q.name = StatusLoaded, name
	return nil
}

func (q *Query) Status() Status {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.status
}

// Text renders the current state: loading text, the raw error message, or the shop name
func (q *Query) Text() string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	switch q.status {
	case StatusError:
		return q.err.Error()
	case StatusLoaded:
		return q.name
	default:
		return LoadingText
	}
}
