package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/shopify"
)

type executedCall struct {
	Query     string
	Variables map[string]interface{}
}

// fakeExecutor answers each call with the next scripted data payload
type fakeExecutor struct {
	mu        sync.Mutex
	responses []string
	err       error
	failAt    int // 1-based call that returns err; 0 fails every call
	calls     []executedCall
}

func (f *fakeExecutor) Execute(_ context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, executedCall{Query: query, Variables: variables})
	if f.err != nil && (f.failAt == 0 || f.failAt == len(f.calls)) {
		return nil, f.err
	}
	data := `{}`
	if len(f.responses) > 0 {
		data, f.responses = f.responses[0], f.responses[1:]
	}
	return &shopify.GraphQLResponse{Data: json.RawMessage(data)}, nil
}

type memoryEvents struct {
	mu     sync.Mutex
	events []*domain.ActionEvent
}

func (m *memoryEvents) Create(_ context.Context, event *domain.ActionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *memoryEvents) ListByProductID(_ context.Context, shop, productID string, limit int) ([]*domain.ActionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ActionEvent
	for _, e := range m.events {
		if e.Shop == shop && e.ProductID == productID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}
