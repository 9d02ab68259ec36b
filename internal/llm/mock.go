package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned answer for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in order and records requests.
// Once the queue is drained, Reply answers if set. Responses are
// schema-checked like real providers.
type MockProvider struct {
	// Reply builds a response from the request.
	Reply func(Request) MockResponse

	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider queues responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate pops the next response. With an empty queue and no Reply the
// provider reports itself unavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	next, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}

	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, next.Content, next.Usage, "mock", StopEnd)
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.responses) > 0 {
		next := m.responses[0]
		m.responses = m.responses[1:]
		return next, true
	}
	if m.Reply != nil {
		return m.Reply(req), true
	}
	return MockResponse{}, false
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
