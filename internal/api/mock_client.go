package api

import (
	"context"
	"sync"

	"github.com/diogo/kondate/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	mu sync.Mutex

	// Mock return values
	Reply *models.Reply
	Err   error
	Model models.Model

	// GenerateFunc, when set, replaces the canned Reply/Err
	GenerateFunc func(ctx context.Context, req models.GenerateRequest) (*models.Reply, error)

	// Call counters/recorders
	Calls       int
	Requests    []models.GenerateRequest
	CloseCalled bool
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

// NewMockGeminiClient returns a mock answering every request with the segments
func NewMockGeminiClient(segments ...string) *MockGeminiClient {
	return &MockGeminiClient{
		Reply: &models.Reply{Segments: segments},
		Model: models.DefaultModel,
	}
}

// NewMockGeminiClientWithError returns a mock failing every request
func NewMockGeminiClientWithError(err error) *MockGeminiClient {
	return &MockGeminiClient{Err: err, Model: models.DefaultModel}
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, req models.GenerateRequest) (*models.Reply, error) {
	m.mu.Lock()
	m.Calls++
	m.Requests = append(m.Requests, req)
	fn := m.GenerateFunc
	reply, err := m.Reply, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return reply, err
}

// CallCount returns how many requests were made
func (m *MockGeminiClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// LastRequest returns the most recent request, if any
func (m *MockGeminiClient) LastRequest() (models.GenerateRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return models.GenerateRequest{}, false
	}
	return m.Requests[len(m.Requests)-1], true
}

func (m *MockGeminiClient) GetModel() models.Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Model
}

func (m *MockGeminiClient) SetModel(model models.Model) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Model = model
}

func (m *MockGeminiClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}
