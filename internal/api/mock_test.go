package api

import (
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// MockHttpClient is a mock implementation of HTTPDoer for testing
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	// Recorded request and its body
	LastRequest *fhttp.Request
	LastBody    []byte
	IdleClosed  bool
}

// Do implements the HTTPDoer interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.LastRequest = req
	if req.Body != nil {
		m.LastBody, _ = io.ReadAll(req.Body)
	}
	return m.Response, m.Err
}

// CloseIdleConnections implements the HTTPDoer interface
func (m *MockHttpClient) CloseIdleConnections() {
	m.IdleClosed = true
}

// NewMockHttpClient creates a new MockHttpClient with a canned response
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       NewMockResponseBody(body),
			Header:     make(fhttp.Header),
		},
	}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{
		Response: nil,
		Err:      err,
	}
}
