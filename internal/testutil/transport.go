// Package testutil provides a mock HTTP transport shared by the package tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// MockResponse represents a mock HTTP response.
type MockResponse struct {
	// StatusCode is the HTTP status code to return (default: 200)
	StatusCode int
	Body       string
	Headers    http.Header
	// Error simulates a network error
	Error error
}

// MockTransport implements http.RoundTripper by serving registered responses
// keyed by exact URL. Unregistered URLs get a 404. Every request is recorded.
type MockTransport struct {
	mu        sync.Mutex
	responses map[string]*MockResponse
	requests  []*http.Request
}

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{responses: make(map[string]*MockResponse)}
}

// RegisterResponse registers a mock response for an exact URL match.
func (m *MockTransport) RegisterResponse(url string, response *MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if response.StatusCode == 0 {
		response.StatusCode = http.StatusOK
	}
	if response.Headers == nil {
		response.Headers = make(http.Header)
	}
	m.responses[url] = response
}

// RegisterBody registers a 200 response with the given body.
func (m *MockTransport) RegisterBody(url, body string) {
	m.RegisterResponse(url, &MockResponse{Body: body})
}

// RegisterStatus registers an empty response with the given status.
func (m *MockTransport) RegisterStatus(url string, status int) {
	m.RegisterResponse(url, &MockResponse{StatusCode: status})
}

// RegisterRedirect registers a redirect to location.
func (m *MockTransport) RegisterRedirect(url string, status int, location string) {
	h := make(http.Header)
	h.Set("Location", location)
	m.RegisterResponse(url, &MockResponse{StatusCode: status, Headers: h})
}

// RegisterError registers a transport error for url.
func (m *MockTransport) RegisterError(url string, err error) {
	m.RegisterResponse(url, &MockResponse{Error: err})
}

// Requests returns the URLs requested so far, in order.
func (m *MockTransport) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	urls := make([]string, len(m.requests))
	for i, r := range m.requests {
		urls[i] = r.URL.String()
	}
	return urls
}

// Count returns how many times url was requested.
func (m *MockTransport) Count(url string) int {
	n := 0
	for _, u := range m.Requests() {
		if u == url {
			n++
		}
	}
	return n
}

// RoundTrip implements the http.RoundTripper interface.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	mockResp, found := m.responses[req.URL.String()]
	m.mu.Unlock()

	if !found {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString("Not Found")),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	if mockResp.Error != nil {
		return nil, mockResp.Error
	}

	header := make(http.Header)
	for k, v := range mockResp.Headers {
		header[k] = append([]string{}, v...)
	}

	return &http.Response{
		StatusCode:    mockResp.StatusCode,
		Body:          io.NopCloser(bytes.NewBufferString(mockResp.Body)),
		Header:        header,
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		ContentLength: int64(len(mockResp.Body)),
	}, nil
}
