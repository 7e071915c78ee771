package mocks

import (
	"context"
	"fmt"
	"sync"
)

// MockObjectStore is an in-memory object store. It records uploads in call
// order and can be told to fail on a specific key, which is how the tests
// simulate a partial upload failure.
type MockObjectStore struct {
	mu         sync.Mutex
	UploadFunc func(ctx context.Context, key string, data []byte, contentType string) (string, error)
	FailOnKey  string
	uploads    []string
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, data, contentType)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailOnKey != "" && m.FailOnKey == key {
		return "", fmt.Errorf("upload of %q failed", key)
	}

	m.uploads = append(m.uploads, key)

	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

// Uploads returns the keys uploaded so far, in call order.
func (m *MockObjectStore) Uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	uploads := make([]string, len(m.uploads))
	copy(uploads, m.uploads)
	return uploads
}
