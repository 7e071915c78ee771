package domain

import "context"

// ObjectStore is the external blob storage collaborator. Upload writes the
// payload under the given key and returns a durable, publicly retrievable
// URL. Uploads are independent; there is no transactional guarantee across
// multiple calls.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
