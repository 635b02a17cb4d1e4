package ports

import (
	"context"
)

// ObjectStorage stores binary assets such as product images.
type ObjectStorage interface {
	// Put writes data under key and returns the public URL of the object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
