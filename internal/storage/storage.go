package storage

import "context"

// StoredObject identifies a blob after upload.
type StoredObject struct {
	URL      string
	RemoteID string
}

// BlobStore is the narrow interface the core uses to talk to the blob
// storage service. Upload and release are opaque; the core never
// inspects the stored bytes.
type BlobStore interface {
	// Store uploads the object at localPath and returns its public
	// URL and remote identifier.
	Store(ctx context.Context, localPath string) (*StoredObject, error)

	// Delete releases the remote object. Callers treat failures as
	// best-effort during recursive deletes.
	Delete(ctx context.Context, remoteID string) error
}
