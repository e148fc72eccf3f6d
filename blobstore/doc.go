// Package blobstore provides storage abstraction for persisted dictionaries.
//
// BlobStore is the interface for reading and writing immutable dictionary
// blobs. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory store for testing
//   - minio.Store: MinIO and S3-compatible storage
//   - s3.Store: Amazon S3 with range reads
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)       // Open for reading
//	    Put(ctx, name, data) error          // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that can expose their content as a single byte slice should also
// implement Mappable; LoadFromStore uses it for zero-copy loading.
package blobstore
