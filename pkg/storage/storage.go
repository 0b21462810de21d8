// Package storage is the document-store collaborator boundary: uploaded
// source documents and serialized compliance reports live behind the
// Storage interface, with MinIO and S3 backends.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/skosovsky/doccheck/pkg/logger"
	"github.com/skosovsky/doccheck/pkg/storage/minio"
	"github.com/skosovsky/doccheck/pkg/storage/s3"
)

type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeMinio StorageType = "minio"
)

// Object key prefixes. Source documents and reports share a bucket.
const (
	DocumentKeyPrefix = "document:"
	ReportKeyPrefix   = "report:"
)

// Storage stores and retrieves analysis artifacts.
type Storage interface {
	Store(ctx context.Context, reader io.Reader, key string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	CleanupBefore(ctx context.Context, threshold time.Time) error
}

// DocumentKey builds the object key for an uploaded source document.
func DocumentKey(documentID string) string {
	return DocumentKeyPrefix + documentID
}

// ReportKey builds the object key for a serialized compliance report.
func ReportKey(taskID string) string {
	return ReportKeyPrefix + taskID
}

// NewStorage creates a storage backend by type.
func NewStorage(storageType StorageType, log logger.Logger) (Storage, error) {
	switch storageType {
	case StorageTypeS3:
		return s3.GetClient(log)
	case StorageTypeMinio:
		return minio.GetClient(log)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
