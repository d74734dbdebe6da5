package storage

import (
	"context"
	"fmt"
	"log"
)

// NewStorageFromConfig creates an ObjectStorage implementation based on the
// configured storage type.
func NewStorageFromConfig(ctx context.Context, storageType string, s3cfg S3Config) (ObjectStorage, error) {
	switch storageType {
	case "s3":
		return NewS3Storage(ctx, s3cfg)
	case "memory", "":
		log.Println("WARNING: using in-memory object storage, uploaded media will not survive a restart")
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
