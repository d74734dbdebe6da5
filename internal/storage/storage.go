package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Bucket prefixes for the different media kinds.
const (
	BucketPosts   = "posts"
	BucketStories = "stories"
	BucketAvatars = "avatars"
)

// ObjectStorage accepts raw media bytes plus a bucket name and returns a
// durable public URL. Implementations generate their own unique object key.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, fileName string, data []byte) (string, error)
}

// DecodeMedia decodes a base64 payload, tolerating a data-URL prefix
// ("data:image/jpeg;base64,...").
func DecodeMedia(fileData string) ([]byte, error) {
	if idx := strings.Index(fileData, ","); idx >= 0 {
		fileData = fileData[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(fileData)
	if err != nil {
		return nil, fmt.Errorf("decode media: %w", err)
	}
	return data, nil
}

// objectKey builds a unique object key preserving the original extension.
func objectKey(fileName string) string {
	ext := "jpg"
	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
		ext = fileName[idx+1:]
	}
	return uuid.NewString() + "." + ext
}
