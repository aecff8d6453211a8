// Package storage writes printable receipts to the local filesystem or to an
// S3 compatible bucket, chosen by RECEIPT_DISK.
package storage

import (
	"context"
	"fmt"

	"go-restaurant-pos/config"
)

// Disk is the receipt store.
type Disk interface {
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	// URL is where the stored file can be fetched from.
	URL(path string) string
}

// Open returns the disk named by RECEIPT_DISK.
func Open(ctx context.Context) (Disk, error) {
	switch name := config.ReceiptDisk(); name {
	case "local", "":
		return NewLocal(config.ReceiptLocalRoot()), nil
	case "s3":
		return NewS3(ctx, config.S3Settings())
	default:
		return nil, fmt.Errorf("storage: unknown disk %q", name)
	}
}
