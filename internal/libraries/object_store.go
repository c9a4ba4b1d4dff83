package libraries

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	// SnapshotContentType is the content type of rendered board images
	SnapshotContentType = "image/png"
	// snapshotCacheControl keeps widget caches at most a minute behind the latest upload
	snapshotCacheControl = "public, max-age=60"
)

// ObjectStore uploads bytes at a path and returns a public URL.
// Uploads to the same path overwrite the previous object and keep the same URL.
type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// SnapshotPath is the stable, per-user location of the board image
func SnapshotPath(userID uuid.UUID) string {
	return fmt.Sprintf("%s/board-snapshot.png", userID.String())
}
