// Package storage archives exported reports in object storage.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyKey is returned when an object key is blank
var ErrEmptyKey = errors.New("storage key is required")

// ReportArchive stores exported report files and hands out download links
type ReportArchive interface {
	// Put stores data under key
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// DownloadURL returns a time-limited link to the object under key
	DownloadURL(ctx context.Context, key string) (url string, expiresAt time.Time, err error)
}
