package storage

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// MemoryReportArchive keeps exported reports in memory.
// It backs development setups where object storage is disabled, and tests.
type MemoryReportArchive struct {
	BaseURL string
	Expiry  time.Duration

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryReportArchive creates an empty in-memory archive
func NewMemoryReportArchive() *MemoryReportArchive {
	return &MemoryReportArchive{
		BaseURL: "http://localhost/reports",
		Expiry:  15 * time.Minute,
		objects: make(map[string]memoryObject),
	}
}

// Put stores a copy of data under key
func (m *MemoryReportArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// DownloadURL returns a pseudo link carrying its expiry
func (m *MemoryReportArchive) DownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	expiresAt := time.Now().Add(m.Expiry)
	u := m.BaseURL + "/" + key + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339))
	return u, expiresAt, nil
}

// Get returns the stored object
func (m *MemoryReportArchive) Get(key string) (data []byte, contentType string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}

var _ ReportArchive = (*MemoryReportArchive)(nil)
