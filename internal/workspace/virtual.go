package workspace

import (
	"context"
	"fmt"
	"sync"
)

const (
	virtualKeyPrefix = "workspace:"

	// DefaultVirtualQuota bounds the total bytes the fallback store accepts.
	DefaultVirtualQuota = 5 << 20
)

// sampleURLsName is the only file seeded into a fresh virtual workspace.
// Everything else must be supplied explicitly by the caller.
const sampleURLsName = "job-urls.txt"

const sampleURLsContent = "https://jobs.example.com/postings/backend-engineer-4821\n" +
	"https://boards.example.org/acme/senior-platform-engineer\n" +
	"https://careers.example.net/roles/data-engineer-remote\n"

// VirtualStore is the in-memory fallback used when real directory access
// is unavailable. Entries are kept under name-prefixed keys and bounded
// by a byte quota.
type VirtualStore struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
}

// NewVirtualStore constructs a VirtualStore seeded with the sample URL list.
func NewVirtualStore(quota int) *VirtualStore {
	if quota <= 0 {
		quota = DefaultVirtualQuota
	}
	s := &VirtualStore{
		data:  make(map[string]string),
		quota: quota,
	}
	s.data[virtualKeyPrefix+sampleURLsName] = sampleURLsContent
	return s
}

// Write stores content under the prefixed key. Writes that would push the
// store past its quota fail with ErrQuotaExceeded and leave any prior
// content for the name untouched.
func (s *VirtualStore) Write(ctx context.Context, name, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := virtualKeyPrefix + name
	used := 0
	for k, v := range s.data {
		if k != key {
			used += len(v)
		}
	}
	if used+len(content) > s.quota {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, name)
	}
	s.data[key] = content
	return nil
}

// Read looks up the prefixed key.
func (s *VirtualStore) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.data[virtualKeyPrefix+name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrVirtualNotFound, name)
	}
	return content, nil
}
