package workspace

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the named file does not exist.
	ErrNotFound = errors.New("workspace file not found")
	// ErrVirtualNotFound is the distinct not-found for the virtual fallback.
	ErrVirtualNotFound = fmt.Errorf("%w in virtual workspace", ErrNotFound)
	// ErrQuotaExceeded indicates the virtual store rejected a write.
	ErrQuotaExceeded = errors.New("workspace quota exceeded")
	// ErrSecurityRestricted indicates directory access was denied by the
	// host environment; the caller should surface this verbatim.
	ErrSecurityRestricted = errors.New("workspace directory access denied")
)

// Store is the storage capability shared by the real directory-backed
// workspace and the virtual fallback. The variant is selected once at
// setup time, never per call.
type Store interface {
	Write(ctx context.Context, name, content string) error
	Read(ctx context.Context, name string) (string, error)
}
