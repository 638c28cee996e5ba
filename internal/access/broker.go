// Package access implements the Path Access Broker (spec.md §4 / §9): a
// scoped acquisition guard around a directory the rest of the pipeline
// treats as an opaque pair of acquire()/release() calls.
//
// On the platform this ships for (and in the original source this spec
// was distilled from), acquiring access to a user-chosen directory goes
// through a sandbox broker that can fail or be revoked independently of
// plain filesystem permissions. This package models that boundary: it
// verifies the directory is actually readable and writable before handing
// out a Token, and Release is safe to call unconditionally on every exit
// path (completion, error, or cancellation), matching the guard pattern
// spec.md §9 asks for.
package access

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ivoronin/mediasweep/internal/model"
)

// Token represents scoped access to a root directory. Its zero value is
// not valid; obtain one from Acquire.
type Token struct {
	root string

	mu       sync.Mutex
	released bool
}

// Root returns the directory this token grants access to.
func (t *Token) Root() string { return t.root }

// Acquire validates and claims scoped access to root, returning
// model.ErrAccessDenied (wrapped with the cause) if the directory cannot
// be read and written.
//
// Unlike a bare os.Stat, unix.Access checks the effective permission bits
// rather than just existence, so a root owned by another user surfaces as
// AccessDenied here instead of failing later, mid-scan, as an opaque
// WalkError.
func Acquire(root string) (*Token, error) {
	if err := unix.Access(root, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrAccessDenied, root, err)
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(root, &stat); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrAccessDenied, root, err)
	}
	if stat.Flags&unix.ST_RDONLY != 0 {
		return nil, fmt.Errorf("%w: %s: read-only filesystem", model.ErrAccessDenied, root)
	}

	return &Token{root: root}, nil
}

// Release frees the scoped access. Safe to call multiple times and on
// every exit path; only the first call has an effect.
func (t *Token) Release() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.released = true
}

// Released reports whether Release has been called.
func (t *Token) Released() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}
