package notes

import (
	"context"
	"errors"
	"slices"

	"github.com/aki/mknote/internal/core/listing"
)

// ErrEmptyClipboard is returned by Paste when nothing was copied or cut.
var ErrEmptyClipboard = errors.New("clipboard is empty")

type clipboard struct {
	entries []listing.Entry
	cut     bool
}

// CopyToClipboard remembers sel for a later Paste that copies.
func (e *Explorer) CopyToClipboard(sel Selection) {
	e.setClipboard(sel, false)
}

// Cut remembers sel for a later Paste that moves.
func (e *Explorer) Cut(sel Selection) {
	e.setClipboard(sel, true)
}

func (e *Explorer) setClipboard(sel Selection, cut bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clip = clipboard{entries: slices.Clone(sel), cut: cut}
}

// HasClipboard reports whether a Paste would do anything.
func (e *Explorer) HasClipboard() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.clip.entries) > 0
}

// Paste copies or moves the clipboard into target and clears the clipboard.
func (e *Explorer) Paste(ctx context.Context, target *listing.Entry) (BatchResult, error) {
	e.mu.Lock()
	clip := e.clip
	e.clip = clipboard{}
	e.mu.Unlock()

	if len(clip.entries) == 0 {
		return BatchResult{}, ErrEmptyClipboard
	}
	if clip.cut {
		return e.Move(ctx, target, clip.entries), nil
	}
	return e.Copy(ctx, target, clip.entries), nil
}
