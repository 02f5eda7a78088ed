package mcp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/filemanager"
)

func TestErrorWithSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantSuggest []string
	}{
		{
			name:        "entry not found",
			err:         EntryNotFoundError("todo.md"),
			wantMessage: "no such file or directory: todo.md",
			wantSuggest: []string{"notes_list", "notes_tree"},
		},
		{
			name:        "entry exists",
			err:         EntryExistsError("todo.md"),
			wantMessage: "already exists: todo.md",
			wantSuggest: []string{"notes_list", "notes_rename"},
		},
		{
			name:        "outside workspace",
			err:         OutsideWorkspaceError("../etc"),
			wantMessage: "path is outside the workspace: ../etc",
			wantSuggest: []string{"notes_tree"},
		},
		{
			name:        "invalid parameter",
			err:         InvalidParameterError("direction", "up or down"),
			wantMessage: "invalid direction: expected up or down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			if !strings.Contains(errStr, tt.wantMessage) {
				t.Errorf("expected error message to contain %q, got %q", tt.wantMessage, errStr)
			}
			for _, suggestion := range tt.wantSuggest {
				if !strings.Contains(errStr, suggestion) {
					t.Errorf("expected error to contain suggestion %q, got %q", suggestion, errStr)
				}
			}
		})
	}
}

func TestErrorWithSuggestions_NoSuggestions(t *testing.T) {
	err := NewErrorWithSuggestions("plain")
	if err.Error() != "plain" {
		t.Errorf("expected plain message, got %q", err.Error())
	}
}

func TestSuggestFor(t *testing.T) {
	notFound := fmt.Errorf("resolve: %w", filemanager.NewError(filemanager.KindNotFound, "stat", "/ws/x"))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", notFound, "no such file or directory: x"},
		{"exists", filemanager.ErrAlreadyExists, "already exists: x"},
		{"no location", notes.ErrNoLocation, "workspace location is not set"},
		{"outside", fmt.Errorf("x: %w", notes.ErrOutsideWorkspace), "outside the workspace"},
		{"invalid name", notes.ErrInvalidName, "invalid name"},
		{"workspace root", notes.ErrWorkspaceRoot, "below the workspace root"},
		{"into itself", fmt.Errorf("x: %w", notes.ErrIntoItself), "outside the directory"},
		{"other", errors.New("disk on fire"), "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestFor(tt.err, "x").Error()
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected %q to contain %q", got, tt.want)
			}
		})
	}
}
