package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/mknote/internal/core/git"
	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/filemanager"
)

// ErrorWithSuggestions represents an error with tool suggestions
type ErrorWithSuggestions struct {
	Message     string
	Suggestions []string
}

// Error returns the error message with suggestions
func (e *ErrorWithSuggestions) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}

	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString("\n\nDid you mean to use one of these tools instead?\n")
	for _, suggestion := range e.Suggestions {
		sb.WriteString("  - ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}

// NewErrorWithSuggestions creates a new error with tool suggestions
func NewErrorWithSuggestions(message string, suggestions ...string) error {
	return &ErrorWithSuggestions{
		Message:     message,
		Suggestions: suggestions,
	}
}

// EntryNotFoundError returns an error with suggestions for a missing path
func EntryNotFoundError(path string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("no such file or directory: %s", path),
		"notes_list - List a directory to find the right name",
		"notes_tree - Show the whole workspace",
	)
}

// EntryExistsError returns an error with suggestions for a taken name
func EntryExistsError(path string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("already exists: %s", path),
		"notes_list - Check the names already in use",
		"notes_rename - Rename the existing entry first",
	)
}

// NoLocationError returns an error for an unconfigured workspace
func NoLocationError() error {
	return NewErrorWithSuggestions(
		"workspace location is not set; run 'mknote location <path>' first",
	)
}

// OutsideWorkspaceError returns an error for paths escaping the root
func OutsideWorkspaceError(path string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("path is outside the workspace: %s", path),
		"notes_tree - Paths are relative to the workspace root",
	)
}

// InvalidParameterError returns an error with suggestions for invalid parameters
func InvalidParameterError(param string, expected string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("invalid %s: expected %s", param, expected),
		"Use the tool descriptions to understand parameter requirements",
	)
}

// suggestFor maps domain errors to errors with suggestions. Unknown errors are
// returned unchanged.
func suggestFor(err error, path string) error {
	switch {
	case errors.Is(err, notes.ErrNoLocation):
		return NoLocationError()
	case errors.Is(err, notes.ErrOutsideWorkspace):
		return OutsideWorkspaceError(path)
	case errors.Is(err, filemanager.ErrNotFound):
		return EntryNotFoundError(path)
	case errors.Is(err, filemanager.ErrAlreadyExists):
		return EntryExistsError(path)
	case errors.Is(err, notes.ErrWorkspaceRoot):
		return NewErrorWithSuggestions(err.Error(), "Pass a path below the workspace root")
	case errors.Is(err, notes.ErrIntoItself):
		return NewErrorWithSuggestions(err.Error(), "Choose a target outside the directory being moved or copied")
	case errors.Is(err, notes.ErrInvalidName):
		return InvalidParameterError("name", "a single path component that is not reserved (.sort, .favourite)")
	case errors.Is(err, git.ErrNotRepository):
		return NewErrorWithSuggestions(err.Error(), "Initialise the workspace as a git repository, or clone one with 'mknote clone'")
	}
	return err
}

// errorResult reports a failed operation to the client as a tool error
func errorResult(err error, path string) *mcp.CallToolResult {
	return mcp.NewToolResultError(suggestFor(err, path).Error())
}
