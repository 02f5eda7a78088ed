package mcp

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StructToToolOptions converts a struct with tags into MCP tool options.
// The struct should use tags like `json:"path" mcp:"required" description:"Workspace-relative path"`
func StructToToolOptions(structType interface{}) ([]mcp.ToolOption, error) {
	t := reflect.TypeOf(structType)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %v", t.Kind())
	}

	var toolOptions []mcp.ToolOption
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		fieldName, _, _ := strings.Cut(jsonTag, ",")

		description := field.Tag.Get("description")
		if description == "" {
			description = fmt.Sprintf("%s field", fieldName)
		}

		opts := []mcp.PropertyOption{mcp.Description(description)}
		if field.Tag.Get("mcp") == "required" {
			opts = append(opts, mcp.Required())
		}

		switch field.Type.Kind() { //nolint:exhaustive // Only handling types we support
		case reflect.String:
			// Enum values are a comma-separated list of JSON strings
			if enumTag := field.Tag.Get("enum"); enumTag != "" {
				var enumValues []string
				if err := json.Unmarshal([]byte("["+enumTag+"]"), &enumValues); err == nil {
					opts = append(opts, mcp.Enum(enumValues...))
				}
			}
			toolOptions = append(toolOptions, mcp.WithString(fieldName, opts...))

		case reflect.Int, reflect.Int64:
			toolOptions = append(toolOptions, mcp.WithNumber(fieldName, opts...))

		case reflect.Bool:
			toolOptions = append(toolOptions, mcp.WithBoolean(fieldName, opts...))

		case reflect.Slice:
			if field.Type.Elem().Kind() != reflect.String {
				return nil, fmt.Errorf("unsupported slice field %s", field.Name)
			}
			opts = append(opts, mcp.Items(map[string]any{"type": "string"}))
			toolOptions = append(toolOptions, mcp.WithArray(fieldName, opts...))

		default:
			continue
		}
	}

	return toolOptions, nil
}

// WithStructOptions is a helper that combines a description with struct-based options
func WithStructOptions(description string, structType interface{}) ([]mcp.ToolOption, error) {
	structOpts, err := StructToToolOptions(structType)
	if err != nil {
		return nil, err
	}
	return append([]mcp.ToolOption{mcp.WithDescription(description)}, structOpts...), nil
}

// UnmarshalArgs unmarshals CallToolRequest arguments into a struct
func UnmarshalArgs[T any](request mcp.CallToolRequest, target *T) error {
	jsonBytes, err := json.Marshal(request.GetArguments())
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal arguments to struct: %w", err)
	}
	return nil
}

// PathParams names one workspace entry
type PathParams struct {
	Path string `json:"path" mcp:"required" description:"Workspace-relative path, e.g. journal/2024-05-01.md"`
}

// ListParams defines parameters for listing a directory
type ListParams struct {
	Path string `json:"path,omitempty" description:"Workspace-relative directory (optional, defaults to the root)"`
}

// TreeParams defines parameters for the recursive listing
type TreeParams struct {
	Path  string `json:"path,omitempty" description:"Workspace-relative directory (optional, defaults to the root)"`
	Depth int    `json:"depth,omitempty" description:"Maximum depth, 0 for unlimited (optional)"`
}

// CreateParams defines parameters for creating a note or directory
type CreateParams struct {
	Name string `json:"name" mcp:"required" description:"Name of the new entry, without any path separator"`
	In   string `json:"in,omitempty" description:"Workspace-relative directory to create in; a file means its directory (optional)"`
}

// RenameParams defines parameters for renaming an entry in place
type RenameParams struct {
	Path string `json:"path" mcp:"required" description:"Workspace-relative path of the entry"`
	Name string `json:"name" mcp:"required" description:"New name within the same directory"`
}

// PathsParams names several workspace entries
type PathsParams struct {
	Paths []string `json:"paths" mcp:"required" description:"Workspace-relative paths"`
}

// TransferParams defines parameters for moving or copying entries
type TransferParams struct {
	Paths  []string `json:"paths" mcp:"required" description:"Workspace-relative paths to move or copy"`
	Target string   `json:"target,omitempty" description:"Destination directory; a file means its directory, empty means the root (optional)"`
}

// ReorderParams defines parameters for moving an entry within its list
type ReorderParams struct {
	Path      string `json:"path" mcp:"required" description:"Workspace-relative path of the entry"`
	Direction string `json:"direction" mcp:"required" enum:"\"up\",\"down\"" description:"Direction to move by one position"`
}
