package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestStructToToolOptions(t *testing.T) {
	tests := []struct {
		name        string
		structType  interface{}
		expectError bool
		checkFields []string
		required    []string
	}{
		{
			name:        "CreateParams",
			structType:  CreateParams{},
			checkFields: []string{"name", "in"},
			required:    []string{"name"},
		},
		{
			name:        "TransferParams",
			structType:  TransferParams{},
			checkFields: []string{"paths", "target"},
			required:    []string{"paths"},
		},
		{
			name:        "ReorderParams",
			structType:  &ReorderParams{},
			checkFields: []string{"path", "direction"},
			required:    []string{"path", "direction"},
		},
		{
			name:       "empty struct",
			structType: struct{}{},
		},
		{
			name:        "not a struct",
			structType:  "path",
			expectError: true,
		},
		{
			name: "unsupported slice",
			structType: struct {
				Depths []int `json:"depths"`
			}{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := StructToToolOptions(tt.structType)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tool := mcp.NewTool("test", opts...)
			if len(tool.InputSchema.Properties) != len(tt.checkFields) {
				t.Fatalf("expected %d properties, got %v", len(tt.checkFields), tool.InputSchema.Properties)
			}
			for _, field := range tt.checkFields {
				if _, ok := tool.InputSchema.Properties[field]; !ok {
					t.Errorf("missing property %q", field)
				}
			}
			if len(tool.InputSchema.Required) != len(tt.required) {
				t.Errorf("expected required %v, got %v", tt.required, tool.InputSchema.Required)
			}
		})
	}
}

func TestStructToToolOptions_Enum(t *testing.T) {
	opts, err := StructToToolOptions(ReorderParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tool := mcp.NewTool("test", opts...)

	prop, ok := tool.InputSchema.Properties["direction"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected property type %T", tool.InputSchema.Properties["direction"])
	}
	enum, ok := prop["enum"].([]string)
	if !ok || len(enum) != 2 || enum[0] != "up" || enum[1] != "down" {
		t.Errorf("unexpected enum %v", prop["enum"])
	}
}

func TestUnmarshalArgs(t *testing.T) {
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "notes_tree",
			Arguments: map[string]interface{}{
				"path":  "journal",
				"depth": float64(2),
			},
		},
	}

	var params TreeParams
	if err := UnmarshalArgs(req, &params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Path != "journal" || params.Depth != 2 {
		t.Errorf("unexpected params %+v", params)
	}
}
