package mcp

import "strings"

// ToolDescription provides enhanced descriptions for AI agents
type ToolDescription struct {
	Description string
	WhenToUse   []string
	Examples    []string
	NextTools   []string
}

// Enhanced tool descriptions for better AI discoverability
var toolDescriptions = map[string]ToolDescription{
	"notes_list": {
		Description: "List one directory of the notes workspace in display order. Entries named in the directory's .sort file come first in that order, then directories, then files by name",
		WhenToUse: []string{
			"When you need the names in one folder, in the order the user sees them",
			"Before reordering, renaming or deleting, to confirm the exact name",
		},
		Examples: []string{
			`notes_list()`,
			`notes_list(path: "journal")`,
		},
		NextTools: []string{
			"notes_reorder - Change the position of an entry",
			"notes_create - Add a note to this directory",
		},
	},

	"notes_tree": {
		Description: "Show the workspace, or a directory in it, recursively in display order",
		WhenToUse: []string{
			"When you need an overview of how the notes are organised",
			"Instead of listing directories one by one",
		},
		Examples: []string{
			`notes_tree()`,
			`notes_tree(path: "projects", depth: 2)`,
		},
		NextTools: []string{
			"notes_list - Look at one directory in detail",
		},
	},

	"notes_create": {
		Description: "Create an empty note. The name must be a single path component",
		WhenToUse: []string{
			"When asked to start a new note",
		},
		Examples: []string{
			`notes_create(name: "todo.md")`,
			`notes_create(name: "2024-05-01.md", in: "journal")`,
		},
		NextTools: []string{
			"fav_add - Pin the new note",
			"notes_reorder - Move it to the right position",
		},
	},

	"notes_mkdir": {
		Description: "Create a directory in the workspace",
		Examples: []string{
			`notes_mkdir(name: "projects")`,
		},
		NextTools: []string{
			"notes_move - Move notes into it",
		},
	},

	"notes_rename": {
		Description: "Rename a note or directory within its directory. Its manual position and favourites follow the new name",
		Examples: []string{
			`notes_rename(path: "journal/draft.md", name: "final.md")`,
		},
	},

	"notes_delete": {
		Description: "Delete notes or directories recursively. This cannot be undone",
		WhenToUse: []string{
			"Only when explicitly asked to delete something",
		},
		Examples: []string{
			`notes_delete(paths: ["old.md", "archive/2019"])`,
		},
		NextTools: []string{
			"notes_list - Verify what is left",
		},
	},

	"notes_move": {
		Description: "Move entries into a directory. Entries whose name is already taken there are skipped and reported",
		Examples: []string{
			`notes_move(paths: ["a.md", "b.md"], target: "archive")`,
		},
		NextTools: []string{
			"notes_list - Check the target directory",
		},
	},

	"notes_copy": {
		Description: "Copy entries into a directory, recursively for directories. Entries whose name is already taken there are skipped",
		Examples: []string{
			`notes_copy(paths: ["template.md"], target: "journal")`,
		},
	},

	"notes_reorder": {
		Description: "Move an entry one position up or down in its directory's manual order. Moving past either end does nothing",
		Examples: []string{
			`notes_reorder(path: "journal/b.md", direction: "up")`,
		},
		NextTools: []string{
			"notes_list - See the new order",
		},
	},

	"fav_list": {
		Description: "List the workspace favourites in order. Favourites whose target is gone are dropped",
		NextTools: []string{
			"fav_add - Pin another entry",
			"fav_reorder - Change the order",
		},
	},

	"fav_add": {
		Description: "Add an entry to the favourites. Adding an existing favourite does nothing",
		Examples: []string{
			`fav_add(path: "projects/plan.md")`,
		},
	},

	"fav_remove": {
		Description: "Remove an entry from the favourites",
		Examples: []string{
			`fav_remove(path: "projects/plan.md")`,
		},
	},

	"fav_reorder": {
		Description: "Move a favourite one position up or down",
		Examples: []string{
			`fav_reorder(path: "todo.md", direction: "down")`,
		},
	},

	"notes_sync": {
		Description: "Commit all changes in the workspace repository, pull and push. Requires the workspace to be a git repository with a remote",
		WhenToUse: []string{
			"When asked to save, back up or synchronise the notes",
		},
	},
}

// GetEnhancedDescription returns the enhanced description for a tool
func GetEnhancedDescription(toolName string) string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(desc.Description)
	if len(desc.WhenToUse) > 0 {
		sb.WriteString("\n\nWHEN TO USE THIS TOOL:\n")
		for _, when := range desc.WhenToUse {
			sb.WriteString("- " + when + "\n")
		}
	}
	if len(desc.Examples) > 0 {
		sb.WriteString("\nEXAMPLES:\n")
		for _, example := range desc.Examples {
			sb.WriteString(example + "\n")
		}
	}
	return sb.String()
}

// GetNextToolSuggestions returns suggested next tools for a given tool
func GetNextToolSuggestions(toolName string) []map[string]string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return nil
	}
	suggestions := make([]map[string]string, 0, len(desc.NextTools))
	for _, next := range desc.NextTools {
		suggestions = append(suggestions, map[string]string{
			"tool": next,
		})
	}
	return suggestions
}
