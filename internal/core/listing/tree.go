package listing

import (
	"context"
	"path/filepath"
)

// Node is an Entry with its listed children.
type Node struct {
	Entry
	Children []Node `json:"children,omitempty"`
}

// Tree lists dir recursively down to depth levels (0 means unlimited). Each
// level is ordered exactly as List orders it. Directories reached twice
// through symlinks are not descended again.
func (e *Engine) Tree(ctx context.Context, dir string, depth int) ([]Node, error) {
	return e.tree(ctx, dir, depth, 1, map[string]bool{realPath(dir): true})
}

func (e *Engine) tree(ctx context.Context, dir string, depth, level int, seen map[string]bool) ([]Node, error) {
	entries, err := e.List(ctx, dir)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		node := Node{Entry: entry}
		if entry.IsDir() && (depth <= 0 || level < depth) {
			real := realPath(entry.Path)
			if !seen[real] {
				seen[real] = true
				children, err := e.tree(ctx, entry.Path, depth, level+1, seen)
				if err != nil {
					e.log.Warn("skipping unreadable directory", "path", entry.Path, "error", err)
				} else {
					node.Children = children
				}
			}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func realPath(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return filepath.Clean(p)
}
