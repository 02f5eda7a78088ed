package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/core/command"
	"github.com/aki/mknote/internal/core/git"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/core/ordering"
)

// entryInfo is the common structure for entry information
type entryInfo struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Type  string `json:"type"`
	Size  int64  `json:"size"`
	Mtime string `json:"mtime"`
}

type nodeInfo struct {
	entryInfo
	Children []nodeInfo `json:"children,omitempty"`
}

type batchInfo struct {
	Succeeded []string `json:"succeeded"`
	Skipped   []string `json:"skipped,omitempty"`
	Failed    []string `json:"failed,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type toolDef struct {
	name        string
	params      interface{}
	readOnly    bool
	destructive bool
	handler     server.ToolHandlerFunc
}

// registerTools registers all mknote tools
func (s *Server) registerTools() error {
	tools := []toolDef{
		{name: "notes_list", params: ListParams{}, readOnly: true, handler: s.handleList},
		{name: "notes_tree", params: TreeParams{}, readOnly: true, handler: s.handleTree},
		{name: "notes_create", params: CreateParams{}, handler: s.handleCreate(app.CmdNewItem, "notes_create")},
		{name: "notes_mkdir", params: CreateParams{}, handler: s.handleCreate(app.CmdNewGroup, "notes_mkdir")},
		{name: "notes_rename", params: RenameParams{}, handler: s.handleRename},
		{name: "notes_delete", params: PathsParams{}, destructive: true, handler: s.handleDelete},
		{name: "notes_move", params: TransferParams{}, handler: s.handleTransfer(app.CmdMove, "notes_move")},
		{name: "notes_copy", params: TransferParams{}, handler: s.handleTransfer(app.CmdCopy, "notes_copy")},
		{name: "notes_reorder", params: ReorderParams{}, handler: s.handleReorder(app.CmdMoveUp, app.CmdMoveDown, "notes_reorder")},
		{name: "fav_list", params: struct{}{}, readOnly: true, handler: s.handleFavList},
		{name: "fav_add", params: PathParams{}, handler: s.handleFavourite(app.CmdFavAdd, "fav_add")},
		{name: "fav_remove", params: PathParams{}, handler: s.handleFavourite(app.CmdFavRemove, "fav_remove")},
		{name: "fav_reorder", params: ReorderParams{}, handler: s.handleReorder(app.CmdFavMoveUp, app.CmdFavMoveDown, "fav_reorder")},
		{name: "notes_sync", params: struct{}{}, handler: s.handleSync},
	}

	for _, tool := range tools {
		opts, err := WithStructOptions(GetEnhancedDescription(tool.name), tool.params)
		if err != nil {
			return fmt.Errorf("failed to create %s options: %w", tool.name, err)
		}
		opts = append(opts,
			mcp.WithReadOnlyHintAnnotation(tool.readOnly),
			mcp.WithDestructiveHintAnnotation(tool.destructive),
		)
		s.mcpServer.AddTool(mcp.NewTool(tool.name, opts...), tool.handler)
	}
	return nil
}

func (s *Server) entryInfo(e listing.Entry) entryInfo {
	return entryInfo{
		Name:  e.Name,
		Path:  s.c.Explorer.Rel(e.Path),
		Type:  e.Type.String(),
		Size:  e.Stat.Size,
		Mtime: time.UnixMilli(e.Stat.MtimeMillis).UTC().Format(time.RFC3339),
	}
}

func (s *Server) entryInfos(entries []listing.Entry) []entryInfo {
	infos := make([]entryInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, s.entryInfo(e))
	}
	return infos
}

func (s *Server) nodeInfos(nodes []listing.Node) []nodeInfo {
	infos := make([]nodeInfo, 0, len(nodes))
	for _, n := range nodes {
		infos = append(infos, nodeInfo{entryInfo: s.entryInfo(n.Entry), Children: s.nodeInfos(n.Children)})
	}
	return infos
}

func (s *Server) relAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, s.c.Explorer.Rel(p))
	}
	return out
}

// listDir returns one directory in display order; shared with the list resource
func (s *Server) listDir(ctx context.Context, rel string) ([]entryInfo, error) {
	dir, err := s.c.Explorer.Abs(rel)
	if err != nil {
		return nil, err
	}
	entries, err := s.c.Engine.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	return s.entryInfos(entries), nil
}

// tree returns the recursive listing; shared with the tree resource
func (s *Server) tree(ctx context.Context, rel string, depth int) ([]nodeInfo, error) {
	dir, err := s.c.Explorer.Abs(rel)
	if err != nil {
		return nil, err
	}
	nodes, err := s.c.Engine.Tree(ctx, dir, depth)
	if err != nil {
		return nil, err
	}
	return s.nodeInfos(nodes), nil
}

// favourites returns the favourite entries; shared with the favourites resource
func (s *Server) favourites(ctx context.Context) ([]entryInfo, error) {
	entries, err := s.c.Favourites.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return s.entryInfos(entries), nil
}

// Tool handlers

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ListParams
	if err := UnmarshalArgs(request, &params); err != nil {
		return nil, err
	}

	entries, err := s.listDir(ctx, params.Path)
	if err != nil {
		return errorResult(err, params.Path), nil
	}
	return createEnhancedResult("notes_list", entries, nil)
}

func (s *Server) handleTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params TreeParams
	if err := UnmarshalArgs(request, &params); err != nil {
		return nil, err
	}

	nodes, err := s.tree(ctx, params.Path, params.Depth)
	if err != nil {
		return errorResult(err, params.Path), nil
	}
	return createEnhancedResult("notes_tree", nodes, nil)
}

func (s *Server) handleCreate(cmd, tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params CreateParams
		if err := UnmarshalArgs(request, &params); err != nil {
			return nil, err
		}

		result, err := s.c.Commands.RunResult(ctx, cmd, command.Args{
			app.ArgName: params.Name,
			app.ArgIn:   params.In,
		})
		if err != nil {
			return errorResult(err, params.Name), nil
		}
		p, _ := result.(string)
		return createEnhancedResult(tool, map[string]string{"path": s.c.Explorer.Rel(p)}, nil)
	}
}

func (s *Server) handleRename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params RenameParams
	if err := UnmarshalArgs(request, &params); err != nil {
		return nil, err
	}

	result, err := s.c.Commands.RunResult(ctx, app.CmdRename, command.Args{
		app.ArgPath: params.Path,
		app.ArgName: params.Name,
	})
	if err != nil {
		return errorResult(err, params.Path), nil
	}
	p, _ := result.(string)
	return createEnhancedResult("notes_rename", map[string]string{"path": s.c.Explorer.Rel(p)}, nil)
}

// batchResult reports a batch outcome; partial failures are flagged as errors
// but still list what succeeded.
func (s *Server) batchResult(tool string, result any, err error, path string) (*mcp.CallToolResult, error) {
	res, ok := result.(notes.BatchResult)
	if !ok {
		return errorResult(err, path), nil
	}

	info := batchInfo{
		Succeeded: s.relAll(res.Succeeded),
		Skipped:   s.relAll(res.Skipped),
		Failed:    s.relAll(res.Failed),
	}
	if res.Err != nil {
		info.Error = res.Err.Error()
	}
	out, rerr := createEnhancedResult(tool, info, nil)
	if rerr != nil {
		return nil, rerr
	}
	out.IsError = res.Err != nil
	return out, nil
}

func firstPath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params PathsParams
	if err := UnmarshalArgs(request, &params); err != nil {
		return nil, err
	}
	if len(params.Paths) == 0 {
		return errorResult(InvalidParameterError("paths", "at least one path"), ""), nil
	}

	// Agents confirm through the client, so the server never prompts
	result, err := s.c.Commands.RunResult(ctx, app.CmdDelete, command.Args{
		app.ArgPaths: params.Paths,
		app.ArgYes:   true,
	})
	return s.batchResult("notes_delete", result, err, firstPath(params.Paths))
}

func (s *Server) handleTransfer(cmd, tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params TransferParams
		if err := UnmarshalArgs(request, &params); err != nil {
			return nil, err
		}
		if len(params.Paths) == 0 {
			return errorResult(InvalidParameterError("paths", "at least one path"), ""), nil
		}

		result, err := s.c.Commands.RunResult(ctx, cmd, command.Args{
			app.ArgPaths:  params.Paths,
			app.ArgTarget: params.Target,
		})
		return s.batchResult(tool, result, err, firstPath(params.Paths))
	}
}

func (s *Server) handleReorder(upCmd, downCmd, tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params ReorderParams
		if err := UnmarshalArgs(request, &params); err != nil {
			return nil, err
		}
		direction, err := ordering.ParseDirection(params.Direction)
		if err != nil {
			return errorResult(InvalidParameterError("direction", "up or down"), params.Path), nil
		}

		cmd := upCmd
		if direction == ordering.Down {
			cmd = downCmd
		}
		result, err := s.c.Commands.RunResult(ctx, cmd, command.Args{app.ArgPath: params.Path})
		if err != nil {
			return errorResult(err, params.Path), nil
		}
		moved, _ := result.(bool)
		return createEnhancedResult(tool, map[string]any{"path": params.Path, "moved": moved}, nil)
	}
}

func (s *Server) handleFavList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	favs, err := s.favourites(ctx)
	if err != nil {
		return errorResult(err, ""), nil
	}
	return createEnhancedResult("fav_list", favs, nil)
}

func (s *Server) handleFavourite(cmd, tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params PathParams
		if err := UnmarshalArgs(request, &params); err != nil {
			return nil, err
		}

		if _, err := s.c.Commands.RunResult(ctx, cmd, command.Args{app.ArgPath: params.Path}); err != nil {
			return errorResult(err, params.Path), nil
		}
		list, err := s.c.Favourites.List(ctx)
		if err != nil {
			return errorResult(err, params.Path), nil
		}
		return createEnhancedResult(tool, map[string]any{"favourites": list}, nil)
	}
}

func (s *Server) handleSync(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.c.Commands.RunResult(ctx, app.CmdSync, nil)
	if err != nil {
		return errorResult(err, s.c.Location()), nil
	}
	res, _ := result.(*git.SyncResult)
	return createEnhancedResult("notes_sync", res, nil)
}
