package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	listURIPrefix = "mknote://list"
	treeURI       = "mknote://tree"
	favouritesURI = "mknote://favourites"
)

// listURI is the resource URI of a workspace-relative directory
func listURI(rel string) string {
	if rel == "" || rel == "." {
		return listURIPrefix
	}
	return listURIPrefix + "/" + rel
}

// registerResources registers all MCP resources
func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		treeURI,
		"Workspace Tree",
		mcp.WithResourceDescription("The whole notes workspace in display order"),
		mcp.WithMIMEType("application/json"),
	), s.handleTreeResource)

	s.mcpServer.AddResource(mcp.NewResource(
		favouritesURI,
		"Favourites",
		mcp.WithResourceDescription("Workspace favourites in order"),
		mcp.WithMIMEType("application/json"),
	), s.handleFavouritesResource)

	s.mcpServer.AddResource(mcp.NewResource(
		listURIPrefix,
		"Workspace Root",
		mcp.WithResourceDescription("The workspace root directory in display order"),
		mcp.WithMIMEType("application/json"),
	), s.handleListResource)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
		listURIPrefix+"/{+path}",
		"Directory Listing",
		mcp.WithTemplateDescription("One workspace directory in display order"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.handleListResource)
}

func jsonContents(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func (s *Server) handleTreeResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	nodes, err := s.tree(ctx, "", 0)
	if err != nil {
		return nil, suggestFor(err, "")
	}
	return jsonContents(request.Params.URI, nodes)
}

func (s *Server) handleFavouritesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	favs, err := s.favourites(ctx)
	if err != nil {
		return nil, suggestFor(err, "")
	}
	return jsonContents(request.Params.URI, favs)
}

func (s *Server) handleListResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, listURIPrefix) {
		return nil, fmt.Errorf("unexpected resource uri: %s", uri)
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(uri, listURIPrefix), "/")

	entries, err := s.listDir(ctx, rel)
	if err != nil {
		return nil, suggestFor(err, rel)
	}
	return jsonContents(uri, entries)
}
