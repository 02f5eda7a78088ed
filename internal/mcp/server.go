// Package mcp exposes the mknote workspace to AI agents over the Model Context
// Protocol.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/core/watch"
)

// Server implements the MCP server using mcp-go
type Server struct {
	mcpServer *server.MCPServer
	c         *app.Container
	log       logger.Logger
}

// NewServer creates a server backed by the container's workspace
func NewServer(c *app.Container, version string) (*Server, error) {
	mcpServer := server.NewMCPServer(
		"mknote",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, true),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		c:         c,
		log:       logger.Component(c.Logger, "mcp"),
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerResources()

	return s, nil
}

// ServeStdio serves the protocol on stdin/stdout until ctx is done. Workspace
// events are forwarded to clients as resource notifications.
func (s *Server) ServeStdio(ctx context.Context) error {
	ch, cancel := s.c.Events.Subscribe(64)
	defer cancel()
	go s.forward(ctx, ch)

	return server.NewStdioServer(s.mcpServer).Listen(ctx, os.Stdin, os.Stdout)
}

// Watch starts a filesystem watcher on the workspace so that changes made by
// other programs reach clients too. It returns once the watcher is running.
func (s *Server) Watch(ctx context.Context) error {
	root := s.c.Location()
	if root == "" {
		return notes.ErrNoLocation
	}
	w, err := watch.New(root, s.c.Events,
		watch.WithSkip(s.c.Engine.IsReserved),
		watch.WithLogger(s.c.Logger),
	)
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			s.log.Warn("watcher stopped", "error", err)
		}
	}()
	return nil
}

func (s *Server) forward(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			for _, n := range s.notificationsFor(ev) {
				s.log.Debug("notify", "method", n.Method, "params", n.Params)
				s.mcpServer.SendNotificationToAllClients(n.Method, n.Params)
			}
		}
	}
}

// notification is one MCP notification derived from a workspace event
type notification struct {
	Method string
	Params map[string]any
}

const (
	methodResourceUpdated     = "notifications/resources/updated"
	methodResourceListChanged = "notifications/resources/list_changed"
)

func (s *Server) notificationsFor(ev events.Event) []notification {
	switch ev.Type {
	case events.ListingChanged:
		rel := ""
		if ev.Path != "" {
			rel = s.c.Explorer.Rel(ev.Path)
		}
		return []notification{
			{Method: methodResourceUpdated, Params: map[string]any{"uri": listURI(rel)}},
			{Method: methodResourceUpdated, Params: map[string]any{"uri": treeURI}},
		}
	case events.FavouritesChanged:
		return []notification{
			{Method: methodResourceUpdated, Params: map[string]any{"uri": favouritesURI}},
		}
	case events.LocationChanged:
		return []notification{{Method: methodResourceListChanged}}
	}
	return nil
}
