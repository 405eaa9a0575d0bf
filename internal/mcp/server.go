package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"studio_create_model": {
		def:     createModelToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreateModel },
	},
	"studio_apply_garment": {
		def:     applyGarmentToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleApplyGarment },
	},
	"studio_remove_garment": {
		def:     removeGarmentToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRemoveGarment },
	},
	"studio_select_pose": {
		def:     selectPoseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSelectPose },
	},
	"studio_next_pose": {
		def:     nextPoseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNextPose },
	},
	"studio_previous_pose": {
		def:     previousPoseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePreviousPose },
	},
	"studio_undo": {
		def:     undoToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUndo },
	},
	"studio_redo": {
		def:     redoToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRedo },
	},
	"studio_state": {
		def:     stateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleState },
	},
	"studio_wardrobe": {
		def:     wardrobeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWardrobe },
	},
	"studio_reset": {
		def:     resetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReset },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the studio tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration. The
// server owns one implicit try-on session shared by every tool call.
func NewServer(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"fitform",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(catalog, client, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config, version string) error {
	s := NewServer(catalog, client, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
