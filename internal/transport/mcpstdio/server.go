// Package mcpstdio binds tools.Surface to the Model Context Protocol over
// stdio, so mnemo is addressable as JSON-RPC methods (spec section 6).
// Grounded on the teacher's internal/mcp.Server: mcp.NewServer +
// mcp.AddTool registration, mcp.StdioTransport for Run.
package mcpstdio

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mnemo-systems/mnemo/internal/tools"
	"github.com/mnemo-systems/mnemo/pkg/version"
)

// Server wraps an MCP server bound to a tools.Surface.
type Server struct {
	mcp     *mcp.Server
	surface *tools.Surface
	logger  *slog.Logger
}

// New builds the MCP server and registers every tool from spec section 4.11.
func New(surface *tools.Surface, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		surface: surface,
		logger:  logger,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "mnemo",
			Version: version.Version,
		}, nil),
	}

	s.registerTools()
	return s
}

// Run serves the MCP protocol over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remember",
		Description: "Store a new memory: content, optional type/tags/importance/source/privacy_scope. Returns the assigned memory id.",
	}, s.handleRemember)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "recall",
		Description: "Search memories by hybrid lexical+vector relevance, with optional filters by id/type/tags/privacy_scope/time range/pinned.",
	}, s.handleRecall)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "pin",
		Description: "Pin one or a batch of memories so the forgetting sweep never hard-deletes them.",
	}, s.handlePin)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "unpin",
		Description: "Unpin one or a batch of memories. Unpinning a memory with importance above 0.8 requires confirm=true.",
	}, s.handleUnpin)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "forget",
		Description: "Soft- or hard-delete a memory by id. Pinned memories reject hard delete.",
	}, s.handleForget)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "feedback",
		Description: "Record helpful/not-helpful feedback for a memory, feeding the review scheduler's helpful/not-helpful counts.",
	}, s.handleFeedback)

	s.logger.Info("mcp tools registered", slog.Int("count", 6))
}
