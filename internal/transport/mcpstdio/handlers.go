package mcpstdio

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mnemo-systems/mnemo/internal/logging"
	"github.com/mnemo-systems/mnemo/internal/tools"
)

func (s *Server) handleRemember(ctx context.Context, _ *mcp.CallToolRequest, in tools.RememberInput) (*mcp.CallToolResult, tools.RememberOutput, error) {
	call := logging.StartToolCall(s.logger, "remember", "")
	out, err := s.surface.Remember(ctx, in)
	if err != nil {
		call.Done("", err)
		return nil, tools.RememberOutput{}, mapError(err)
	}
	call.Done(out.MemoryID, nil)
	return nil, *out, nil
}

func (s *Server) handleRecall(ctx context.Context, _ *mcp.CallToolRequest, in tools.RecallInput) (*mcp.CallToolResult, tools.RecallOutput, error) {
	call := logging.StartToolCall(s.logger, "recall", "")
	out, err := s.surface.Recall(ctx, in)
	if err != nil {
		call.Done("", err)
		return nil, tools.RecallOutput{}, mapError(err)
	}
	call.Done("", nil)
	return nil, *out, nil
}

func (s *Server) handlePin(ctx context.Context, _ *mcp.CallToolRequest, in tools.PinInput) (*mcp.CallToolResult, tools.PinOutput, error) {
	call := logging.StartToolCall(s.logger, "pin", in.ID)
	out, err := s.surface.Pin(ctx, in)
	if err != nil {
		call.Done("", err)
		return nil, tools.PinOutput{}, mapError(err)
	}
	call.Done("", nil)
	return nil, *out, nil
}

func (s *Server) handleUnpin(ctx context.Context, _ *mcp.CallToolRequest, in tools.PinInput) (*mcp.CallToolResult, tools.PinOutput, error) {
	call := logging.StartToolCall(s.logger, "unpin", in.ID)
	out, err := s.surface.Unpin(ctx, in)
	if err != nil {
		call.Done("", err)
		return nil, tools.PinOutput{}, mapError(err)
	}
	call.Done("", nil)
	return nil, *out, nil
}

func (s *Server) handleForget(ctx context.Context, _ *mcp.CallToolRequest, in tools.ForgetInput) (*mcp.CallToolResult, tools.ForgetOutput, error) {
	call := logging.StartToolCall(s.logger, "forget", in.ID)
	out, err := s.surface.Forget(ctx, in)
	if err != nil {
		call.Done("", err)
		return nil, tools.ForgetOutput{}, mapError(err)
	}
	call.Done("", nil)
	return nil, *out, nil
}

func (s *Server) handleFeedback(ctx context.Context, _ *mcp.CallToolRequest, in tools.FeedbackInput) (*mcp.CallToolResult, tools.FeedbackOutput, error) {
	call := logging.StartToolCall(s.logger, "feedback", in.MemoryID)
	out, err := s.surface.Feedback(ctx, in)
	if err != nil {
		call.Done("", err)
		return nil, tools.FeedbackOutput{}, mapError(err)
	}
	call.Done("", nil)
	return nil, *out, nil
}
