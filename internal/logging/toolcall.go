package logging

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"
)

// ToolCall tracks one in-flight remember/recall/pin/unpin/forget/feedback
// invocation so every transport logs the same started/completed/failed
// shape with a request id and duration, mirroring the teacher's per-tool
// logging in internal/mcp/server.go's handle*Tool methods.
type ToolCall struct {
	logger    *slog.Logger
	tool      string
	memoryID  string
	requestID string
	start     time.Time
}

// StartToolCall logs the start of a tool invocation and returns a handle
// to close out with Done once the call finishes.
func StartToolCall(logger *slog.Logger, tool, memoryID string) *ToolCall {
	if logger == nil {
		logger = slog.Default()
	}
	requestID := newRequestID()
	logger.Info("tool call started",
		slog.String("tool", tool),
		slog.String("request_id", requestID),
		slog.String("memory_id", memoryID))
	return &ToolCall{logger: logger, tool: tool, memoryID: memoryID, requestID: requestID, start: time.Now()}
}

// Done logs completion or failure, including duration. When the call
// assigned or discovered a memory id only after starting (e.g. remember
// minting a new one), pass it as memoryID; an empty string keeps the one
// StartToolCall was given.
func (t *ToolCall) Done(memoryID string, err error) {
	if memoryID != "" {
		t.memoryID = memoryID
	}
	duration := time.Since(t.start)
	if err != nil {
		t.logger.Error("tool call failed",
			slog.String("tool", t.tool),
			slog.String("request_id", t.requestID),
			slog.String("memory_id", t.memoryID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return
	}
	t.logger.Info("tool call completed",
		slog.String("tool", t.tool),
		slog.String("request_id", t.requestID),
		slog.String("memory_id", t.memoryID),
		slog.Duration("duration", duration))
}

func newRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
