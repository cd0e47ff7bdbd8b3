package mcpstdio

import (
	"fmt"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
)

// Standard JSON-RPC error codes, plus mnemo's own range, mirroring the
// teacher's internal/mcp.MapError split between protocol-standard and
// application-specific codes.
const (
	jsonRPCInvalidParams = -32602
	jsonRPCInternalError = -32603

	rpcNotFound    = -32001
	rpcConflict    = -32002
	rpcBusy        = -32003
	rpcUnavailable = -32004
)

// rpcError is the JSON-RPC-shaped error the MCP SDK serializes back to the
// client.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("mcp error %d: %s", e.Code, e.Message)
}

// mapError converts a *errors.MemError into the JSON-RPC error shape,
// preserving category so clients can distinguish retryable Busy from
// terminal Invalid/NotFound/Conflict.
func mapError(err error) error {
	me, ok := err.(*mnerr.MemError)
	if !ok {
		return &rpcError{Code: jsonRPCInternalError, Message: err.Error()}
	}

	switch me.Category {
	case mnerr.CategoryInvalid:
		return &rpcError{Code: jsonRPCInvalidParams, Message: me.Message}
	case mnerr.CategoryNotFound:
		return &rpcError{Code: rpcNotFound, Message: me.Message}
	case mnerr.CategoryConflict:
		return &rpcError{Code: rpcConflict, Message: me.Message}
	case mnerr.CategoryBusy:
		return &rpcError{Code: rpcBusy, Message: me.Message}
	case mnerr.CategoryUnavailable:
		return &rpcError{Code: rpcUnavailable, Message: me.Message}
	default:
		return &rpcError{Code: jsonRPCInternalError, Message: me.Message}
	}
}
