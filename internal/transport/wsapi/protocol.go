package wsapi

import (
	"context"
	"encoding/json"
	"time"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
	"github.com/mnemo-systems/mnemo/internal/tools"
)

// request/response mirror JSON-RPC 2.0 shape closely enough for clients
// that already speak it, while staying a plain framing format rather
// than a full JSON-RPC implementation (no batch requests, no notifications).
type request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type response struct {
	ID     string    `json:"id"`
	Result any       `json:"result,omitempty"`
	Error  *rpcFault `json:"error,omitempty"`
}

type rpcFault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInternalError  = -32603

	codeNotFound    = -32001
	codeConflict    = -32002
	codeBusy        = -32003
	codeUnavailable = -32004

	requestTimeout = 30 * time.Second
)

// dispatch routes a framed request to the matching tools.Surface method,
// decoding params into that method's typed input and encoding its typed
// output, the same method-name switch the teacher's mcp transport wraps
// around mcp.AddTool registrations.
func dispatch(surface *tools.Surface, req request) response {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch req.Method {
	case "remember":
		return call(ctx, req, surface.Remember)
	case "recall":
		return call(ctx, req, surface.Recall)
	case "pin":
		return call(ctx, req, surface.Pin)
	case "unpin":
		return call(ctx, req, surface.Unpin)
	case "forget":
		return call(ctx, req, surface.Forget)
	case "feedback":
		return call(ctx, req, surface.Feedback)
	default:
		return response{ID: req.ID, Error: &rpcFault{Code: codeMethodNotFound, Message: "unknown method: " + req.Method}}
	}
}

func call[In any, Out any](ctx context.Context, req request, fn func(context.Context, In) (*Out, error)) response {
	var in In
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &in); err != nil {
			return response{ID: req.ID, Error: &rpcFault{Code: codeInvalidParams, Message: "malformed params for " + req.Method}}
		}
	}

	out, err := fn(ctx, in)
	if err != nil {
		return response{ID: req.ID, Error: faultFrom(err)}
	}
	return response{ID: req.ID, Result: out}
}

func faultFrom(err error) *rpcFault {
	me, ok := err.(*mnerr.MemError)
	if !ok {
		return &rpcFault{Code: codeInternalError, Message: err.Error()}
	}

	switch me.Category {
	case mnerr.CategoryInvalid:
		return &rpcFault{Code: codeInvalidParams, Message: me.Message}
	case mnerr.CategoryNotFound:
		return &rpcFault{Code: codeNotFound, Message: me.Message}
	case mnerr.CategoryConflict:
		return &rpcFault{Code: codeConflict, Message: me.Message}
	case mnerr.CategoryBusy:
		return &rpcFault{Code: codeBusy, Message: me.Message}
	case mnerr.CategoryUnavailable:
		return &rpcFault{Code: codeUnavailable, Message: me.Message}
	default:
		return &rpcFault{Code: codeInternalError, Message: me.Message}
	}
}
