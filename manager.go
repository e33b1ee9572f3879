package goviewset

import (
	"context"
	"net/http"
)

// Payload is the decoded request body handed to an action.
type Payload map[string]any

// Result is the envelope an action returns. A non-empty result must carry a
// "status" key from the fixed vocabulary; a nil or empty result means
// "success, no content" and is passed through with a 200.
type Result map[string]any

// Status returns the value under the "status" key, or an empty Status when
// absent.
func (r Result) Status() Status {
	s, _ := r["status"].(string)
	return Status(s)
}

// ActionFunc is the implementation bound to a declared action method. It
// receives the request payload, the optional path-bound identifier and the
// declaration's extra configuration.
type ActionFunc func(ctx context.Context, payload Payload, pk string, extra map[string]any) (Result, error)

// ActionMethod declares a single manager operation exposed over HTTP:
// the allowed verbs, the bound implementation and optional extra
// configuration forwarded to it on every call.
type ActionMethod struct {
	Methods []string
	Handle  ActionFunc
	Extra   map[string]any
}

// Manager encapsulates the business-logic operations a viewset exposes. The
// declared table is read once at registration time to mount routes; the bound
// implementations are looked up on a fresh instance per request.
type Manager interface {
	ActionMethods() map[string]ActionMethod
}

// ManagerContext carries per-request context into a ManagerFactory.
type ManagerContext struct {
	Request *http.Request
	Params  map[string]string
}

// ManagerFactory instantiates a manager scoped to a single request. No state
// is shared between the instances it returns.
type ManagerFactory func(mctx ManagerContext) Manager
