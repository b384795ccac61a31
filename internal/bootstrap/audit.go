package bootstrap

import "context"

type AuditLog struct {
	Action  string         `json:"action"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// AuditLogger records operational events that must survive log rotation
// policy decisions. The stdout implementation is the default.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
