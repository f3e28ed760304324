package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events that should survive in the
// log stream even when the structured application log is filtered.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
