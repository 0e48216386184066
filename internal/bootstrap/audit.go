package bootstrap

import "context"

// AuditLog is one operational audit entry (startup, shutdown, config
// anomalies). Domain events go through kafka, not here.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
