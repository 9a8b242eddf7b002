package observability

import "context"

// EventEnvelope wraps an audit event published to the broker.
type EventEnvelope struct {
	EventType string      `json:"event_type"`
	EventName string      `json:"event_name"`
	Payload   interface{} `json:"payload"`
}

// AuditConn is the payload for websocket lifecycle audit events.
type AuditConn struct {
	ConnID     string `json:"conn_id"`
	IP         string `json:"ip"`
	RequestID  string `json:"request_id,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

const auditRoutingKey = "ws_events.hub"

// PublishAudit emits a websocket lifecycle event to the audit exchange.
// Publishing is best-effort; with no publisher configured it is a no-op.
func PublishAudit(ctx context.Context, name string, payload AuditConn) {
	_ = PublishEvent(ctx, auditRoutingKey, EventEnvelope{
		EventType: "ws_events",
		EventName: name,
		Payload:   payload,
	}, BuildHeaders(payload.RequestID, ""))
}

func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
