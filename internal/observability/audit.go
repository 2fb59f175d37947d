package observability

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const auditEventVersion = 1

// AuditInput carries the caller-provided part of an audit event.
type AuditInput struct {
	EventName  string
	Actor      string
	TargetType string
	TargetID   string
	Action     string
	Outcome    string
	Reason     string
}

// AuditEvent is the structured record emitted for every catalog write.
type AuditEvent struct {
	EventID      string `json:"event_id"`
	EventVersion int    `json:"event_version"`
	EventName    string `json:"event_name"`
	Actor        string `json:"actor"`
	ActorIP      string `json:"actor_ip"`
	TargetType   string `json:"target_type"`
	TargetID     string `json:"target_id"`
	Action       string `json:"action"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason"`
	RequestID    string `json:"request_id"`
	TS           string `json:"ts"`
}

func BuildAuditEvent(r *http.Request, in AuditInput) AuditEvent {
	return AuditEvent{
		EventID:      uuid.NewString(),
		EventVersion: auditEventVersion,
		EventName:    in.EventName,
		Actor:        defaultString(in.Actor, "api_token"),
		ActorIP:      clientIP(r),
		TargetType:   in.TargetType,
		TargetID:     defaultString(in.TargetID, "unknown"),
		Action:       in.Action,
		Outcome:      in.Outcome,
		Reason:       defaultString(in.Reason, "none"),
		RequestID:    requestID(r),
		TS:           time.Now().UTC().Format(time.RFC3339),
	}
}

func (e AuditEvent) Validate() error {
	var missing []string
	for name, v := range map[string]string{
		"event_id":    e.EventID,
		"event_name":  e.EventName,
		"actor":       e.Actor,
		"target_type": e.TargetType,
		"action":      e.Action,
		"outcome":     e.Outcome,
		"ts":          e.TS,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if e.EventVersion != auditEventVersion {
		return errors.New("audit event: unsupported event_version")
	}
	if len(missing) > 0 {
		return errors.New("audit event: missing " + strings.Join(missing, ","))
	}
	return nil
}

// EmitAudit logs a catalog audit event at info level.
func EmitAudit(r *http.Request, in AuditInput) {
	ev := BuildAuditEvent(r, in)
	if err := ev.Validate(); err != nil {
		slog.WarnContext(r.Context(), "audit event dropped", "error", err, "event_name", in.EventName)
		return
	}
	slog.InfoContext(r.Context(), "audit",
		"event_id", ev.EventID,
		"event_version", ev.EventVersion,
		"event_name", ev.EventName,
		"actor", ev.Actor,
		"actor_ip", ev.ActorIP,
		"target_type", ev.TargetType,
		"target_id", ev.TargetID,
		"action", ev.Action,
		"outcome", ev.Outcome,
		"reason", ev.Reason,
		"request_id", ev.RequestID,
		"ts", ev.TS,
	)
}

func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return defaultString(r.Header.Get("X-Request-Id"), "unknown")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return defaultString(strings.TrimSpace(r.RemoteAddr), "unknown")
	}
	return host
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
