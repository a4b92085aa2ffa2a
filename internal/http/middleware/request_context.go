package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/pestops-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxRequestIDLen = 64
)

// AttachRequestContext stamps every request with a request id and a trace id and echoes
// both back. Field apps retry offline syncs with the same X-Request-Id, so a well-formed
// client id is kept; anything else is replaced. The trace id prefers the active span so
// log lines join up with exported traces.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := cleanRequestID(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		traceID := requestTraceID(c)

		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			RequestID: reqID,
			TraceID:   traceID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

func requestTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if tid, err := trace.TraceIDFromHex(strings.TrimSpace(c.GetHeader(headerTraceID))); err == nil {
		return tid.String()
	}
	// A uuid without dashes is a valid W3C trace id.
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// cleanRequestID returns raw when it is a short token of letters, digits and ._:- and ""
// otherwise, so header junk never reaches the logs.
func cleanRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxRequestIDLen {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return ""
		}
	}
	return raw
}
