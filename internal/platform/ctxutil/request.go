package ctxutil

import "context"

type requestDataKey struct{}

// RequestData is the per-request identity: correlation ids stamped at the edge and, when
// the auth gate is enabled, the technician or office user behind the call.
type RequestData struct {
	RequestID string
	TraceID   string
	Subject   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// WithSubject returns ctx carrying a copy of its request data with Subject set. The
// correlation ids already on ctx are kept.
func WithSubject(ctx context.Context, subject string) context.Context {
	var rd RequestData
	if cur := GetRequestData(ctx); cur != nil {
		rd = *cur
	}
	rd.Subject = subject
	return WithRequestData(ctx, &rd)
}

// RequestID returns the correlation id of the request in ctx, or "" outside a request.
func RequestID(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.RequestID
	}
	return ""
}
