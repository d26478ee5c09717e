package errorhandler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// RequestSnapshot is a read-only copy of the request details needed for
// diagnostic reporting. It is captured on the request goroutine, before any
// background work starts, because the underlying *http.Request is recycled
// by the server once the response is written.
type RequestSnapshot struct {
	Path        string
	Method      string
	UserAgent   string
	RouteParams map[string]string
	Query       url.Values
	Header      http.Header
}

// Snapshot copies the relevant request state out of r. Route params come from
// the chi routing context when one is present.
func Snapshot(r *http.Request) RequestSnapshot {
	snap := RequestSnapshot{
		Path:        r.URL.Path,
		Method:      r.Method,
		UserAgent:   r.UserAgent(),
		RouteParams: make(map[string]string),
		Query:       cloneValues(r.URL.Query()),
		Header:      r.Header.Clone(),
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			snap.RouteParams[key] = rctx.URLParams.Values[i]
		}
	}

	return snap
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, vals := range v {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
