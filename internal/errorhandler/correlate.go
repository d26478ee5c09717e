package errorhandler

// BoardIDHeader is the fallback header checked when neither the route nor the
// query string carries a board id.
const BoardIDHeader = "X-Board-Id"

// boardIDParam is the route/query parameter name bound by the board routes.
const boardIDParam = "boardId"

// BoardID resolves the board id a failing request was operating on, trying the
// route param first, then the query string, then the X-Board-Id header. The
// value is returned as provided by the source, without normalization. The
// second return is false when no source had a value.
func BoardID(snap RequestSnapshot) (string, bool) {
	if v, ok := snap.RouteParams[boardIDParam]; ok && v != "" {
		return v, true
	}
	if v := snap.Query.Get(boardIDParam); v != "" {
		return v, true
	}
	if v := snap.Header.Get(BoardIDHeader); v != "" {
		return v, true
	}
	return "", false
}
