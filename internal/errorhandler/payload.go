package errorhandler

import "time"

// DiagnosticPayload is the wire shape POSTed to the collector endpoint. Field
// names match the collector's ingestion contract; optional fields marshal as
// null when absent.
type DiagnosticPayload struct {
	BoardID        *string         `json:"boardId"`
	Timestamp      string          `json:"timestamp"`
	File           *string         `json:"file"`
	Line           *int            `json:"line"`
	StackTrace     *string         `json:"stackTrace"`
	Message        string          `json:"message"`
	ExceptionType  string          `json:"exceptionType"`
	RequestPath    string          `json:"requestPath"`
	RequestMethod  string          `json:"requestMethod"`
	UserAgent      string          `json:"userAgent"`
	InnerException *InnerException `json:"innerException"`
}

// InnerException summarizes a wrapped failure one level deep.
type InnerException struct {
	Message    string  `json:"message"`
	Type       string  `json:"type"`
	StackTrace *string `json:"stackTrace"`
}

// buildPayload assembles the diagnostic payload from a captured failure and
// request snapshot. Every optional field degrades to null rather than a
// fabricated value.
func buildPayload(snap RequestSnapshot, event FailureEvent) DiagnosticPayload {
	p := DiagnosticPayload{
		Timestamp:     event.OccurredAt.Format(time.RFC3339),
		Message:       event.Err.Error(),
		ExceptionType: typeName(event.Err),
		RequestPath:   snap.Path,
		RequestMethod: snap.Method,
		UserAgent:     snap.UserAgent,
	}

	if id, ok := BoardID(snap); ok {
		p.BoardID = &id
	}
	if event.Stack != "" {
		p.StackTrace = &event.Stack
	}
	if line, ok := sourceLine(event.Stack); ok {
		p.Line = &line
	}
	if file, ok := sourceFile(event.Stack); ok {
		p.File = &file
	}
	if inner := event.Inner(); inner != nil {
		p.InnerException = &InnerException{
			Message: inner.Error(),
			Type:    typeName(inner),
		}
	}

	return p
}
