package errorhandler

import (
	"regexp"
	"strconv"
)

// lineRE matches a source line number inside free-form stack text. The
// explicit "line N" form is the first alternative so it wins over a bare ":N"
// starting at the same position; otherwise the earliest match in the string is
// used.
var lineRE = regexp.MustCompile(`line\s+(\d+)|:(\d+)`)

// fileRE matches a path-ish token immediately preceding a line marker, e.g.
// "in /src/board.go:42" or "in /src/Handler.cs:line 17".
var fileRE = regexp.MustCompile(`(\S+?):(?:line\s+)?\d+`)

// sourceLine extracts a line number from stack text. Stack formats vary and
// none is guaranteed, so this is best effort: the second return is false when
// nothing usable is found, and a zero line is never fabricated.
func sourceLine(stack string) (int, bool) {
	if stack == "" {
		return 0, false
	}
	m := lineRE.FindStringSubmatch(stack)
	if m == nil {
		return 0, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// sourceFile extracts the token in front of the first line marker, best
// effort like sourceLine.
func sourceFile(stack string) (string, bool) {
	if stack == "" {
		return "", false
	}
	m := fileRE.FindStringSubmatch(stack)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}
