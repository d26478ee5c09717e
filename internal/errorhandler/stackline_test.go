package errorhandler

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestSourceLine(t *testing.T) {
	tests := []struct {
		name   string
		stack  string
		want   int
		wantOK bool
	}{
		{
			name:   "explicit line token",
			stack:  "at Foo.Bar() in /src/Foo.cs:line 42",
			want:   42,
			wantOK: true,
		},
		{
			name:   "bare colon digits",
			stack:  "at Foo.Bar() in /src/Foo.cs:17",
			want:   17,
			wantOK: true,
		},
		{
			name:   "explicit form preferred when overlapping",
			stack:  "in /src/Foo.cs:line 42 and later /src/Bar.cs:99",
			want:   42,
			wantOK: true,
		},
		{
			name:   "first match wins across the whole string",
			stack:  "frame one /a/b.go:10\nframe two /c/d.go:20",
			want:   10,
			wantOK: true,
		},
		{
			name:  "no digits after marker or colon",
			stack: "at Foo.Bar() in Foo.cs:line abc",
		},
		{
			name:  "no markers at all",
			stack: "something went wrong somewhere",
		},
		{
			name:  "empty input",
			stack: "",
		},
		{
			name:   "go runtime stack format",
			stack:  "goroutine 7 [running]:\nmain.work()\n\t/src/app/main.go:42 +0x1b",
			want:   42,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sourceLine(tt.stack)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("sourceLine = %d, want %d", got, tt.want)
			}
			if !tt.wantOK && got != 0 {
				t.Errorf("absent result must carry zero value, got %d", got)
			}
		})
	}
}

func TestSourceFile(t *testing.T) {
	tests := []struct {
		name   string
		stack  string
		want   string
		wantOK bool
	}{
		{
			name:   "path before explicit line token",
			stack:  "at Foo.Bar() in /src/Foo.cs:line 42",
			want:   "/src/Foo.cs",
			wantOK: true,
		},
		{
			name:   "path before bare line number",
			stack:  "\t/src/app/main.go:42 +0x1b",
			want:   "/src/app/main.go",
			wantOK: true,
		},
		{
			name:  "nothing path-like",
			stack: "just words",
		},
		{
			name:  "empty input",
			stack: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sourceFile(tt.stack)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("sourceFile = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceLine_RealStack(t *testing.T) {
	stack := string(debug.Stack())
	if !strings.Contains(stack, ".go:") {
		t.Skip("unexpected stack format")
	}

	line, ok := sourceLine(stack)
	if !ok {
		t.Fatal("expected a line number from a live stack")
	}
	if line <= 0 {
		t.Errorf("line = %d, want positive", line)
	}
}
