package errorhandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestBoardID_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		route   string
		query   string
		header  string
		want    string
		wantOK  bool
	}{
		{
			name:   "route wins over query and header",
			route:  "from-route",
			query:  "from-query",
			header: "from-header",
			want:   "from-route",
			wantOK: true,
		},
		{
			name:   "query wins over header",
			query:  "from-query",
			header: "from-header",
			want:   "from-query",
			wantOK: true,
		},
		{
			name:   "header is the last resort",
			header: "from-header",
			want:   "from-header",
			wantOK: true,
		},
		{
			name:   "absent everywhere",
			wantOK: false,
		},
		{
			name:   "value is returned raw",
			header: "  MiXeD-Case-42  ",
			want:   "  MiXeD-Case-42  ",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotWithBoardID(t, tt.route, tt.query, tt.header)

			got, ok := BoardID(snap)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("BoardID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoardID_EmptyRouteValueFallsThrough(t *testing.T) {
	snap := snapshotWithBoardID(t, "", "from-query", "")
	got, ok := BoardID(snap)
	if !ok || got != "from-query" {
		t.Errorf("BoardID = %q, %v; want from-query, true", got, ok)
	}
}

// snapshotWithBoardID builds a RequestSnapshot through a real chi route so
// the route param arrives the same way it does in production.
func snapshotWithBoardID(t *testing.T, routeVal, queryVal, headerVal string) RequestSnapshot {
	t.Helper()

	var snap RequestSnapshot
	router := chi.NewRouter()
	router.Get("/boards/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		snap = Snapshot(r)
	})
	router.Get("/plain", func(w http.ResponseWriter, r *http.Request) {
		snap = Snapshot(r)
	})

	target := "/plain"
	if routeVal != "" {
		target = "/boards/" + routeVal
	}
	if queryVal != "" {
		target += "?boardId=" + queryVal
	}

	req := httptest.NewRequest("GET", target, nil)
	if headerVal != "" {
		req.Header.Set(BoardIDHeader, headerVal)
	}
	router.ServeHTTP(httptest.NewRecorder(), req)

	return snap
}
