package errorhandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestSnapshot_CopiesRequestState(t *testing.T) {
	req := httptest.NewRequest("PUT", "/boards/b-3/cards/9?boardId=q-3&view=full", nil)
	req.Header.Set("User-Agent", "kanban-app/2.1")
	req.Header.Set("X-Board-Id", "h-3")

	snap := Snapshot(req)

	if snap.Path != "/boards/b-3/cards/9" {
		t.Errorf("Path = %q", snap.Path)
	}
	if snap.Method != "PUT" {
		t.Errorf("Method = %q", snap.Method)
	}
	if snap.UserAgent != "kanban-app/2.1" {
		t.Errorf("UserAgent = %q", snap.UserAgent)
	}
	if got := snap.Query.Get("view"); got != "full" {
		t.Errorf("Query[view] = %q", got)
	}
	if got := snap.Header.Get("X-Board-Id"); got != "h-3" {
		t.Errorf("Header[X-Board-Id] = %q", got)
	}
}

func TestSnapshot_IndependentOfLiveRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/boards/b-5?boardId=before", nil)
	req.Header.Set("X-Board-Id", "before")

	snap := Snapshot(req)

	// Mutate the live request after capture; the snapshot must not move.
	req.Header.Set("X-Board-Id", "after")
	req.URL.RawQuery = "boardId=after"

	if got := snap.Header.Get("X-Board-Id"); got != "before" {
		t.Errorf("snapshot header changed with live request: %q", got)
	}
	if got := snap.Query.Get("boardId"); got != "before" {
		t.Errorf("snapshot query changed with live request: %q", got)
	}
}

func TestSnapshot_RouteParams(t *testing.T) {
	var snap RequestSnapshot
	router := chi.NewRouter()
	router.Get("/boards/{boardId}/cards/{cardId}", func(w http.ResponseWriter, r *http.Request) {
		snap = Snapshot(r)
	})

	req := httptest.NewRequest("GET", "/boards/b-8/cards/c-2", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if snap.RouteParams["boardId"] != "b-8" {
		t.Errorf("RouteParams[boardId] = %q", snap.RouteParams["boardId"])
	}
	if snap.RouteParams["cardId"] != "c-2" {
		t.Errorf("RouteParams[cardId] = %q", snap.RouteParams["cardId"])
	}
}

func TestSnapshot_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/anything", nil)
	snap := Snapshot(req)

	if len(snap.RouteParams) != 0 {
		t.Errorf("RouteParams = %v, want empty outside a router", snap.RouteParams)
	}
}
