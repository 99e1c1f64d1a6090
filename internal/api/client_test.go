package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clusterview-dev/clusterview/internal/api"
	"github.com/clusterview-dev/clusterview/internal/notify"
)

type fakeNavigator struct {
	current   string
	onLogin   bool
	redirects []string
}

func (f *fakeNavigator) CurrentPath() string { return f.current }
func (f *fakeNavigator) OnLoginRoute() bool  { return f.onLogin }
func (f *fakeNavigator) RedirectToLogin(intent string) {
	f.redirects = append(f.redirects, intent)
}

type clientFixture struct {
	client    *api.Client
	recorder  *notify.Recorder
	nav       *fakeNavigator
	loggedOut int
}

func newFixture(t *testing.T, handler http.HandlerFunc) (*clientFixture, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	fixture := &clientFixture{
		recorder: &notify.Recorder{},
		nav:      &fakeNavigator{current: "/clusters"},
	}
	fixture.client = api.New(server.URL, 5*time.Second, fixture.recorder, zerolog.Nop())
	fixture.client.BindSession(
		func() string { return "test-token" },
		func() { fixture.loggedOut++ },
	)
	fixture.client.BindNavigator(fixture.nav)

	return fixture, server.Close
}

func errorResponse(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if message != "" {
			w.Write([]byte(`{"success": false, "message": "` + message + `"}`))
		}
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	fixture, cleanup := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "message": "ok", "data": []}`))
	})
	defer cleanup()

	if _, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	fixture, cleanup := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{"success": true, "message": "ok", "data": []}`))
	})
	defer cleanup()

	fixture.client.BindSession(func() string { return "" }, nil)
	if _, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawHeader {
		t.Errorf("expected no authorization header, got %q", gotAuth)
	}
}

func TestClient_Classify401(t *testing.T) {
	fixture, cleanup := newFixture(t, errorResponse(http.StatusUnauthorized, "token expired"))
	defer cleanup()

	_, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{})
	if err == nil {
		t.Fatal("expected error to be re-raised to the caller")
	}

	apiErr, ok := api.AsError(err)
	if !ok {
		t.Fatalf("expected typed error, got %T: %v", err, err)
	}
	if apiErr.Kind != api.KindAuthExpired {
		t.Errorf("expected KindAuthExpired, got %v", apiErr.Kind)
	}
	if apiErr.Message != "token expired" {
		t.Errorf("expected backend message, got %q", apiErr.Message)
	}

	// Exactly one notification, one forced logout, one redirect carrying
	// the current path
	if len(fixture.recorder.Messages) != 1 || fixture.recorder.Messages[0] != "session expired, please log in again" {
		t.Errorf("unexpected notifications: %v", fixture.recorder.Messages)
	}
	if fixture.loggedOut != 1 {
		t.Errorf("expected 1 logout, got %d", fixture.loggedOut)
	}
	if len(fixture.nav.redirects) != 1 || fixture.nav.redirects[0] != "/clusters" {
		t.Errorf("unexpected redirects: %v", fixture.nav.redirects)
	}
}

func TestClient_401OnLoginRouteIsQuiet(t *testing.T) {
	fixture, cleanup := newFixture(t, errorResponse(http.StatusUnauthorized, "invalid credentials"))
	defer cleanup()

	fixture.nav.onLogin = true

	_, err := fixture.client.Login(context.Background(), "alice", "bad-pw")
	if err == nil {
		t.Fatal("expected error to be re-raised")
	}
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.Message != "invalid credentials" {
		t.Fatalf("expected typed error with backend message, got %v", err)
	}

	// No notification, no logout, no redirect during the login flow
	if len(fixture.recorder.Messages) != 0 {
		t.Errorf("expected no notifications, got %v", fixture.recorder.Messages)
	}
	if fixture.loggedOut != 0 {
		t.Errorf("expected no logout, got %d", fixture.loggedOut)
	}
	if len(fixture.nav.redirects) != 0 {
		t.Errorf("expected no redirects, got %v", fixture.nav.redirects)
	}
}

func TestClient_ClassifyStatuses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		message    string
		wantKind   api.Kind
		wantNotice string
	}{
		{"403 with message", http.StatusForbidden, "no access to cluster", api.KindPrivilegeDenied, "no access to cluster"},
		{"403 generic", http.StatusForbidden, "", api.KindPrivilegeDenied, "insufficient privilege"},
		{"404 with message", http.StatusNotFound, "cluster not found", api.KindResourceMissing, "cluster not found"},
		{"404 generic", http.StatusNotFound, "", api.KindResourceMissing, "resource not found"},
		{"500 with message", http.StatusInternalServerError, "db down", api.KindServerFault, "db down"},
		{"500 generic", http.StatusInternalServerError, "", api.KindServerFault, "internal server error, try again later"},
		{"other status", http.StatusBadGateway, "", api.KindHTTP, "request failed (502)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture, cleanup := newFixture(t, errorResponse(tt.status, tt.message))
			defer cleanup()

			_, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{})
			if err == nil {
				t.Fatal("expected error to be re-raised")
			}
			apiErr, ok := api.AsError(err)
			if !ok {
				t.Fatalf("expected typed error, got %T", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, apiErr.Kind)
			}
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if len(fixture.recorder.Messages) != 1 || fixture.recorder.Messages[0] != tt.wantNotice {
				t.Errorf("expected notice %q, got %v", tt.wantNotice, fixture.recorder.Messages)
			}
			// Only the 401 branch touches the session or navigation
			if fixture.loggedOut != 0 || len(fixture.nav.redirects) != 0 {
				t.Error("non-401 failure must not log out or redirect")
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	fixture, cleanup := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	// Close immediately so the request cannot reach a server
	cleanup()

	_, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.Kind != api.KindNetwork {
		t.Fatalf("expected KindNetwork, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("expected no status, got %d", apiErr.Status)
	}
	if len(fixture.recorder.Messages) != 1 || fixture.recorder.Messages[0] != "network error, cannot reach server" {
		t.Errorf("unexpected notifications: %v", fixture.recorder.Messages)
	}
}

func TestClient_ConstructionFailure(t *testing.T) {
	recorder := &notify.Recorder{}
	client := api.New("://not-a-url", 5*time.Second, recorder, zerolog.Nop())

	_, _, err := client.ListClusters(context.Background(), api.ListOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.Kind != api.KindRequest {
		t.Fatalf("expected KindRequest, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("expected no status, got %d", apiErr.Status)
	}

	// One notification carrying the underlying construction error
	if len(recorder.Messages) != 1 {
		t.Fatalf("expected 1 notification, got %v", recorder.Messages)
	}
	if !strings.HasPrefix(recorder.Messages[0], "request error: ") {
		t.Errorf("unexpected notification %q", recorder.Messages[0])
	}
}

func TestClient_ListForwardsPageSelection(t *testing.T) {
	var gotQuery url.Values
	fixture, cleanup := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success": true, "message": "ok", "data": [{"id": "c-2", "name": "staging"}], "total": 7, "page": 2, "page_size": 1}`))
	})
	defer cleanup()

	clusters, total, err := fixture.client.ListClusters(context.Background(), api.ListOptions{Page: 2, PageSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("page_size") != "1" {
		t.Errorf("unexpected query %v", gotQuery)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(clusters) != 1 || clusters[0].Name != "staging" {
		t.Errorf("unexpected page %+v", clusters)
	}
}

func TestClient_ListDefaultsSendNoPageQuery(t *testing.T) {
	var gotQuery url.Values
	fixture, cleanup := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success": true, "message": "ok", "data": [], "total": 0}`))
	})
	defer cleanup()

	if _, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotQuery) != 0 {
		t.Errorf("expected no query parameters, got %v", gotQuery)
	}
}

// countingTransport serves a canned success envelope, counting calls.
type countingTransport struct {
	calls int
}

func (ct *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ct.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"success": true, "message": "ok", "data": [], "total": 0}`)),
	}, nil
}

func TestClient_SetHTTPClientReplacesTransport(t *testing.T) {
	recorder := &notify.Recorder{}
	client := api.New("http://unreachable.invalid", 5*time.Second, recorder, zerolog.Nop())

	transport := &countingTransport{}
	client.SetHTTPClient(&http.Client{Transport: transport})

	if _, _, err := client.ListClusters(context.Background(), api.ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transport.calls != 1 {
		t.Errorf("expected the injected client to carry the call, got %d calls", transport.calls)
	}
	if len(recorder.Messages) != 0 {
		t.Errorf("unexpected notifications: %v", recorder.Messages)
	}
}

func TestClient_BusinessRejectionHasNoSideEffects(t *testing.T) {
	// A 2xx envelope with success=false is the call site's problem
	fixture, cleanup := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "nothing deployed yet"}`))
	})
	defer cleanup()

	_, _, err := fixture.client.ListClusters(context.Background(), api.ListOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := api.AsError(err); ok {
		t.Errorf("business rejection must not be a pipeline error: %v", err)
	}
	if len(fixture.recorder.Messages) != 0 {
		t.Errorf("expected no notifications, got %v", fixture.recorder.Messages)
	}
}
