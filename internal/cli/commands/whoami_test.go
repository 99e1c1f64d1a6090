package commands

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clusterview-dev/clusterview/internal/api"
	"github.com/clusterview-dev/clusterview/internal/credstore"
	"github.com/clusterview-dev/clusterview/internal/nav"
	"github.com/clusterview-dev/clusterview/internal/notify"
	"github.com/clusterview-dev/clusterview/internal/session"
)

// newWhoamiApp wires the console graph against the given backend, seeding
// the credential store with token (when non-empty) but no cached profile.
func newWhoamiApp(t *testing.T, handler http.HandlerFunc, token string) (*App, *notify.Recorder, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	store := credstore.NewMemory()
	if token != "" {
		store.Write(credstore.KeyToken, token)
	}

	recorder := &notify.Recorder{}
	client := api.New(server.URL, 5*time.Second, recorder, zerolog.Nop())
	sess := session.NewManager(store, client, zerolog.Nop())
	navigator := nav.NewNavigator(nav.DefaultRoutes(), sess, zerolog.Nop())
	client.BindSession(sess.Token, sess.Logout)
	client.BindNavigator(navigator)

	app := &App{
		Store:    store,
		Notifier: recorder,
		Client:   client,
		Session:  sess,
		Nav:      navigator,
	}
	return app, recorder, server.Close
}

func TestRunWhoami_NotLoggedIn(t *testing.T) {
	app, _, cleanup := newWhoamiApp(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	defer cleanup()

	err := runWhoami(app)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("unexpected error: %v", err)
	}
}

// A stale token with no cached profile triggers a refresh whose 401 tears
// the session down; the command must report the expiry, not a live session.
func TestRunWhoami_ExpiredTokenDuringRefresh(t *testing.T) {
	app, recorder, cleanup := newWhoamiApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "invalid or expired token"}`))
	}, "stale-token")
	defer cleanup()

	err := runWhoami(app)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "session expired") {
		t.Errorf("unexpected error: %v", err)
	}
	if app.Session.IsAuthenticated() {
		t.Error("expected the session to be torn down")
	}
	if len(recorder.Messages) != 1 || recorder.Messages[0] != "session expired, please log in again" {
		t.Errorf("unexpected notifications: %v", recorder.Messages)
	}
}

func TestRunWhoami_CachedProfileNeedsNoRefresh(t *testing.T) {
	var infoCalls int
	app, _, cleanup := newWhoamiApp(t, func(w http.ResponseWriter, r *http.Request) {
		infoCalls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "ok", "data": {
			"user": {"id": "u-1", "username": "admin"},
			"roles": ["ADMIN"],
			"privileges": ["VIEW_CLUSTER"]
		}}`))
	}, "tok-abc")
	defer cleanup()

	// Prime the profile cache, then the command itself must not refetch
	app.Session.FetchProfile(cmdContext())
	if err := runWhoami(app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if infoCalls != 1 {
		t.Errorf("expected 1 profile fetch, got %d", infoCalls)
	}
}
