// Package session owns the console's authentication state: the bearer token
// and the cached user profile, mirrored to a credential store so a restart
// reconstructs the session without re-authenticating.
package session

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog"

	"github.com/clusterview-dev/clusterview/internal/api"
	"github.com/clusterview-dev/clusterview/internal/credstore"
	"github.com/clusterview-dev/clusterview/internal/model"
)

// Manager is the single writer of session state. Only its methods mutate the
// token and profile; persistence writes are paired with the in-memory writes
// inside the same operation.
type Manager struct {
	store  credstore.Store
	client *api.Client
	log    zerolog.Logger

	token   string
	profile *model.Profile
}

// LoginResult is the outcome of a login attempt. Failures are recovered here
// and returned as a value; errors never escape the login boundary.
type LoginResult struct {
	Success bool
	Message string
}

// NewManager creates a manager seeded from the credential store. A corrupt
// persisted profile blob is treated as absent.
func NewManager(store credstore.Store, client *api.Client, log zerolog.Logger) *Manager {
	m := &Manager{store: store, client: client, log: log}

	if token, ok := store.Read(credstore.KeyToken); ok {
		m.token = token
	}
	if raw, ok := store.Read(credstore.KeyUserInfo); ok {
		var profile model.Profile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			m.profile = &profile
		} else {
			m.log.Warn().Err(err).Msg("discarding unreadable cached profile")
		}
	}
	return m
}

// Token returns the current bearer credential, "" when unauthenticated.
func (m *Manager) Token() string {
	return m.token
}

// Profile returns the cached profile, nil until fetched.
func (m *Manager) Profile() *model.Profile {
	return m.profile
}

// IsAuthenticated reports whether a bearer credential is held.
func (m *Manager) IsAuthenticated() bool {
	return m.token != ""
}

// HasPrivilege reports whether the cached profile grants the named
// privilege. A missing profile grants nothing.
func (m *Manager) HasPrivilege(name string) bool {
	if m.profile == nil {
		return false
	}
	return slices.Contains(m.profile.Privileges, name)
}

// Login authenticates against the backend. On success the token is stored in
// memory and in the credential store, then the profile is fetched
// best-effort. A structured rejection surfaces the backend's message; a
// transport failure surfaces a generic network message.
func (m *Manager) Login(ctx context.Context, username, password string) LoginResult {
	envelope, err := m.client.Login(ctx, username, password)
	if err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.Status > 0 {
			return LoginResult{Message: messageOr(apiErr.Message, "login failed")}
		}
		return LoginResult{Message: "network error, try again later"}
	}

	if !envelope.Success {
		return LoginResult{Message: messageOr(envelope.Message, "login failed")}
	}

	var data model.LoginResponse
	if err := json.Unmarshal(envelope.Data, &data); err != nil || data.Token == "" {
		m.log.Warn().Err(err).Msg("login succeeded but token payload was unreadable")
		return LoginResult{Message: "login failed"}
	}

	m.token = data.Token
	if err := m.store.Write(credstore.KeyToken, data.Token); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist token")
	}

	// Best-effort: a failed profile fetch never fails the login
	m.FetchProfile(ctx)

	return LoginResult{Success: true}
}

// FetchProfile refreshes the cached profile using the stored token. Failures
// are logged and leave existing state untouched; they never interrupt the
// caller's flow.
func (m *Manager) FetchProfile(ctx context.Context) {
	profile, err := m.client.UserInfo(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to fetch user profile")
		return
	}

	m.profile = profile
	raw, err := json.Marshal(profile)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to serialize profile")
		return
	}
	if err := m.store.Write(credstore.KeyUserInfo, string(raw)); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist profile")
	}
}

// Logout clears the session in memory and in the credential store. No
// network call; safe to call repeatedly.
func (m *Manager) Logout() {
	m.token = ""
	m.profile = nil
	if err := m.store.Erase(credstore.KeyToken); err != nil {
		m.log.Warn().Err(err).Msg("failed to erase token")
	}
	if err := m.store.Erase(credstore.KeyUserInfo); err != nil {
		m.log.Warn().Err(err).Msg("failed to erase profile")
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
