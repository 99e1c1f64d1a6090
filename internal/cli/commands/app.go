package commands

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/clusterview-dev/clusterview/internal/api"
	"github.com/clusterview-dev/clusterview/internal/config"
	"github.com/clusterview-dev/clusterview/internal/credstore"
	"github.com/clusterview-dev/clusterview/internal/logger"
	"github.com/clusterview-dev/clusterview/internal/nav"
	"github.com/clusterview-dev/clusterview/internal/notify"
	"github.com/clusterview-dev/clusterview/internal/session"
)

// App bundles the assembled console: configuration, credential store,
// session manager, API client pipeline and navigator, wired together once
// per command invocation.
type App struct {
	Cfg      *config.Config
	Log      zerolog.Logger
	Store    credstore.Store
	Notifier notify.Notifier
	Client   *api.Client
	Session  *session.Manager
	Nav      *nav.Navigator
}

// newApp loads configuration and wires the session, pipeline and navigator.
// The session manager is the only writer of session state; the pipeline and
// navigator hold narrow references to it.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewTerminal()
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, notifier, log)
	if cfg.API.TLSSkipVerify {
		client.SetHTTPClient(&http.Client{
			Timeout: cfg.API.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // Accept self-signed certificates
				},
			},
		})
	}
	sess := session.NewManager(store, client, log)
	navigator := nav.NewNavigator(nav.DefaultRoutes(), sess, log)

	// Close the loop: the pipeline reads the session's token on the way
	// out and forces a logout plus login redirect on an expired credential
	client.BindSession(sess.Token, sess.Logout)
	client.BindNavigator(navigator)

	return &App{
		Cfg:      cfg,
		Log:      log,
		Store:    store,
		Notifier: notifier,
		Client:   client,
		Session:  sess,
		Nav:      navigator,
	}, nil
}

func openStore(cfg *config.Config) (credstore.Store, error) {
	switch cfg.API.CredentialBackend {
	case "keyring":
		return credstore.NewKeyring(), nil
	case "file", "":
		store, err := credstore.NewFile("")
		if err != nil {
			return nil, fmt.Errorf("failed to open credential store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q (use file or keyring)", cfg.API.CredentialBackend)
	}
}

// requireView navigates to a protected console path before a view command
// runs; an unauthenticated session is redirected to login and the command
// stops with a hint.
func (a *App) requireView(path string) error {
	decision := a.Nav.Navigate(path)
	if !decision.Allowed {
		return fmt.Errorf("not logged in. Please run 'clusterview login' first")
	}
	return nil
}
