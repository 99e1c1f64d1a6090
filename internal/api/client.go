// Package api is the console's HTTP client for the platform API. Every call
// runs through an ordered stage pipeline: request stages attach the bearer
// credential, response stages classify failures, show a single user-visible
// notification, and on an expired credential force a logout and a redirect to
// the login route. All failure branches re-raise a typed *Error so call sites
// can layer their own handling on top of the global side effects.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/clusterview-dev/clusterview/internal/model"
	"github.com/clusterview-dev/clusterview/internal/notify"
)

// TokenSource yields the current bearer credential, or "" when the session
// is unauthenticated. It must not block.
type TokenSource func() string

// Navigator is the slice of the navigation layer the pipeline needs for the
// expired-credential redirect.
type Navigator interface {
	// CurrentPath returns the full current location including query.
	CurrentPath() string
	// OnLoginRoute reports whether the user is already on the login view.
	OnLoginRoute() bool
	// RedirectToLogin navigates to the login route carrying the given
	// path as the pending navigation intent.
	RedirectToLogin(intent string)
}

// RequestStage mutates an outbound request before it is sent.
type RequestStage func(*http.Request)

// ResponseStage observes the outcome of a call and may replace it, typically
// converting a failure into a typed *Error after performing side effects.
type ResponseStage func(*http.Response, error) (*http.Response, error)

// Client represents an HTTP client for the platform API
type Client struct {
	baseURL    string
	httpClient *http.Client
	notifier   notify.Notifier
	log        zerolog.Logger

	tokens        TokenSource
	nav           Navigator
	onAuthExpired func()

	requestStages  []RequestStage
	responseStages []ResponseStage
}

// New creates a new API client. The baseURL includes the versioned API
// prefix (e.g. http://host:9440/api/v1).
func New(baseURL string, timeout time.Duration, notifier notify.Notifier, log zerolog.Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		notifier: notifier,
		log:      log,
	}
	c.requestStages = []RequestStage{c.attachBearer}
	c.responseStages = []ResponseStage{c.classify}
	return c
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BindSession wires the pipeline to the session layer: tokens supplies the
// credential attached to every request, onAuthExpired is invoked once when
// the backend rejects that credential.
func (c *Client) BindSession(tokens TokenSource, onAuthExpired func()) {
	c.tokens = tokens
	c.onAuthExpired = onAuthExpired
}

// BindNavigator wires the pipeline to the navigation layer for the
// expired-credential redirect. Without a navigator the redirect is skipped.
func (c *Client) BindNavigator(nav Navigator) {
	c.nav = nav
}

// attachBearer adds the Authorization header when a credential is present.
func (c *Client) attachBearer(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// classify maps a completed or failed call onto the failure taxonomy,
// performing the single user-visible notification per failing call. Success
// responses pass through untouched.
func (c *Client) classify(resp *http.Response, err error) (*http.Response, error) {
	if err != nil {
		// Request was sent but no response arrived
		apiErr := &Error{Kind: KindNetwork, Err: err}
		c.log.Debug().Err(err).Msg("request failed without a response")
		c.notifier.Error("network error, cannot reach server")
		return nil, apiErr
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	// Error bodies, when present, carry a message in the usual envelope.
	// Decoding is lenient: a missing or malformed body just means no message.
	defer resp.Body.Close()
	var envelope model.Response
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&envelope)

	apiErr := &Error{Status: resp.StatusCode, Message: envelope.Message}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = KindAuthExpired
		// During the login flow itself a 401 is the caller's problem;
		// notifying and redirecting there would loop.
		if c.nav == nil || !c.nav.OnLoginRoute() {
			c.notifier.Error("session expired, please log in again")
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			if c.nav != nil {
				c.nav.RedirectToLogin(c.nav.CurrentPath())
			}
		}
	case http.StatusForbidden:
		apiErr.Kind = KindPrivilegeDenied
		c.notifier.Error(messageOr(envelope.Message, "insufficient privilege"))
	case http.StatusNotFound:
		apiErr.Kind = KindResourceMissing
		c.notifier.Error(messageOr(envelope.Message, "resource not found"))
	case http.StatusInternalServerError:
		apiErr.Kind = KindServerFault
		c.notifier.Error(messageOr(envelope.Message, "internal server error, try again later"))
	default:
		apiErr.Kind = KindHTTP
		c.notifier.Error(messageOr(envelope.Message, fmt.Sprintf("request failed (%d)", resp.StatusCode)))
	}

	return nil, apiErr
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

// do runs one call through the stage pipeline and decodes the plain
// response envelope. The returned error, when non-nil, is always a *Error
// whose side effects have already run.
func (c *Client) do(ctx context.Context, method, path string, body any) (*model.Response, error) {
	var envelope model.Response
	if err := c.doInto(ctx, method, path, body, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// doInto runs one call through the stage pipeline and decodes the response
// body into envelope. Paged list endpoints pass a model.PageResponse here.
func (c *Client) doInto(ctx context.Context, method, path string, body, envelope any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.constructionFailure(fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.constructionFailure(fmt.Errorf("failed to create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, stage := range c.requestStages {
		stage(req)
	}

	resp, err := c.httpClient.Do(req)
	for _, stage := range c.responseStages {
		resp, err = stage(resp, err)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		return c.constructionFailure(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// constructionFailure notifies and wraps an error raised before or after the
// transport, outside the status-code taxonomy.
func (c *Client) constructionFailure(err error) *Error {
	c.notifier.Error("request error: " + err.Error())
	return &Error{Kind: KindRequest, Err: err}
}

// AsError unwraps err into the pipeline's typed *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
