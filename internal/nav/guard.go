package nav

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// productTitle is the fallback window title for routes without one.
const productTitle = "ClusterView Console"

// AuthState is the slice of the session layer the guard consults. Checks are
// local-state only; the guard never re-validates the token over the network.
type AuthState interface {
	IsAuthenticated() bool
}

// Decision is the terminal outcome of one attempted transition.
type Decision struct {
	// Allowed reports whether the requested transition proceeded.
	Allowed bool
	// Target is the location the navigator ended up at. On a denied
	// transition this is the login route carrying the requested path as
	// the redirect query parameter.
	Target string
	// Title is the resolved view title after the transition.
	Title string
}

// Navigator tracks the current location and runs the guard on every
// transition. A denied transition is fully aborted: the navigator lands on
// the login route and the protected target is never committed.
type Navigator struct {
	routes []Route
	auth   AuthState
	log    zerolog.Logger

	currentPath  string
	currentName  string
	currentTitle string
}

// NewNavigator creates a navigator positioned at the root.
func NewNavigator(routes []Route, auth AuthState, log zerolog.Logger) *Navigator {
	return &Navigator{
		routes:       routes,
		auth:         auth,
		log:          log,
		currentPath:  "/",
		currentTitle: productTitle,
	}
}

// Navigate attempts a transition to target (a path, optionally with query).
// Public routes are always allowed; protected routes require an
// authenticated session, otherwise the navigator redirects to the login
// route with target as the pending navigation intent.
func (n *Navigator) Navigate(target string) Decision {
	path := target
	if u, err := url.Parse(target); err == nil {
		path = u.Path
	}

	chain := Match(n.routes, path)
	if !RequiresAuth(chain) || n.auth.IsAuthenticated() {
		n.commit(target, chain)
		return Decision{Allowed: true, Target: target, Title: n.currentTitle}
	}

	n.log.Debug().Str("target", target).Msg("unauthenticated access to protected route, redirecting to login")
	redirect := loginRedirect(target)
	n.commit(redirect, Match(n.routes, LoginPath))
	return Decision{Allowed: false, Target: redirect, Title: n.currentTitle}
}

// commit records the new location and resolves the view title.
func (n *Navigator) commit(location string, chain []*Route) {
	n.currentPath = location
	n.currentName = ""
	n.currentTitle = productTitle
	if len(chain) == 0 {
		return
	}

	leaf := chain[len(chain)-1]
	n.currentName = leaf.Name
	// Title comes from the innermost matched route that declares one
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Title != "" {
			n.currentTitle = chain[i].Title + " - " + productTitle
			return
		}
	}
}

// CurrentPath returns the full current location including query.
func (n *Navigator) CurrentPath() string {
	return n.currentPath
}

// CurrentRoute returns the name of the current route, "" when unmatched.
func (n *Navigator) CurrentRoute() string {
	return n.currentName
}

// CurrentTitle returns the resolved title of the current view.
func (n *Navigator) CurrentTitle() string {
	return n.currentTitle
}

// OnLoginRoute reports whether the current location is the login view.
func (n *Navigator) OnLoginRoute() bool {
	path := n.currentPath
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	return strings.TrimSuffix(path, "/") == LoginPath
}

// RedirectToLogin navigates to the login route carrying intent as the
// pending navigation intent. Used by the HTTP pipeline when the backend
// rejects the session's credential mid-flight.
func (n *Navigator) RedirectToLogin(intent string) {
	n.commit(loginRedirect(intent), Match(n.routes, LoginPath))
}

func loginRedirect(intent string) string {
	query := url.Values{"redirect": {intent}}
	return LoginPath + "?" + query.Encode()
}
