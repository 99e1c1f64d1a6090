// Package nav is the console's navigation layer: a static route tree with
// per-route metadata and a guard that decides, before every transition,
// whether the target view may render.
package nav

import "strings"

// Route is a node in the route tree. Path is a pattern relative to the
// parent: one or more segments, ":name" matching any single segment, "" for
// the index child, "*" for the top-level catch-all. RequiresAuth left unset
// means the route is protected; routes opt out explicitly.
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth *bool
	Children     []Route
}

// LoginPath is the public login route.
const LoginPath = "/login"

var (
	public    = false
	protected = true
)

// DefaultRoutes is the console's route tree: a public login view, a
// protected subtree of monitoring views, and a public catch-all.
func DefaultRoutes() []Route {
	return []Route{
		{
			Path:         LoginPath,
			Name:         "Login",
			Title:        "Sign In",
			RequiresAuth: &public,
		},
		{
			Path:         "/",
			RequiresAuth: &protected,
			Children: []Route{
				{Path: "", Name: "Dashboard", Title: "Dashboard"},
				{Path: "clusters", Name: "Clusters", Title: "Clusters"},
				{Path: "clusters/:id", Name: "ClusterDetail", Title: "Cluster Detail"},
				{Path: "hosts", Name: "Hosts", Title: "Hosts"},
				{Path: "hosts/:id", Name: "HostDetail", Title: "Host Detail"},
				{Path: "services", Name: "Services", Title: "Services"},
				{Path: "services/:id", Name: "ServiceDetail", Title: "Service Detail"},
				{Path: "monitor", Name: "Monitor", Title: "Monitoring"},
				{Path: "alerts", Name: "Alerts", Title: "Alerts"},
				{Path: "logs", Name: "Logs", Title: "Logs"},
				{Path: "settings", Name: "Settings", Title: "Settings"},
			},
		},
		{
			Path:         "*",
			Name:         "NotFound",
			Title:        "Page Not Found",
			RequiresAuth: &public,
		},
	}
}

// Match resolves a path against the route tree and returns the matched
// chain, outermost route first. Unmatched paths fall through to the
// catch-all route when one is declared.
func Match(routes []Route, path string) []*Route {
	segments := splitPath(path)

	var catchAll *Route
	for i := range routes {
		route := &routes[i]
		if route.Path == "*" {
			catchAll = route
			continue
		}
		if chain := matchRoute(route, segments); chain != nil {
			return chain
		}
	}
	if catchAll != nil {
		return []*Route{catchAll}
	}
	return nil
}

func matchRoute(route *Route, segments []string) []*Route {
	pattern := splitPath(route.Path)
	if len(pattern) > len(segments) {
		return nil
	}
	for i, p := range pattern {
		if !matchSegment(p, segments[i]) {
			return nil
		}
	}

	rest := segments[len(pattern):]
	if len(route.Children) == 0 {
		if len(rest) == 0 {
			return []*Route{route}
		}
		return nil
	}
	for i := range route.Children {
		child := &route.Children[i]
		if sub := matchRoute(child, rest); sub != nil {
			return append([]*Route{route}, sub...)
		}
	}
	return nil
}

func matchSegment(pattern, segment string) bool {
	if strings.HasPrefix(pattern, ":") {
		return segment != ""
	}
	return pattern == segment
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// RequiresAuth folds the matched chain into a single flag: the transition
// requires authentication when any matched segment requires it, and segments
// that do not say are counted as requiring it. An empty chain is protected.
func RequiresAuth(chain []*Route) bool {
	if len(chain) == 0 {
		return true
	}
	for _, route := range chain {
		if route.RequiresAuth == nil || *route.RequiresAuth {
			return true
		}
	}
	return false
}
