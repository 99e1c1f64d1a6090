package nav

import "testing"

func chainNames(chain []*Route) []string {
	names := make([]string, len(chain))
	for i, r := range chain {
		names[i] = r.Name
	}
	return names
}

func TestMatch_KnownRoutes(t *testing.T) {
	routes := DefaultRoutes()

	tests := []struct {
		path string
		leaf string
	}{
		{"/login", "Login"},
		{"/", "Dashboard"},
		{"/clusters", "Clusters"},
		{"/clusters/abc123", "ClusterDetail"},
		{"/hosts", "Hosts"},
		{"/hosts/h-1", "HostDetail"},
		{"/services/s-9", "ServiceDetail"},
		{"/monitor", "Monitor"},
		{"/alerts", "Alerts"},
		{"/logs", "Logs"},
		{"/settings", "Settings"},
	}

	for _, tt := range tests {
		chain := Match(routes, tt.path)
		if len(chain) == 0 {
			t.Errorf("%s: no match", tt.path)
			continue
		}
		leaf := chain[len(chain)-1]
		if leaf.Name != tt.leaf {
			t.Errorf("%s: expected leaf %s, got %s (chain %v)", tt.path, tt.leaf, leaf.Name, chainNames(chain))
		}
	}
}

func TestMatch_UnknownPathFallsToCatchAll(t *testing.T) {
	routes := DefaultRoutes()

	for _, path := range []string{"/nope", "/clusters/a/b/c", "/login/extra"} {
		chain := Match(routes, path)
		if len(chain) != 1 || chain[0].Name != "NotFound" {
			t.Errorf("%s: expected catch-all, got %v", path, chainNames(chain))
		}
	}
}

func TestMatch_ParamSegment(t *testing.T) {
	routes := []Route{
		{Path: "/items/:id", Name: "Item"},
	}

	if chain := Match(routes, "/items/42"); len(chain) != 1 || chain[0].Name != "Item" {
		t.Fatalf("expected Item, got %v", chainNames(chain))
	}
	if chain := Match(routes, "/items"); chain != nil {
		t.Fatalf("expected no match for missing param, got %v", chainNames(chain))
	}
}

func TestRequiresAuth_AnySegmentProtects(t *testing.T) {
	routes := DefaultRoutes()

	// Protected parent makes every child protected even though the
	// children declare nothing
	if !RequiresAuth(Match(routes, "/clusters")) {
		t.Error("expected /clusters to require auth")
	}
	if !RequiresAuth(Match(routes, "/")) {
		t.Error("expected / to require auth")
	}

	// Explicitly public routes
	if RequiresAuth(Match(routes, "/login")) {
		t.Error("expected /login to be public")
	}
	if RequiresAuth(Match(routes, "/no-such-page")) {
		t.Error("expected catch-all to be public")
	}
}

func TestRequiresAuth_DefaultsToProtected(t *testing.T) {
	// A route that says nothing is protected
	routes := []Route{{Path: "/implicit", Name: "Implicit"}}
	if !RequiresAuth(Match(routes, "/implicit")) {
		t.Error("expected unspecified route to require auth")
	}

	// An unmatched path (no catch-all declared) is protected too
	if !RequiresAuth(Match(routes, "/other")) {
		t.Error("expected empty chain to require auth")
	}

	// A public leaf under an unspecified parent is still protected:
	// the parent's default counts
	routes = []Route{
		{
			Path: "/parent",
			Children: []Route{
				{Path: "child", Name: "Child", RequiresAuth: &public},
			},
		},
	}
	if !RequiresAuth(Match(routes, "/parent/child")) {
		t.Error("expected inherited protection from unspecified parent")
	}
}
