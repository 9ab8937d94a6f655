package onsocial

import "strings"

// RoutePolicy classifies how much proof a route demands.
type RoutePolicy int

const (
	// PolicyPublic routes serve anonymous callers.
	PolicyPublic RoutePolicy = iota
	// PolicyAuthenticated routes require any valid session.
	PolicyAuthenticated
	// PolicyOwnerOrAdmin routes require the session subject to own the
	// addressed resource, or to hold the ADMIN authority.
	PolicyOwnerOrAdmin
)

func (p RoutePolicy) String() string {
	switch p {
	case PolicyPublic:
		return "public"
	case PolicyAuthenticated:
		return "authenticated"
	case PolicyOwnerOrAdmin:
		return "owner_or_admin"
	}
	return "unknown"
}

// RouteRule binds a method and path pattern to a policy. Patterns are
// segment-wise: ":name" captures one segment, "*" matches one or more
// trailing segments.
type RouteRule struct {
	Method   string
	Pattern  string
	Policy   RoutePolicy
	Resource string
}

// Classification is the outcome of matching a request against the
// route table.
type Classification struct {
	Policy   RoutePolicy
	Resource string
	Params   map[string]string
}

// RouteTable is an ordered rule list; the first matching rule wins and
// unmatched requests fall back to PolicyAuthenticated.
type RouteTable struct {
	rules []RouteRule
}

// NewRouteTable creates a table from rules, evaluated in order.
func NewRouteTable(rules ...RouteRule) *RouteTable {
	return &RouteTable{rules: rules}
}

// Classify matches a method and path against the table.
func (t *RouteTable) Classify(method, path string) Classification {
	segments := splitPath(path)
	for _, rule := range t.rules {
		if !strings.EqualFold(rule.Method, method) {
			continue
		}
		params, ok := matchPattern(splitPath(rule.Pattern), segments)
		if !ok {
			continue
		}
		return Classification{Policy: rule.Policy, Resource: rule.Resource, Params: params}
	}
	return Classification{Policy: PolicyAuthenticated}
}

// DefaultRouteTable returns the route policy table for the service.
func DefaultRouteTable() *RouteTable {
	return NewRouteTable(
		RouteRule{Method: "GET", Pattern: "/posts/findall", Policy: PolicyPublic},
		RouteRule{Method: "POST", Pattern: "/auth/*", Policy: PolicyPublic},
		RouteRule{Method: "GET", Pattern: "/auth/check-alias", Policy: PolicyPublic},
		RouteRule{Method: "GET", Pattern: "/auth/check-email", Policy: PolicyPublic},
		RouteRule{Method: "GET", Pattern: "/users/find_all", Policy: PolicyPublic},
		RouteRule{Method: "GET", Pattern: "/.well-known/jwks.json", Policy: PolicyPublic},
		RouteRule{Method: "PUT", Pattern: "/posts/update/:id", Policy: PolicyOwnerOrAdmin, Resource: ResourcePosts},
		RouteRule{Method: "DELETE", Pattern: "/posts/delete/:id", Policy: PolicyOwnerOrAdmin, Resource: ResourcePosts},
		RouteRule{Method: "PUT", Pattern: "/users/:id", Policy: PolicyOwnerOrAdmin, Resource: ResourceUsers},
		RouteRule{Method: "DELETE", Pattern: "/users/:id", Policy: PolicyOwnerOrAdmin, Resource: ResourceUsers},
	)
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchPattern(pattern, segments []string) (map[string]string, bool) {
	var params map[string]string
	for i, p := range pattern {
		if p == "*" {
			// wildcard requires at least one remaining segment
			if len(segments) > i {
				return params, true
			}
			return nil, false
		}
		if i >= len(segments) {
			return nil, false
		}
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = map[string]string{}
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	if len(segments) != len(pattern) {
		return nil, false
	}
	return params, true
}
