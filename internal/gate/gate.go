// File: internal/gate/gate.go

// Package gate implements the per-request route access decision: every page
// navigation is classified and either allowed or redirected before any
// handler runs. The decision is a pure function of the requested path and
// session validity; it never touches the database.
package gate

import "strings"

// PathClass is the classification of a requested path.
type PathClass int

const (
	// Public paths are reachable with or without a session.
	Public PathClass = iota
	// Protected paths require a valid session.
	Protected
	// AuthOnly paths (login, signup) are only for visitors without a session.
	AuthOnly
)

func (pc PathClass) String() string {
	switch pc {
	case Protected:
		return "protected"
	case AuthOnly:
		return "auth_only"
	default:
		return "public"
	}
}

// Action is the gate's verdict for a request.
type Action int

const (
	// Allow lets the request reach its handler.
	Allow Action = iota
	// RedirectToLogin sends an unauthenticated visitor to the login page.
	RedirectToLogin
	// RedirectToApp sends an authenticated visitor away from the auth pages.
	RedirectToApp
)

func (a Action) String() string {
	switch a {
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToApp:
		return "redirect_to_app"
	default:
		return "allow"
	}
}

// Decision is the gate output; Target is set for the redirect actions.
type Decision struct {
	Action Action
	Target string
}

// Config is the declarative matcher: prefix lists classify paths, and the
// excluded list removes paths from gate evaluation entirely (static assets,
// the auth API routes themselves). It can change without touching gate code.
type Config struct {
	ProtectedPrefixes []string
	AuthPagePrefixes  []string
	ExcludedPrefixes  []string
	LoginPath         string
	AppHomePath       string
}

// Gate decides allow/redirect for each incoming request.
type Gate struct {
	cfg Config
}

// New creates a Gate from a matcher configuration.
func New(cfg Config) *Gate {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.AppHomePath == "" {
		cfg.AppHomePath = "/dashboard"
	}
	return &Gate{cfg: cfg}
}

// Excluded reports whether the path is outside gate evaluation entirely.
func (g *Gate) Excluded(path string) bool {
	return matchesAny(path, g.cfg.ExcludedPrefixes)
}

// Classify assigns the path to exactly one class. Protected wins over
// AuthOnly if the prefix lists ever overlap.
func (g *Gate) Classify(path string) PathClass {
	if matchesAny(path, g.cfg.ProtectedPrefixes) {
		return Protected
	}
	if matchesAny(path, g.cfg.AuthPagePrefixes) {
		return AuthOnly
	}
	return Public
}

// Decide applies the transition table:
//
//	Protected + no session  -> redirect to login
//	Protected + session     -> allow
//	AuthOnly  + session     -> redirect to app home
//	AuthOnly  + no session  -> allow
//	Public    + either      -> allow
//
// Callers must treat expired/malformed tokens as hasValidSession == false.
func (g *Gate) Decide(path string, hasValidSession bool) Decision {
	switch g.Classify(path) {
	case Protected:
		if !hasValidSession {
			return Decision{Action: RedirectToLogin, Target: g.cfg.LoginPath}
		}
	case AuthOnly:
		if hasValidSession {
			return Decision{Action: RedirectToApp, Target: g.cfg.AppHomePath}
		}
	}
	return Decision{Action: Allow}
}

// matchesAny reports whether path equals a prefix or descends from it.
// "/dashboard" matches "/dashboard" and "/dashboard/settings", but not
// "/dashboards".
func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
