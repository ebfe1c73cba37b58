// File: internal/gate/gate_test.go
package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGate() *Gate {
	return New(Config{
		ProtectedPrefixes: []string{"/dashboard", "/spending"},
		AuthPagePrefixes:  []string{"/login", "/signup"},
		ExcludedPrefixes:  []string{"/api", "/assets", "/favicon.ico", "/health"},
		LoginPath:         "/login",
		AppHomePath:       "/dashboard",
	})
}

func TestDecide(t *testing.T) {
	g := newTestGate()

	testCases := []struct {
		name       string
		path       string
		hasSession bool
		want       Decision
	}{
		{
			name:       "protected page without session redirects to login",
			path:       "/dashboard",
			hasSession: false,
			want:       Decision{Action: RedirectToLogin, Target: "/login"},
		},
		{
			name:       "protected page with session is allowed",
			path:       "/dashboard",
			hasSession: true,
			want:       Decision{Action: Allow},
		},
		{
			name:       "protected subpage with session is allowed",
			path:       "/dashboard/settings",
			hasSession: true,
			want:       Decision{Action: Allow},
		},
		{
			name:       "protected subpage without session redirects to login",
			path:       "/spending/monthly",
			hasSession: false,
			want:       Decision{Action: RedirectToLogin, Target: "/login"},
		},
		{
			name:       "login page with session redirects to app home",
			path:       "/login",
			hasSession: true,
			want:       Decision{Action: RedirectToApp, Target: "/dashboard"},
		},
		{
			name:       "login page without session is allowed",
			path:       "/login",
			hasSession: false,
			want:       Decision{Action: Allow},
		},
		{
			name:       "signup page with session redirects to app home",
			path:       "/signup",
			hasSession: true,
			want:       Decision{Action: RedirectToApp, Target: "/dashboard"},
		},
		{
			name:       "public page without session is allowed",
			path:       "/",
			hasSession: false,
			want:       Decision{Action: Allow},
		},
		{
			name:       "public page with session is allowed",
			path:       "/about",
			hasSession: true,
			want:       Decision{Action: Allow},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Decide(tc.path, tc.hasSession))
		})
	}
}

func TestClassifyPrefixBoundaries(t *testing.T) {
	g := newTestGate()

	assert.Equal(t, Protected, g.Classify("/dashboard"))
	assert.Equal(t, Protected, g.Classify("/dashboard/settings/profile"))
	assert.Equal(t, Public, g.Classify("/dashboards"), "sibling path must not inherit protection")
	assert.Equal(t, AuthOnly, g.Classify("/login"))
	assert.Equal(t, Public, g.Classify("/loginhelp"))
}

func TestExcludedPathsSkipTheGate(t *testing.T) {
	g := newTestGate()

	// API routes decide their own authorization; the gate stays out of the way.
	assert.True(t, g.Excluded("/api/v1/auth/login"))
	assert.True(t, g.Excluded("/assets/app.css"))
	assert.True(t, g.Excluded("/favicon.ico"))
	assert.True(t, g.Excluded("/health"))
	assert.False(t, g.Excluded("/dashboard"))
	assert.False(t, g.Excluded("/apiary"), "sibling path must not be excluded")
}

func TestProtectedWinsOverAuthOnlyOnOverlap(t *testing.T) {
	g := New(Config{
		ProtectedPrefixes: []string{"/account"},
		AuthPagePrefixes:  []string{"/account"},
	})
	assert.Equal(t, Protected, g.Classify("/account"))
}

func TestNewDefaults(t *testing.T) {
	g := New(Config{ProtectedPrefixes: []string{"/dashboard"}})

	decision := g.Decide("/dashboard", false)
	assert.Equal(t, RedirectToLogin, decision.Action)
	assert.Equal(t, "/login", decision.Target)
}
