// Package scope resolves the logical destination of a sync (project-local or
// user home) to a concrete directory.
package scope

import (
	"fmt"
	"strings"
)

// Scope is the logical choice of destination root.
type Scope string

const (
	// ScopeProject targets the enclosing git repository's agents directory.
	ScopeProject Scope = "project"

	// ScopeHome targets the agents directory in the user's home.
	ScopeHome Scope = "home"
)

// AllScopes returns the supported scopes in menu order.
func AllScopes() []Scope {
	return []Scope{ScopeProject, ScopeHome}
}

// IsValid returns true if the scope is recognized.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeProject, ScopeHome:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// Description returns a human-readable description of the scope.
func (s Scope) Description() string {
	switch s {
	case ScopeProject:
		return "Current project (requires a git repository)"
	case ScopeHome:
		return "User home directory"
	default:
		return "Unknown scope"
	}
}

// ParseScope converts a string to a Scope. Common aliases are accepted.
func ParseScope(s string) (Scope, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	scope := Scope(normalized)
	if scope.IsValid() {
		return scope, nil
	}

	switch normalized {
	case "repo", "repository", "local":
		return ScopeProject, nil
	case "user", "global":
		return ScopeHome, nil
	default:
		return "", fmt.Errorf("unknown scope %q (valid: project, home)", s)
	}
}
