package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alimgiray/gitpulse/internal/models"
)

func TestNormalizeEmail(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			email:    "  Alice@Example.COM ",
			expected: "alice@example.com",
		},
		{
			name:     "github noreply collapses to username",
			email:    "12345+alice@users.noreply.github.com",
			expected: "alice@github.com",
		},
		{
			name:     "noreply without id prefix",
			email:    "alice@users.noreply.github.com",
			expected: "alice@github.com",
		},
		{
			name:     "other forge noreply",
			email:    "99+bob@users.noreply.gitlab.example.org",
			expected: "bob@gitlab.example.org",
		},
		{
			name:     "regular address untouched",
			email:    "alice@example.com",
			expected: "alice@example.com",
		},
		{
			name:     "not an email",
			email:    "Alice",
			expected: "alice",
		},
		{
			name:     "empty",
			email:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeEmail(tc.email))
		})
	}
}

func TestResolveLookupOrder(t *testing.T) {
	resolver := NewResolver(&models.IdentityMappings{
		Emails: map[string]string{"alice@example.com": "Alice Smith"},
		Names:  map[string]string{"alice": "Alice Jones"},
	})

	// The email mapping wins over the name mapping.
	identity, excluded := resolver.Resolve("alice", "Alice@Example.com")
	assert.False(t, excluded)
	assert.Equal(t, "Alice Smith", identity)

	// Without an email match the name mapping applies.
	identity, excluded = resolver.Resolve("alice", "other@example.com")
	assert.False(t, excluded)
	assert.Equal(t, "Alice Jones", identity)

	// Unmapped authors resolve to their raw name.
	identity, excluded = resolver.Resolve("Bob", "bob@example.com")
	assert.False(t, excluded)
	assert.Equal(t, "Bob", identity)
}

func TestResolveExclusion(t *testing.T) {
	testCases := []struct {
		name     string
		mappings *models.IdentityMappings
		author   string
		email    string
		excluded bool
	}{
		{
			name: "excluded by raw name",
			mappings: &models.IdentityMappings{
				Excluded: []string{"dependabot[bot]"},
			},
			author:   "dependabot[bot]",
			email:    "bot@example.com",
			excluded: true,
		},
		{
			name: "excluded by email case-insensitively",
			mappings: &models.IdentityMappings{
				Excluded: []string{"Bot@Example.com"},
			},
			author:   "CI Bot",
			email:    "bot@example.com",
			excluded: true,
		},
		{
			name: "excluded after mapping resolves to excluded identity",
			mappings: &models.IdentityMappings{
				Emails:   map[string]string{"c@x.com": "Contractor"},
				Excluded: []string{"Contractor"},
			},
			author:   "Chris",
			email:    "c@x.com",
			excluded: true,
		},
		{
			name: "not excluded",
			mappings: &models.IdentityMappings{
				Excluded: []string{"someone-else"},
			},
			author:   "Alice",
			email:    "alice@example.com",
			excluded: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := NewResolver(tc.mappings)
			_, excluded := resolver.Resolve(tc.author, tc.email)
			assert.Equal(t, tc.excluded, excluded)
		})
	}
}

func TestResolveNilMappings(t *testing.T) {
	resolver := NewResolver(nil)

	identity, excluded := resolver.Resolve("Alice", "alice@example.com")
	assert.False(t, excluded)
	assert.Equal(t, "Alice", identity)
}
