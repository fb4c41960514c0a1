package identity

import (
	"strings"

	"github.com/alimgiray/gitpulse/internal/models"
)

// Resolver maps raw commit author names and emails onto canonical
// identities using the repository's persisted mappings and exclusion list.
type Resolver struct {
	mappings *models.IdentityMappings
	excluded map[string]bool
}

// NewResolver creates a new Resolver over a set of identity mappings.
// A nil mappings value behaves like an empty store.
func NewResolver(mappings *models.IdentityMappings) *Resolver {
	if mappings == nil {
		mappings = models.NewIdentityMappings()
	}

	excluded := make(map[string]bool, len(mappings.Excluded))
	for _, entry := range mappings.Excluded {
		excluded[strings.ToLower(strings.TrimSpace(entry))] = true
	}

	return &Resolver{
		mappings: mappings,
		excluded: excluded,
	}
}

// NormalizeEmail lower-cases and trims an email address and rewrites
// host noreply addresses of the form id+username@users.noreply.<host>
// to username@<host>, so a forge's auto-generated address consolidates
// with other mentions of the same username.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	host, ok := strings.CutPrefix(domain, "users.noreply.")
	if !ok || host == "" {
		return email
	}

	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[plus+1:]
	}
	if local == "" {
		return email
	}

	return local + "@" + host
}

// Resolve maps a raw (name, email) pair to a canonical identity.
// The second return value is true when the author is excluded from
// analysis; exclusion is checked against the raw name, both email forms,
// and again against the resolved identity, since two raw identities can
// map onto an excluded canonical name.
func (r *Resolver) Resolve(name, email string) (string, bool) {
	normalized := NormalizeEmail(email)

	if r.isExcluded(name) || r.isExcluded(normalized) || r.isExcluded(email) {
		return "", true
	}

	identity := name
	if mapped, ok := r.mappings.Emails[normalized]; ok {
		identity = mapped
	} else if mapped, ok := r.mappings.Names[name]; ok {
		identity = mapped
	}

	if r.isExcluded(identity) {
		return "", true
	}

	return identity, false
}

// isExcluded checks the exclusion set case-insensitively
func (r *Resolver) isExcluded(value string) bool {
	if value == "" {
		return false
	}
	return r.excluded[strings.ToLower(strings.TrimSpace(value))]
}
