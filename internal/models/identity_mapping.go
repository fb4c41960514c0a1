package models

// IdentityMappings holds the persisted identity configuration for one
// repository: flat email and name mappings onto canonical identities, plus
// the list of developers excluded from analysis.
type IdentityMappings struct {
	Emails   map[string]string `json:"canonical_emails"`
	Names    map[string]string `json:"canonical_names"`
	Excluded []string          `json:"excluded_developers"`
}

// NewIdentityMappings creates an empty IdentityMappings
func NewIdentityMappings() *IdentityMappings {
	return &IdentityMappings{
		Emails: make(map[string]string),
		Names:  make(map[string]string),
	}
}

// IsEmpty reports whether no mappings or exclusions are configured
func (m *IdentityMappings) IsEmpty() bool {
	return len(m.Emails) == 0 && len(m.Names) == 0 && len(m.Excluded) == 0
}
