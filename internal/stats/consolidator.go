package stats

// EmailConsolidator groups identities that share at least one email address
// into equivalence classes. Grouping is a transitive closure: identities
// A and C end up together whenever a chain of shared emails connects them,
// even if they never share an email directly.
type EmailConsolidator struct{}

// NewEmailConsolidator creates a new EmailConsolidator
func NewEmailConsolidator() *EmailConsolidator {
	return &EmailConsolidator{}
}

// Observation pairs one identity with the emails seen for it, in
// first-encountered order.
type Observation struct {
	Identity string
	Emails   []string
}

// Consolidation is the result of grouping: per-identity aliases onto a
// group representative and a canonical email per observed email.
type Consolidation struct {
	alias          map[string]string
	canonicalEmail map[string]string
	groupEmail     map[string]string
}

// CanonicalIdentity returns the representative identity for an observed
// identity. Unknown identities map to themselves.
func (c *Consolidation) CanonicalIdentity(identity string) string {
	if rep, ok := c.alias[identity]; ok {
		return rep
	}
	return identity
}

// CanonicalEmail returns the canonical email for an observed email.
// Unknown emails map to themselves.
func (c *Consolidation) CanonicalEmail(email string) string {
	if canonical, ok := c.canonicalEmail[email]; ok {
		return canonical
	}
	return email
}

// GroupEmail returns the canonical email of the group a representative
// identity belongs to, or "" when the identity owns no emails
func (c *Consolidation) GroupEmail(identity string) string {
	return c.groupEmail[c.CanonicalIdentity(identity)]
}

// Consolidate computes the equivalence classes for a set of observations.
// Within each class the canonical email is the lexicographically smallest
// member; the class representative is the first-encountered identity.
func (ec *EmailConsolidator) Consolidate(observations []Observation) *Consolidation {
	uf := newUnionFind()

	// Tying an identity's emails together is enough: two identities that
	// share any email land in the same set transitively.
	for _, obs := range observations {
		for i := 1; i < len(obs.Emails); i++ {
			uf.union(obs.Emails[0], obs.Emails[i])
		}
	}

	// Pick the smallest email per component.
	canonical := make(map[string]string)
	for email := range uf.parent {
		root := uf.find(email)
		if best, ok := canonical[root]; !ok || email < best {
			canonical[root] = email
		}
	}

	result := &Consolidation{
		alias:          make(map[string]string),
		canonicalEmail: make(map[string]string),
		groupEmail:     make(map[string]string),
	}

	for email := range uf.parent {
		result.canonicalEmail[email] = canonical[uf.find(email)]
	}

	// The first identity observed for a component represents it.
	representative := make(map[string]string)
	for _, obs := range observations {
		if _, seen := result.alias[obs.Identity]; seen {
			continue
		}
		if len(obs.Emails) == 0 {
			result.alias[obs.Identity] = obs.Identity
			continue
		}

		root := uf.find(obs.Emails[0])
		rep, ok := representative[root]
		if !ok {
			rep = obs.Identity
			representative[root] = rep
			result.groupEmail[rep] = canonical[root]
		}
		result.alias[obs.Identity] = rep
	}

	return result
}

// unionFind is a disjoint-set structure over email strings with path
// compression and union by size.
type unionFind struct {
	parent map[string]string
	size   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[string]string),
		size:   make(map[string]int),
	}
}

func (uf *unionFind) find(x string) string {
	if _, ok := uf.parent[x]; !ok {
		uf.parent[x] = x
		uf.size[x] = 1
		return x
	}
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
