package model

// Chain is a reconstructed cause→action→outcome narrative built from a
// contiguous run of classified sentences within one context. Keys are role
// names; a chain holds at most one sentence per role.
type Chain map[Role]string

// Has reports whether the chain recorded a sentence for the given role
func (c Chain) Has(role Role) bool {
	_, ok := c[role]
	return ok
}

// Record converts the chain into a schema-free record for tolerant field
// extraction, the same shape externally supplied chain records arrive in.
func (c Chain) Record() ChainRecord {
	rec := make(ChainRecord, len(c))
	for role, text := range c {
		rec[string(role)] = text
	}
	return rec
}

// ChainRecord is an arbitrary chain-like mapping from any source. Field
// names are matched against role alias sets, so records from foreign
// schemas ("Root Cause", "Fix", "Result") normalize the same way.
type ChainRecord map[string]interface{}

// CanonicalChain is the normalized, schema-independent representation of a
// chain used for cross-source scoring. Empty strings mean the field was
// absent or unresolvable.
type CanonicalChain struct {
	Context     string   `json:"context"`
	Cause       string   `json:"cause,omitempty"`
	Action      string   `json:"action,omitempty"`
	Outcome     string   `json:"outcome,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
}
