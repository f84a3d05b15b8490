package classify

import (
	"regexp"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

// RuleSet is one role's ordered list of cue patterns. Rule sets are plain
// configuration data so callers can construct classifiers with custom rules.
type RuleSet struct {
	Role     model.Role
	Patterns []string
}

// DefaultRules returns the standard role rules. Order is significant: the
// first role with any matching pattern wins, so a sentence carrying both a
// cause cue and an action cue classifies as CAUSE.
func DefaultRules() []RuleSet {
	return []RuleSet{
		{Role: model.RoleCause, Patterns: []string{
			`\bbecause\b`,
			`\bdue to\b`,
			`\bas a result of\b`,
			`\broot cause\b`,
		}},
		{Role: model.RoleAction, Patterns: []string{
			`\brestart(ed)?\b`,
			`\brollback\b`,
			`\bfix(ed)?\b`,
			`\bpatch(ed)?\b`,
			`\bupdate(d)?\b`,
			`\bdisable(d)?\b`,
			`\bretry\b`,
		}},
		{Role: model.RoleOutcome, Patterns: []string{
			`\bresolved\b`,
			`\brecovered\b`,
			`\bstable\b`,
			`\bsuccessfully\b`,
			`\bfixed\b`,
		}},
		{Role: model.RoleConstraint, Patterns: []string{
			`\bcannot\b`,
			`\blimitation\b`,
			`\brisk\b`,
			`\bnot possible\b`,
			`\btrade[- ]off\b`,
		}},
		{Role: model.RoleProblem, Patterns: []string{
			`\berror\b`,
			`\bfailure\b`,
			`\btimeout\b`,
			`\bincident\b`,
			`\bunavailable\b`,
			`\bdegraded\b`,
			`\bunallocated\b`,
		}},
	}
}

// compiledRule pairs a role with its precompiled patterns
type compiledRule struct {
	role     model.Role
	patterns []*regexp.Regexp
}

// Classifier assigns a structural role to a sentence using ordered
// regular-expression rule sets. It is pure and safe for repeated use.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier creates a classifier from the given rule sets. Patterns are
// compiled case-insensitively; a pattern that fails to compile is skipped so
// a malformed rule can never abort classification.
func NewClassifier(rules []RuleSet) *Classifier {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rs := range rules {
		cr := compiledRule{role: rs.Role}
		for _, pat := range rs.Patterns {
			re, err := regexp.Compile(`(?i)` + pat)
			if err != nil {
				// Bad pattern: treat as a permanent non-match
				continue
			}
			cr.patterns = append(cr.patterns, re)
		}
		compiled = append(compiled, cr)
	}
	return &Classifier{rules: compiled}
}

// NewDefaultClassifier creates a classifier with the standard rules
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules())
}

// Classify returns the role of a single sentence. Empty or whitespace-only
// input yields OBSERVATION, as does any sentence no rule matches.
func (c *Classifier) Classify(sentence string) model.Role {
	s := strings.TrimSpace(sentence)
	if s == "" {
		return model.RoleObservation
	}

	for _, rule := range c.rules {
		for _, pat := range rule.patterns {
			if pat.MatchString(s) {
				return rule.role
			}
		}
	}

	return model.RoleObservation
}
