package decide

import (
	"sort"
	"strconv"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

// findKey returns the original key of rec whose lower-cased form matches one
// of the aliases, or "" when none does. Exact matches are tried first in
// alias order; a second pass strips a trailing "s" from record keys so
// unanticipated plurals still resolve. Record keys are visited in sorted
// order to keep extraction deterministic.
func findKey(rec model.ChainRecord, aliases []string) string {
	if len(rec) == 0 {
		return ""
	}

	lower := make(map[string]string, len(rec))
	for k := range rec {
		lower[strings.ToLower(k)] = k
	}

	for _, alias := range aliases {
		if orig, ok := lower[alias]; ok {
			return orig
		}
	}

	set := aliasSet(aliases)
	lowerKeys := make([]string, 0, len(lower))
	for lk := range lower {
		lowerKeys = append(lowerKeys, lk)
	}
	sort.Strings(lowerKeys)
	for _, lk := range lowerKeys {
		if strings.HasSuffix(lk, "s") && set[strings.TrimSuffix(lk, "s")] {
			return lower[lk]
		}
	}

	return ""
}

// firstText reduces an arbitrary field value to a single text value.
// Strings are trimmed; lists and mappings are flattened to a single
// "|"-delimited value; numbers are formatted; everything else is dropped
// without error. Returns "" when nothing textual remains.
func firstText(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		var parts []string
		for _, item := range v {
			if s := scalarText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			if s := scalarText(v[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	default:
		return scalarText(val)
	}
}

// scalarText formats a plain string or numeric value, dropping other types
func scalarText(val interface{}) string {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return ""
	}
}

// extractConstraints resolves the constraints field, keeping list structure
// when present
func extractConstraints(val interface{}) []string {
	if list, ok := val.([]interface{}); ok {
		var out []string
		for _, item := range list {
			if s := firstText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := firstText(val); s != "" {
		return []string{s}
	}
	return nil
}

// Normalize maps an arbitrary chain-like record onto the canonical chain
// tuple using tolerant alias lookup per role. Records that resolve no
// fields at all are still legal: the result simply carries only the
// context.
func Normalize(context string, rec model.ChainRecord) model.CanonicalChain {
	canonical := model.CanonicalChain{Context: context}
	if len(rec) == 0 {
		return canonical
	}

	if k := findKey(rec, causeAliases); k != "" {
		canonical.Cause = firstText(rec[k])
	}
	if k := findKey(rec, actionAliases); k != "" {
		canonical.Action = firstText(rec[k])
	}
	if k := findKey(rec, outcomeAliases); k != "" {
		canonical.Outcome = firstText(rec[k])
	}
	if k := findKey(rec, timestampAliases); k != "" {
		canonical.Timestamp = firstText(rec[k])
	}
	if k := findKey(rec, constraintAliases); k != "" {
		canonical.Constraints = extractConstraints(rec[k])
	}

	return canonical
}
