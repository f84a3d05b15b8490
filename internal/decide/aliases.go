package decide

// Role alias tables for schema-tolerant field extraction. Chain-like
// records arrive from any source with arbitrary field names; each canonical
// role matches a fixed set of lower-cased aliases, plus a trailing-"s"
// plural fallback. Alias order is fixed so extraction stays deterministic
// when a record carries more than one alias for the same role.

var causeAliases = []string{
	"cause", "causes", "root cause", "root causes",
	"problem", "issue", "why", "reason",
}

var actionAliases = []string{
	"action", "actions", "mitigation", "mitigations",
	"fix", "fixes", "remediation", "remediations",
	"change", "changes", "countermeasure", "countermeasures",
	"solution", "solutions", "step", "steps", "task", "tasks",
}

var outcomeAliases = []string{
	"outcome", "outcomes", "result", "results",
	"impact", "impacts", "effect", "effects",
	"evidence", "verification", "validation",
	"metric", "metrics", "kpi", "kpis", "learning", "lessons",
}

var timestampAliases = []string{
	"timestamp", "ts", "time", "datetime", "date",
}

var constraintAliases = []string{
	"constraint", "constraints", "assumption", "assumptions",
	"limitation", "limitations", "guardrail", "guardrails",
	"precondition", "preconditions", "policy", "policies", "sla", "slo",
}

func aliasSet(aliases []string) map[string]bool {
	set := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		set[a] = true
	}
	return set
}
