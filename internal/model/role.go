package model

// Role is the structural role assigned to a single sentence
type Role string

const (
	RoleCause       Role = "CAUSE"       // Why something happened
	RoleAction      Role = "ACTION"      // What was done about it
	RoleOutcome     Role = "OUTCOME"     // What happened afterwards
	RoleConstraint  Role = "CONSTRAINT"  // Limits on what can be done
	RoleProblem     Role = "PROBLEM"     // Symptom or failure statement
	RoleObservation Role = "OBSERVATION" // Default when no rule matches
)

// Roles lists every role the classifier can assign
var Roles = []Role{
	RoleCause,
	RoleAction,
	RoleOutcome,
	RoleConstraint,
	RoleProblem,
	RoleObservation,
}

// SentenceRecord is one sentence of evidence attributed to a context
type SentenceRecord struct {
	Context string `json:"context"`
	Text    string `json:"sentence_text"`
}

// ClassifiedSentence pairs a sentence with its assigned role
type ClassifiedSentence struct {
	Text string
	Role Role
}
