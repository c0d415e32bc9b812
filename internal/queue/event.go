// Package queue defines the audit events exchanged over the message
// broker and the background consumer that records them.
package queue

// Audit actions recorded for catalogue and project mutations.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditEvent is published after a successful mutation of a part or a
// project. It carries enough information for downstream consumers to
// log or trigger analytics without querying the primary database.
type AuditEvent struct {
	Entity     string `json:"entity"` // "part" or "project"
	Action     string `json:"action"`
	PartNumber uint64 `json:"part_number,omitempty"`
	ProjectID  uint64 `json:"project_id,omitempty"`
	Actor      string `json:"actor"` // username performing the change
	OccurredAt string `json:"occurred_at"`
}
