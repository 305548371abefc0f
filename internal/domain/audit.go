package domain

import "time"

// StatusLog is an immutable record of a single status transition. Rows are
// append-only; never updated or deleted.
type StatusLog struct {
	ID            int32     `json:"id"`
	CommonerID    *int32    `json:"commoner_id,omitempty"`
	ApplicationID *int32    `json:"application_id,omitempty"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	ChangedBy     string    `json:"changed_by"`
	Note          string    `json:"note,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
}

type AdminEventType string

const (
	AdminEventStatusChanged     AdminEventType = "STATUS_CHANGED"
	AdminEventAttachmentAdded   AdminEventType = "ATTACHMENT_ADDED"
	AdminEventAttachmentDeleted AdminEventType = "ATTACHMENT_DELETED"
	AdminEventReopened          AdminEventType = "REOPENED"
)

// AdminEvent is the broader immutable audit trail entry. Meta holds
// structured detail (e.g. the full metadata of a deleted attachment so the
// record survives the row's deletion).
type AdminEvent struct {
	ID            int32          `json:"id"`
	CommonerID    *int32         `json:"commoner_id,omitempty"`
	ApplicationID *int32         `json:"application_id,omitempty"`
	Type          AdminEventType `json:"type"`
	Message       string         `json:"message"`
	ActorSubject  string         `json:"actor_subject"`
	Meta          map[string]any `json:"meta,omitempty"`
	CreatedOn     time.Time      `json:"created_on"`
}
