package domain

import "time"

// OwnerKind says which entity an attachment (or checklist) is scoped to.
type OwnerKind string

const (
	OwnerKindCommoner    OwnerKind = "COMMONER"
	OwnerKindApplication OwnerKind = "APPLICATION"
)

type AttachmentKind string

// Registration document kinds.
const (
	AttachmentKindIDPassport     AttachmentKind = "ID_PASSPORT"
	AttachmentKindBirthCert      AttachmentKind = "BIRTH_CERT"
	AttachmentKindProofOfLineage AttachmentKind = "PROOF_OF_LINEAGE"
	AttachmentKindProofOfAddress AttachmentKind = "PROOF_OF_ADDRESS"
	AttachmentKindProofOfPayment AttachmentKind = "PROOF_OF_PAYMENT"
)

// Application document kinds. PROOF_OF_PAYMENT is shared between the two
// owner scopes; its required-ness depends on the owner, see requirements.go.
const (
	AttachmentKindDrawings     AttachmentKind = "DRAWINGS"
	AttachmentKindBusinessPlan AttachmentKind = "BUSINESS_PLAN"
	AttachmentKindOther        AttachmentKind = "OTHER"
)

// Attachment is uploaded-document metadata. Exactly one of CommonerID and
// ApplicationID is set. The metadata row, not the blob, is the source of
// truth for "does the required document exist".
type Attachment struct {
	ID            int32          `json:"id"`
	CommonerID    *int32         `json:"commoner_id,omitempty"`
	ApplicationID *int32         `json:"application_id,omitempty"`
	Kind          AttachmentKind `json:"kind"`
	Label         string         `json:"label"`
	URL           string         `json:"url"`
	StorageKey    string         `json:"storage_key"`
	ContentType   string         `json:"content_type"`
	SizeBytes     int64          `json:"size_bytes"`
	UploadedBy    int32          `json:"uploaded_by"`
	CreatedOn     time.Time      `json:"created_on"`
}

// Owner returns the owning entity reference. Exclusive ownership is a schema
// invariant; ApplicationID wins if both are somehow set.
func (a *Attachment) Owner() (OwnerKind, int32) {
	if a.ApplicationID != nil {
		return OwnerKindApplication, *a.ApplicationID
	}
	if a.CommonerID != nil {
		return OwnerKindCommoner, *a.CommonerID
	}
	return "", 0
}
