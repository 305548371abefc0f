package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "DRAFT"
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

type ApplicationDecision string

const (
	ApplicationDecisionUnderReview ApplicationDecision = "UNDER_REVIEW"
	ApplicationDecisionApprove     ApplicationDecision = "APPROVE"
	ApplicationDecisionReject      ApplicationDecision = "REJECT"
)

// Application is a land-allocation request. At most one per user, linked to
// the user's approved commoner registration. ApplicantName is snapshotted
// from the registration when the draft is created.
type Application struct {
	ID              int32             `json:"id"`
	UserID          int32             `json:"user_id"`
	CommonerID      *int32            `json:"commoner_id,omitempty"`
	ApplicantName   string            `json:"applicant_name"`
	Purpose         string            `json:"purpose"`
	AlreadyHasLand  bool              `json:"already_has_land"`
	Status          ApplicationStatus `json:"status"`
	LotNumber       *string           `json:"lot_number,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	AdminNote       string            `json:"admin_note,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
	SubmittedOn     *time.Time        `json:"submitted_on,omitempty"`
	ApprovedOn      *time.Time        `json:"approved_on,omitempty"`
}
