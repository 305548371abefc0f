package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "PENDING"
	RegistrationStatusApproved RegistrationStatus = "APPROVED"
	RegistrationStatusRejected RegistrationStatus = "REJECTED"
)

type RegistrationDecision string

const (
	RegistrationDecisionApprove RegistrationDecision = "APPROVE"
	RegistrationDecisionReject  RegistrationDecision = "REJECT"
)

// CommonerRegistration is a community member's eligibility record. One per
// user. Created once by the applicant, afterwards mutated only by admin
// decisions and attachment uploads.
type CommonerRegistration struct {
	ID              int32              `json:"id"`
	UserID          int32              `json:"user_id"`
	FullName        string             `json:"full_name"`
	NationalID      string             `json:"national_id"`
	Status          RegistrationStatus `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	SubmittedOn     time.Time          `json:"submitted_on"`
	ApprovedOn      *time.Time         `json:"approved_on,omitempty"`
}
