package domain

// applicationTransitions is the single legality table consulted by the
// application lifecycle. Admin decisions may act on DRAFT, SUBMITTED and
// UNDER_REVIEW; APPROVED and REJECTED are terminal (Reopen is the explicit,
// separate escape hatch). UNDER_REVIEW -> UNDER_REVIEW is the re-note path:
// a repeated review decision replaces the admin note, and each pass lands in
// the status history with its note.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusDraft: {
		ApplicationStatusSubmitted,
		ApplicationStatusUnderReview,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	},
	ApplicationStatusSubmitted: {
		ApplicationStatusUnderReview,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	},
	ApplicationStatusUnderReview: {
		ApplicationStatusUnderReview,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	},
	ApplicationStatusApproved: {},
	ApplicationStatusRejected: {},
}

// CanTransition reports whether from -> to is a legal application move.
func CanTransition(from, to ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ReopenSources are the statuses an admin may reopen back to UNDER_REVIEW.
var ReopenSources = []ApplicationStatus{
	ApplicationStatusApproved,
	ApplicationStatusRejected,
}

func CanReopen(from ApplicationStatus) bool {
	for _, s := range ReopenSources {
		if s == from {
			return true
		}
	}
	return false
}

// Target maps an admin decision to the status it lands on.
func (d ApplicationDecision) Target() (ApplicationStatus, bool) {
	switch d {
	case ApplicationDecisionUnderReview:
		return ApplicationStatusUnderReview, true
	case ApplicationDecisionApprove:
		return ApplicationStatusApproved, true
	case ApplicationDecisionReject:
		return ApplicationStatusRejected, true
	}
	return "", false
}

// Target maps a registration decision to its status. Registrations may be
// re-decided: an APPROVE after a REJECT (or vice versa) is legal, but APPROVE
// always re-runs the requirement resolver.
func (d RegistrationDecision) Target() (RegistrationStatus, bool) {
	switch d {
	case RegistrationDecisionApprove:
		return RegistrationStatusApproved, true
	case RegistrationDecisionReject:
		return RegistrationStatusRejected, true
	}
	return "", false
}
