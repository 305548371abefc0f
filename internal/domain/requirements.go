package domain

// Required document sets are fixed, owner-scoped policy tables. The same kind
// string can carry different weight per owner: PROOF_OF_PAYMENT is always
// required for a registration but only required for an application when the
// applicant already holds land.
var registrationRequiredKinds = []AttachmentKind{
	AttachmentKindIDPassport,
	AttachmentKindBirthCert,
	AttachmentKindProofOfLineage,
	AttachmentKindProofOfAddress,
	AttachmentKindProofOfPayment,
}

var applicationRequiredKinds = []AttachmentKind{
	AttachmentKindDrawings,
	AttachmentKindBusinessPlan,
}

// RequiredKinds returns the ordered required-kind set for an owner type.
// alreadyHasLand is only meaningful for OwnerKindApplication.
func RequiredKinds(owner OwnerKind, alreadyHasLand bool) []AttachmentKind {
	switch owner {
	case OwnerKindCommoner:
		return append([]AttachmentKind(nil), registrationRequiredKinds...)
	case OwnerKindApplication:
		kinds := append([]AttachmentKind(nil), applicationRequiredKinds...)
		if alreadyHasLand {
			kinds = append(kinds, AttachmentKindProofOfPayment)
		}
		return kinds
	}
	return nil
}

// Checklist is the computed document-completeness state for one owner.
type Checklist struct {
	Required  []AttachmentKind `json:"required"`
	Missing   []AttachmentKind `json:"missing"`
	Satisfied bool             `json:"satisfied"`
}

// ResolveChecklist computes which required kinds are absent from have.
// Pure and deterministic; safe to recompute on every call instead of caching.
func ResolveChecklist(required, have []AttachmentKind) Checklist {
	present := make(map[AttachmentKind]bool, len(have))
	for _, k := range have {
		present[k] = true
	}

	missing := []AttachmentKind{}
	for _, k := range required {
		if !present[k] {
			missing = append(missing, k)
		}
	}

	return Checklist{
		Required:  required,
		Missing:   missing,
		Satisfied: len(missing) == 0,
	}
}
