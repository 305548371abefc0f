package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationColumns = `id, user_id, full_name, COALESCE(national_id, ''), status, COALESCE(rejection_reason, ''), submitted_on, approved_on`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.CommonerRegistration, error) {
	reg := &domain.CommonerRegistration{}
	var approvedOn sql.NullTime
	err := row.Scan(&reg.ID, &reg.UserID, &reg.FullName, &reg.NationalID, &reg.Status, &reg.RejectionReason, &reg.SubmittedOn, &approvedOn)
	if err != nil {
		return nil, err
	}
	if approvedOn.Valid {
		reg.ApprovedOn = &approvedOn.Time
	}
	return reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.CommonerRegistration) error {
	query := `INSERT INTO commoner_registrations (user_id, full_name, national_id, status, submitted_on)
	          VALUES ($1, $2, $3, $4, now()) RETURNING id, submitted_on`
	reg.Status = domain.RegistrationStatusPending
	err := r.db.QueryRowContext(ctx, query, reg.UserID, reg.FullName, reg.NationalID, reg.Status).
		Scan(&reg.ID, &reg.SubmittedOn)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("registration for user %d: %w", reg.UserID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int32) (*domain.CommonerRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM commoner_registrations WHERE id = $1`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return reg, nil
}

func (r *registrationRepository) GetByUserID(ctx context.Context, userID int32) (*domain.CommonerRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM commoner_registrations WHERE user_id = $1`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return reg, nil
}

func (r *registrationRepository) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.CommonerRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM commoner_registrations WHERE status = $1 ORDER BY submitted_on`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.CommonerRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// Decide runs the whole admin decision in one transaction: the status check
// and requirement resolution read freshly locked rows, and the audit records
// commit together with the status change or not at all.
func (r *registrationRepository) Decide(ctx context.Context, p repository.DecideRegistrationParams) (*domain.CommonerRegistration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + registrationColumns + ` FROM commoner_registrations WHERE id = $1 FOR UPDATE`
	reg, err := scanRegistration(tx.QueryRowContext(ctx, query, p.RegistrationID))
	if err != nil {
		return nil, notFound(err)
	}

	target, ok := p.Decision.Target()
	if !ok {
		return nil, fmt.Errorf("%w: unknown registration decision %q", domain.ErrValidation, p.Decision)
	}
	fromStatus := reg.Status

	switch target {
	case domain.RegistrationStatusApproved:
		kinds, err := attachmentKindsTx(ctx, tx, domain.OwnerKindCommoner, reg.ID)
		if err != nil {
			return nil, err
		}
		checklist := domain.ResolveChecklist(domain.RequiredKinds(domain.OwnerKindCommoner, false), kinds)
		if !checklist.Satisfied {
			return nil, &domain.RequirementsNotMetError{Owner: domain.OwnerKindCommoner, Missing: checklist.Missing}
		}
		now := time.Now()
		_, err = tx.ExecContext(ctx,
			`UPDATE commoner_registrations SET status = $1, approved_on = $2, rejection_reason = NULL WHERE id = $3`,
			target, now, reg.ID)
		if err != nil {
			return nil, err
		}
		reg.Status = target
		reg.ApprovedOn = &now
		reg.RejectionReason = ""

	case domain.RegistrationStatusRejected:
		_, err = tx.ExecContext(ctx,
			`UPDATE commoner_registrations SET status = $1, approved_on = NULL, rejection_reason = $2 WHERE id = $3`,
			target, p.RejectionReason, reg.ID)
		if err != nil {
			return nil, err
		}
		reg.Status = target
		reg.ApprovedOn = nil
		reg.RejectionReason = p.RejectionReason
	}

	log := &domain.StatusLog{
		CommonerID: &reg.ID,
		FromStatus: string(fromStatus),
		ToStatus:   string(target),
		ChangedBy:  p.Actor.Subject,
		Note:       p.Note,
	}
	if err := insertStatusLog(ctx, tx, log); err != nil {
		return nil, err
	}

	event := &domain.AdminEvent{
		CommonerID:   &reg.ID,
		Type:         domain.AdminEventStatusChanged,
		Message:      fmt.Sprintf("registration %s by admin", target),
		ActorSubject: p.Actor.Subject,
		Meta: map[string]any{
			"from": string(fromStatus),
			"to":   string(target),
		},
	}
	if err := insertAdminEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return reg, nil
}
