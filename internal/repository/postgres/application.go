package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, user_id, commoner_id, applicant_name, purpose, already_has_land, status,
	lot_number, COALESCE(rejection_reason, ''), COALESCE(admin_note, ''), created_on, submitted_on, approved_on`

func scanApplication(row interface{ Scan(...any) error }) (*domain.Application, error) {
	app := &domain.Application{}
	var lotNumber sql.NullString
	var submittedOn, approvedOn sql.NullTime
	err := row.Scan(&app.ID, &app.UserID, &app.CommonerID, &app.ApplicantName, &app.Purpose, &app.AlreadyHasLand,
		&app.Status, &lotNumber, &app.RejectionReason, &app.AdminNote, &app.CreatedOn, &submittedOn, &approvedOn)
	if err != nil {
		return nil, err
	}
	if lotNumber.Valid {
		app.LotNumber = &lotNumber.String
	}
	if submittedOn.Valid {
		app.SubmittedOn = &submittedOn.Time
	}
	if approvedOn.Valid {
		app.ApprovedOn = &approvedOn.Time
	}
	return app, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (user_id, commoner_id, applicant_name, purpose, already_has_land, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING id, created_on`
	app.Status = domain.ApplicationStatusDraft
	err := r.db.QueryRowContext(ctx, query, app.UserID, app.CommonerID, app.ApplicantName, app.Purpose, app.AlreadyHasLand, app.Status).
		Scan(&app.ID, &app.CreatedOn)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("application for user %d: %w", app.UserID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return app, nil
}

func (r *applicationRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return app, nil
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE status = $1 ORDER BY created_on`
	return r.list(ctx, query, status)
}

func (r *applicationRepository) ListStaleInReview(ctx context.Context, olderThanDays int) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications
	          WHERE status IN ($1, $2) AND submitted_on < now() - ($3 * interval '1 day') ORDER BY submitted_on`
	return r.list(ctx, query, domain.ApplicationStatusSubmitted, domain.ApplicationStatusUnderReview, olderThanDays)
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// Submit moves DRAFT to SUBMITTED. The status check runs against a freshly
// locked row so two concurrent submits cannot both log the same fromStatus.
func (r *applicationRepository) Submit(ctx context.Context, id int32, actor domain.Actor) (*domain.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	app, err := scanApplication(tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	if app.Status != domain.ApplicationStatusDraft {
		return nil, fmt.Errorf("submit from %s: %w", app.Status, domain.ErrInvalidTransition)
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `UPDATE applications SET status = $1, submitted_on = $2 WHERE id = $3`,
		domain.ApplicationStatusSubmitted, now, id)
	if err != nil {
		return nil, err
	}
	fromStatus := app.Status
	app.Status = domain.ApplicationStatusSubmitted
	app.SubmittedOn = &now

	log := &domain.StatusLog{
		ApplicationID: &app.ID,
		FromStatus:    string(fromStatus),
		ToStatus:      string(app.Status),
		ChangedBy:     actor.Subject,
	}
	if err := insertStatusLog(ctx, tx, log); err != nil {
		return nil, err
	}
	event := &domain.AdminEvent{
		ApplicationID: &app.ID,
		Type:          domain.AdminEventStatusChanged,
		Message:       "application submitted",
		ActorSubject:  actor.Subject,
		Meta:          map[string]any{"from": string(fromStatus), "to": string(app.Status)},
	}
	if err := insertAdminEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return app, nil
}

// Decide applies an admin decision. Source legality comes from the shared
// transition table, and approval resolves the document checklist against
// attachment rows read in the same transaction.
func (r *applicationRepository) Decide(ctx context.Context, p repository.DecideApplicationParams) (*domain.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	app, err := scanApplication(tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, p.ApplicationID))
	if err != nil {
		return nil, notFound(err)
	}

	target, ok := p.Decision.Target()
	if !ok {
		return nil, fmt.Errorf("%w: unknown application decision %q", domain.ErrValidation, p.Decision)
	}
	if !domain.CanTransition(app.Status, target) {
		return nil, fmt.Errorf("decide %s from %s: %w", target, app.Status, domain.ErrInvalidTransition)
	}
	fromStatus := app.Status

	switch target {
	case domain.ApplicationStatusApproved:
		kinds, err := attachmentKindsTx(ctx, tx, domain.OwnerKindApplication, app.ID)
		if err != nil {
			return nil, err
		}
		checklist := domain.ResolveChecklist(domain.RequiredKinds(domain.OwnerKindApplication, app.AlreadyHasLand), kinds)
		if !checklist.Satisfied {
			return nil, &domain.RequirementsNotMetError{Owner: domain.OwnerKindApplication, Missing: checklist.Missing}
		}
		now := time.Now()
		_, err = tx.ExecContext(ctx,
			`UPDATE applications SET status = $1, approved_on = $2, lot_number = $3, admin_note = $4, rejection_reason = NULL WHERE id = $5`,
			target, now, p.LotNumber, p.AdminNote, app.ID)
		if err != nil {
			return nil, err
		}
		app.Status = target
		app.ApprovedOn = &now
		app.LotNumber = p.LotNumber
		app.AdminNote = p.AdminNote
		app.RejectionReason = ""

	case domain.ApplicationStatusRejected:
		_, err = tx.ExecContext(ctx,
			`UPDATE applications SET status = $1, approved_on = NULL, rejection_reason = $2, admin_note = $3 WHERE id = $4`,
			target, p.RejectionReason, p.AdminNote, app.ID)
		if err != nil {
			return nil, err
		}
		app.Status = target
		app.ApprovedOn = nil
		app.RejectionReason = p.RejectionReason
		app.AdminNote = p.AdminNote

	case domain.ApplicationStatusUnderReview:
		_, err = tx.ExecContext(ctx,
			`UPDATE applications SET status = $1, admin_note = $2 WHERE id = $3`,
			target, p.AdminNote, app.ID)
		if err != nil {
			return nil, err
		}
		app.Status = target
		app.AdminNote = p.AdminNote
	}

	log := &domain.StatusLog{
		ApplicationID: &app.ID,
		FromStatus:    string(fromStatus),
		ToStatus:      string(target),
		ChangedBy:     p.Actor.Subject,
		Note:          p.AdminNote,
	}
	if err := insertStatusLog(ctx, tx, log); err != nil {
		return nil, err
	}

	meta := map[string]any{"from": string(fromStatus), "to": string(target)}
	if p.LotNumber != nil {
		meta["lot_number"] = *p.LotNumber
	}
	event := &domain.AdminEvent{
		ApplicationID: &app.ID,
		Type:          domain.AdminEventStatusChanged,
		Message:       fmt.Sprintf("application moved to %s", target),
		ActorSubject:  p.Actor.Subject,
		Meta:          meta,
	}
	if err := insertAdminEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return app, nil
}

// Reopen is the explicit escape hatch out of a terminal status. Approval
// side effects (approved_on, lot_number) and any rejection reason are
// cleared so the status invariants keep holding.
func (r *applicationRepository) Reopen(ctx context.Context, id int32, actor domain.Actor, note string) (*domain.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	app, err := scanApplication(tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	if !domain.CanReopen(app.Status) {
		return nil, fmt.Errorf("reopen from %s: %w", app.Status, domain.ErrInvalidTransition)
	}
	fromStatus := app.Status

	_, err = tx.ExecContext(ctx,
		`UPDATE applications SET status = $1, approved_on = NULL, lot_number = NULL, rejection_reason = NULL WHERE id = $2`,
		domain.ApplicationStatusUnderReview, app.ID)
	if err != nil {
		return nil, err
	}
	app.Status = domain.ApplicationStatusUnderReview
	app.ApprovedOn = nil
	app.LotNumber = nil
	app.RejectionReason = ""

	log := &domain.StatusLog{
		ApplicationID: &app.ID,
		FromStatus:    string(fromStatus),
		ToStatus:      string(app.Status),
		ChangedBy:     actor.Subject,
		Note:          note,
	}
	if err := insertStatusLog(ctx, tx, log); err != nil {
		return nil, err
	}
	event := &domain.AdminEvent{
		ApplicationID: &app.ID,
		Type:          domain.AdminEventReopened,
		Message:       "application reopened for review",
		ActorSubject:  actor.Subject,
		Meta:          map[string]any{"from": string(fromStatus), "to": string(app.Status)},
	}
	if err := insertAdminEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return app, nil
}
