package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

// insertStatusLog appends a transition record inside the caller's
// transaction. Status mutations and their audit rows commit or roll back
// together; there is no standalone insert path.
func insertStatusLog(ctx context.Context, tx *sql.Tx, log *domain.StatusLog) error {
	query := `INSERT INTO status_logs (commoner_id, application_id, from_status, to_status, changed_by, note, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING id, created_on`
	return tx.QueryRowContext(ctx, query,
		log.CommonerID, log.ApplicationID, log.FromStatus, log.ToStatus, log.ChangedBy, log.Note).
		Scan(&log.ID, &log.CreatedOn)
}

// insertAdminEvent appends an audit event inside the caller's transaction.
func insertAdminEvent(ctx context.Context, tx *sql.Tx, event *domain.AdminEvent) error {
	meta, err := json.Marshal(event.Meta)
	if err != nil {
		return err
	}
	query := `INSERT INTO admin_events (commoner_id, application_id, type, message, actor_subject, meta, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING id, created_on`
	return tx.QueryRowContext(ctx, query,
		event.CommonerID, event.ApplicationID, event.Type, event.Message, event.ActorSubject, meta).
		Scan(&event.ID, &event.CreatedOn)
}

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) ListStatusLogs(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.StatusLog, error) {
	column := "application_id"
	if owner == domain.OwnerKindCommoner {
		column = "commoner_id"
	}
	query := `SELECT id, commoner_id, application_id, from_status, to_status, changed_by, COALESCE(note, ''), created_on
	          FROM status_logs WHERE ` + column + ` = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.StatusLog
	for rows.Next() {
		var log domain.StatusLog
		if err := rows.Scan(&log.ID, &log.CommonerID, &log.ApplicationID, &log.FromStatus, &log.ToStatus, &log.ChangedBy, &log.Note, &log.CreatedOn); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *auditRepository) ListAdminEvents(ctx context.Context, applicationID int32) ([]domain.AdminEvent, error) {
	query := `SELECT id, commoner_id, application_id, type, message, actor_subject, meta, created_on
	          FROM admin_events WHERE application_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AdminEvent
	for rows.Next() {
		var event domain.AdminEvent
		var meta []byte
		if err := rows.Scan(&event.ID, &event.CommonerID, &event.ApplicationID, &event.Type, &event.Message, &event.ActorSubject, &meta, &event.CreatedOn); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &event.Meta); err != nil {
				return nil, err
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
