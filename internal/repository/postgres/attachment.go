package postgres

import (
	"context"
	"database/sql"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

type attachmentRepository struct {
	db *sql.DB
}

func NewAttachmentRepository(db *sql.DB) repository.AttachmentRepository {
	return &attachmentRepository{db: db}
}

const attachmentColumns = `id, commoner_id, application_id, kind, COALESCE(label, ''), url, storage_key, content_type, size_bytes, uploaded_by, created_on`

func scanAttachment(row interface{ Scan(...any) error }) (*domain.Attachment, error) {
	att := &domain.Attachment{}
	err := row.Scan(&att.ID, &att.CommonerID, &att.ApplicationID, &att.Kind, &att.Label, &att.URL,
		&att.StorageKey, &att.ContentType, &att.SizeBytes, &att.UploadedBy, &att.CreatedOn)
	if err != nil {
		return nil, err
	}
	return att, nil
}

func ownerColumn(owner domain.OwnerKind) string {
	if owner == domain.OwnerKindCommoner {
		return "commoner_id"
	}
	return "application_id"
}

// Create persists the metadata row and its ATTACHMENT_ADDED event together.
func (r *attachmentRepository) Create(ctx context.Context, att *domain.Attachment, event *domain.AdminEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO attachments (commoner_id, application_id, kind, label, url, storage_key, content_type, size_bytes, uploaded_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query, att.CommonerID, att.ApplicationID, att.Kind, att.Label, att.URL,
		att.StorageKey, att.ContentType, att.SizeBytes, att.UploadedBy).
		Scan(&att.ID, &att.CreatedOn)
	if err != nil {
		return err
	}

	if err := insertAdminEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *attachmentRepository) GetByID(ctx context.Context, id int32) (*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`
	att, err := scanAttachment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return att, nil
}

func (r *attachmentRepository) ListByOwner(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE ` + ownerColumn(owner) + ` = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atts []domain.Attachment
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		atts = append(atts, *att)
	}
	return atts, rows.Err()
}

func (r *attachmentRepository) ListKindsByOwner(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.AttachmentKind, error) {
	query := `SELECT DISTINCT kind FROM attachments WHERE ` + ownerColumn(owner) + ` = $1`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kinds []domain.AttachmentKind
	for rows.Next() {
		var kind domain.AttachmentKind
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, rows.Err()
}

// attachmentKindsTx is the in-transaction variant used by lifecycle
// decisions, so requirement resolution sees the same snapshot the status
// update commits against.
func attachmentKindsTx(ctx context.Context, tx *sql.Tx, owner domain.OwnerKind, ownerID int32) ([]domain.AttachmentKind, error) {
	rows, err := tx.QueryContext(ctx, `SELECT DISTINCT kind FROM attachments WHERE `+ownerColumn(owner)+` = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kinds []domain.AttachmentKind
	for rows.Next() {
		var kind domain.AttachmentKind
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, rows.Err()
}

// Delete removes the metadata row and appends the ATTACHMENT_DELETED event
// in one transaction. The event's meta is expected to carry the deleted
// row's kind/url/size so the audit trail survives the deletion.
func (r *attachmentRepository) Delete(ctx context.Context, id int32, event *domain.AdminEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := insertAdminEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *attachmentRepository) ListStorageKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT storage_key FROM attachments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
