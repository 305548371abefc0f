package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

func applicationRows(id, userID int32, status domain.ApplicationStatus) *sqlmock.Rows {
	commonerID := int32(5)
	return sqlmock.NewRows([]string{"id", "user_id", "commoner_id", "applicant_name", "purpose", "already_has_land",
		"status", "lot_number", "rejection_reason", "admin_note", "created_on", "submitted_on", "approved_on"}).
		AddRow(id, userID, commonerID, "Mary Byrne", "grazing", false, status, nil, "", "", time.Now(), time.Now(), nil)
}

func applicationRowsWithLand(id, userID int32, status domain.ApplicationStatus) *sqlmock.Rows {
	commonerID := int32(5)
	return sqlmock.NewRows([]string{"id", "user_id", "commoner_id", "applicant_name", "purpose", "already_has_land",
		"status", "lot_number", "rejection_reason", "admin_note", "created_on", "submitted_on", "approved_on"}).
		AddRow(id, userID, commonerID, "Mary Byrne", "grazing", true, status, nil, "", "", time.Now(), time.Now(), nil)
}

func TestApplicationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		commonerID := int32(5)
		app := &domain.Application{
			UserID:        3,
			CommonerID:    &commonerID,
			ApplicantName: "Mary Byrne",
			Purpose:       "grazing",
		}

		mock.ExpectQuery("INSERT INTO applications").
			WithArgs(app.UserID, app.CommonerID, app.ApplicantName, app.Purpose, false, domain.ApplicationStatusDraft).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))

		err := repo.Create(ctx, app)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusDraft, app.Status)
	})

	t.Run("DuplicateUserMapsToConflict", func(t *testing.T) {
		app := &domain.Application{UserID: 3, ApplicantName: "Mary Byrne"}

		mock.ExpectQuery("INSERT INTO applications").
			WillReturnError(&pq.Error{Code: pq.ErrorCode("23505")})

		err := repo.Create(ctx, app)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestApplicationRepository_Submit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	ctx := context.Background()
	actor := domain.Actor{UserID: 3, Subject: "mary@portal"}

	t.Run("DraftSubmits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusDraft))
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusSubmitted, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO status_logs").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectQuery("INSERT INTO admin_events").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectCommit()

		app, err := repo.Submit(ctx, 1, actor)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusSubmitted, app.Status)
		assert.NotNil(t, app.SubmittedOn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ResubmitIsInvalid", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusSubmitted))
		mock.ExpectRollback()

		_, err := repo.Submit(ctx, 1, actor)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestApplicationRepository_Decide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	ctx := context.Background()
	actor := domain.Actor{UserID: 1, Subject: "admin@parish", Staff: true}

	t.Run("ApproveAssignsLot", func(t *testing.T) {
		lot := "LOT-42"
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusUnderReview))
		mock.ExpectQuery("SELECT DISTINCT kind FROM attachments").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("DRAWINGS").AddRow("BUSINESS_PLAN"))
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusApproved, sqlmock.AnyArg(), &lot, "all docs verified", int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO status_logs").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectQuery("INSERT INTO admin_events").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectCommit()

		app, err := repo.Decide(ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionApprove,
			Actor:         actor,
			AdminNote:     "all docs verified",
			LotNumber:     &lot,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApproved, app.Status)
		assert.Equal(t, &lot, app.LotNumber)
		assert.NotNil(t, app.ApprovedOn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ApproveWithMissingDocumentsRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusUnderReview))
		mock.ExpectQuery("SELECT DISTINCT kind FROM attachments").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"kind"}))
		mock.ExpectRollback()

		_, err := repo.Decide(ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionApprove,
			Actor:         actor,
		})

		var reqErr *domain.RequirementsNotMetError
		assert.ErrorAs(t, err, &reqErr)
		assert.Equal(t, domain.OwnerKindApplication, reqErr.Owner)
		assert.Equal(t, []domain.AttachmentKind{domain.AttachmentKindDrawings, domain.AttachmentKindBusinessPlan}, reqErr.Missing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ApproveWithLandRequiresPaymentProof", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRowsWithLand(1, 3, domain.ApplicationStatusUnderReview))
		mock.ExpectQuery("SELECT DISTINCT kind FROM attachments").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("DRAWINGS").AddRow("BUSINESS_PLAN"))
		mock.ExpectRollback()

		_, err := repo.Decide(ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionApprove,
			Actor:         actor,
		})

		var reqErr *domain.RequirementsNotMetError
		assert.ErrorAs(t, err, &reqErr)
		assert.Equal(t, []domain.AttachmentKind{domain.AttachmentKindProofOfPayment}, reqErr.Missing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DecideOnTerminalStatusFails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusRejected))
		mock.ExpectRollback()

		_, err := repo.Decide(ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionApprove,
			Actor:         actor,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("MoveToUnderReview", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusSubmitted))
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusUnderReview, "checking lineage", int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO status_logs").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectQuery("INSERT INTO admin_events").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectCommit()

		app, err := repo.Decide(ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionUnderReview,
			Actor:         actor,
			AdminNote:     "checking lineage",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, app.Status)
	})

	t.Run("RepeatedReviewReplacesNote", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusUnderReview))
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusUnderReview, "awaiting surveyor report", int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO status_logs").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(2, time.Now()))
		mock.ExpectQuery("INSERT INTO admin_events").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(2, time.Now()))
		mock.ExpectCommit()

		app, err := repo.Decide(ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionUnderReview,
			Actor:         actor,
			AdminNote:     "awaiting surveyor report",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, app.Status)
		assert.Equal(t, "awaiting surveyor report", app.AdminNote)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_Reopen(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	ctx := context.Background()
	actor := domain.Actor{UserID: 1, Subject: "admin@parish", Staff: true}

	t.Run("ReopenRejectedApplication", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusRejected))
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusUnderReview, int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO status_logs").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectQuery("INSERT INTO admin_events").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectCommit()

		app, err := repo.Reopen(ctx, 1, actor, "appeal upheld")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, app.Status)
		assert.Nil(t, app.LotNumber)
		assert.Nil(t, app.ApprovedOn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReopenNonTerminalFails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusDraft))
		mock.ExpectRollback()

		_, err := repo.Reopen(ctx, 1, actor, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestApplicationRepository_ListStaleInReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs(domain.ApplicationStatusSubmitted, domain.ApplicationStatusUnderReview, 14).
		WillReturnRows(applicationRows(1, 3, domain.ApplicationStatusUnderReview))

	apps, err := repo.ListStaleInReview(context.Background(), 14)
	assert.NoError(t, err)
	assert.Len(t, apps, 1)
}
