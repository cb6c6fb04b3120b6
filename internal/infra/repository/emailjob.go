package repository

import (
	"context"
	"time"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/pgconv"
	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type EmailJobRepository struct {
	db db.DBTX
}

func NewEmailJobRepository(pool db.DBTX) *EmailJobRepository {
	return &EmailJobRepository{db: pool}
}

const insertEmailJobSQL = `
INSERT INTO email_jobs (id, recipient, subject, body, email_type, metadata, reservation_id,
                        status, attempts, max_attempts, scheduled_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (r *EmailJobRepository) Create(ctx context.Context, tx db.DBTX, job *mailqueue.Job) error {
	_, err := tx.Exec(ctx, insertEmailJobSQL,
		job.ID, job.Recipient, job.Subject, job.Body, string(job.EmailType), job.Metadata,
		job.ReservationID, job.Status.String(), job.Attempts, job.MaxAttempts, job.ScheduledAt, job.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create email job", err)
	}

	return nil
}

const claimDueJobsSQL = `
UPDATE email_jobs
SET scheduled_at = $2
WHERE id IN (
    SELECT id
    FROM email_jobs
    WHERE status IN ('pending', 'retrying') AND scheduled_at <= $1
    ORDER BY scheduled_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
RETURNING id, recipient, subject, body, email_type, metadata, reservation_id,
          status, attempts, max_attempts, scheduled_at, sent_at, last_error, created_at`

// ClaimDue leases the due jobs for one drain pass by pushing scheduled_at to
// leaseUntil, so a crashed pass retries the batch once the lease expires.
// SKIP LOCKED keeps concurrent drain passes from picking the same job; the
// delivery outcome is written later in its own transaction.
func (r *EmailJobRepository) ClaimDue(ctx context.Context, tx db.DBTX, now, leaseUntil time.Time, limit int32) ([]*mailqueue.Job, error) {
	rows, err := tx.Query(ctx, claimDueJobsSQL, now, leaseUntil, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due email jobs", err)
	}
	defer rows.Close()

	var result []*mailqueue.Job
	for rows.Next() {
		var (
			job       mailqueue.Job
			emailType string
			status    string
			lastError *string
		)
		err := rows.Scan(
			&job.ID, &job.Recipient, &job.Subject, &job.Body, &emailType, &job.Metadata, &job.ReservationID,
			&status, &job.Attempts, &job.MaxAttempts, &job.ScheduledAt, &job.SentAt, &lastError, &job.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan email job row", err)
		}

		job.EmailType = mailqueue.EmailType(emailType)
		job.Status = mailqueue.Status(status)
		if lastError != nil {
			job.LastError = *lastError
		}

		result = append(result, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate email job rows", err)
	}

	return result, nil
}

const updateEmailJobSQL = `
UPDATE email_jobs
SET status = $2, attempts = $3, scheduled_at = $4, sent_at = $5, last_error = $6
WHERE id = $1`

// UpdateDeliveryState writes the outcome of one delivery attempt (or a
// manual re-enqueue).
func (r *EmailJobRepository) UpdateDeliveryState(ctx context.Context, tx db.DBTX, job *mailqueue.Job) error {
	tag, err := tx.Exec(ctx, updateEmailJobSQL,
		job.ID, job.Status.String(), job.Attempts, job.ScheduledAt, job.SentAt, job.LastError,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update email job", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("email job not found", nil, infra.KindNotFound)
	}

	return nil
}

const selectEmailJobSQL = `
SELECT id, recipient, subject, body, email_type, metadata, reservation_id,
       status, attempts, max_attempts, scheduled_at, sent_at, last_error, created_at
FROM email_jobs
WHERE id = $1`

func (r *EmailJobRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*mailqueue.Job, error) {
	var (
		job       mailqueue.Job
		emailType string
		status    string
		lastError *string
	)
	err := tx.QueryRow(ctx, selectEmailJobSQL, id).Scan(
		&job.ID, &job.Recipient, &job.Subject, &job.Body, &emailType, &job.Metadata, &job.ReservationID,
		&status, &job.Attempts, &job.MaxAttempts, &job.ScheduledAt, &job.SentAt, &lastError, &job.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("email job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find email job", err)
	}

	job.EmailType = mailqueue.EmailType(emailType)
	job.Status = mailqueue.Status(status)
	if lastError != nil {
		job.LastError = *lastError
	}

	return &job, nil
}

const selectEmailJobViewsSQL = `
SELECT id, recipient, subject, email_type, status, attempts, max_attempts,
       scheduled_at, sent_at, NULLIF(last_error, ''), reservation_id, created_at
FROM email_jobs
ORDER BY created_at DESC
LIMIT $1`

func (r *EmailJobRepository) ListViews(ctx context.Context, limit int32) ([]*queries.EmailJobView, error) {
	rows, err := r.db.Query(ctx, selectEmailJobViewsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list email jobs", err)
	}
	defer rows.Close()

	var result []*queries.EmailJobView
	for rows.Next() {
		var view queries.EmailJobView
		err := rows.Scan(
			&view.ID, &view.Recipient, &view.Subject, &view.EmailType, &view.Status,
			&view.Attempts, &view.MaxAttempts, &view.ScheduledAt, &view.SentAt,
			&view.LastError, &view.ReservationID, &view.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan email job view", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate email job views", err)
	}

	return result, nil
}

const selectEmailJobViewSQL = `
SELECT id, recipient, subject, email_type, status, attempts, max_attempts,
       scheduled_at, sent_at, NULLIF(last_error, ''), reservation_id, created_at
FROM email_jobs
WHERE id = $1`

func (r *EmailJobRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.EmailJobView, error) {
	var view queries.EmailJobView
	err := r.db.QueryRow(ctx, selectEmailJobViewSQL, id).Scan(
		&view.ID, &view.Recipient, &view.Subject, &view.EmailType, &view.Status,
		&view.Attempts, &view.MaxAttempts, &view.ScheduledAt, &view.SentAt,
		&view.LastError, &view.ReservationID, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("email job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find email job view", err)
	}

	return &view, nil
}
