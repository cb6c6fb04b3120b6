package commands

import (
	"context"
	"fmt"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/domain/reservation"
	infradb "room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/config"
	"room-reservation-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrEnqueueFailed = errs.New("failed to enqueue email")

// EmailEnqueuer inserts outbound notification jobs. Delivery is the
// dispatcher's business; enqueueing only records the intent.
type EmailEnqueuer struct {
	jobs  EmailJobRepository
	clock clock.Clock
	cfg   config.QueueConfig
}

func NewEmailEnqueuer(jobs EmailJobRepository, clk clock.Clock, cfg config.QueueConfig) *EmailEnqueuer {
	return &EmailEnqueuer{
		jobs:  jobs,
		clock: clk,
		cfg:   cfg,
	}
}

func (e *EmailEnqueuer) Enqueue(ctx context.Context, tx infradb.DBTX, recipient, subject, body string, emailType mailqueue.EmailType, reservationID *uuid.UUID) (uuid.UUID, error) {
	job, err := mailqueue.NewJob(recipient, subject, body, emailType, reservationID, e.cfg.MaxAttempts, e.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrEnqueueFailed)
	}

	if err := e.jobs.Create(ctx, tx, job); err != nil {
		return uuid.Nil, errs.Mark(err, ErrEnqueueFailed)
	}

	return job.ID, nil
}

const dateLayout = "02/01/2006"

func confirmationEmail(guestName string, res *reservation.Reservation) (subject, body string) {
	subject = "Booking Confirmation - Payment Received"
	body = fmt.Sprintf(`
<h1>Booking Confirmation</h1>
<p>Dear %s,</p>
<p>Your payment has been received and your booking is now confirmed.</p>
<p><strong>Reservation Details:</strong></p>
<ul>
    <li>Reservation ID: %s</li>
    <li>Entry date: %s</li>
    <li>Departure date: %s</li>
    <li>Number of nights: %d</li>
    <li>Number of guests: %d</li>
</ul>
<p>Thank you for choosing our hotel. We look forward to your stay!</p>
`,
		guestName,
		res.ID(),
		res.Period().CheckIn().Format(dateLayout),
		res.Period().CheckOut().Format(dateLayout),
		res.Nights(),
		res.Guests(),
	)
	return subject, body
}

func cancellationEmail(guestName string, res *reservation.Reservation) (subject, body string) {
	subject = "Reservation Cancellation Confirmation"
	body = fmt.Sprintf(`
<h1>Reservation Cancellation Confirmation</h1>
<p>Dear %s,</p>
<p>Your reservation has been successfully cancelled.</p>
<p><strong>Reservation Details:</strong></p>
<ul>
    <li>Entry date: %s</li>
    <li>Departure date: %s</li>
    <li>Number of nights: %d</li>
    <li>Number of guests: %d</li>
</ul>
<p>If you have any questions, please do not hesitate to contact us.</p>
`,
		guestName,
		res.Period().CheckIn().Format(dateLayout),
		res.Period().CheckOut().Format(dateLayout),
		res.Nights(),
		res.Guests(),
	)
	return subject, body
}
