package queries

import (
	"context"

	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrEmailJobNotFound = errs.New("email job not found")

type EmailJobReader interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*EmailJobView, error)
	ListViews(ctx context.Context, limit int32) ([]*EmailJobView, error)
}

type EmailJobQueries interface {
	GetJob(ctx context.Context, id uuid.UUID) (*EmailJobView, error)
	ListJobs(ctx context.Context, limit int32) ([]*EmailJobView, error)
}

type emailJobQueries struct {
	reader EmailJobReader
}

func NewEmailJobQueries(reader EmailJobReader) EmailJobQueries {
	return &emailJobQueries{reader: reader}
}

func (q *emailJobQueries) GetJob(ctx context.Context, id uuid.UUID) (*EmailJobView, error) {
	view, err := q.reader.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEmailJobNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

const defaultListLimit = 100

func (q *emailJobQueries) ListJobs(ctx context.Context, limit int32) ([]*EmailJobView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	views, err := q.reader.ListViews(ctx, limit)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}
