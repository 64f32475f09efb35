package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquaed/aquaed-backend/internal/model"
)

// AttemptRepository handles quiz attempt history data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Insert persists a single graded attempt.
func (r *AttemptRepository) Insert(ctx context.Context, a *model.QuizAttempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_attempts (visitor_id, score, total, finished_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.VisitorID, a.Score, a.Total, a.FinishedAt,
	).Scan(&a.ID)
}

// BulkInsert persists a batch of graded attempts with a single UNNEST insert.
func (r *AttemptRepository) BulkInsert(ctx context.Context, attempts []model.QuizAttempt) error {
	n := len(attempts)
	if n == 0 {
		return nil
	}

	visitorIDs := make([]uuid.UUID, 0, n)
	scores := make([]int, 0, n)
	totals := make([]int, 0, n)
	finishedAts := make([]time.Time, 0, n)
	for _, a := range attempts {
		visitorIDs = append(visitorIDs, a.VisitorID)
		scores = append(scores, a.Score)
		totals = append(totals, a.Total)
		finishedAts = append(finishedAts, a.FinishedAt)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO quiz_attempts (visitor_id, score, total, finished_at)
		 SELECT u.visitor_id, u.score, u.total, u.finished_at
		 FROM UNNEST($1::uuid[], $2::int[], $3::int[], $4::timestamptz[])
		      AS u (visitor_id, score, total, finished_at)`,
		visitorIDs, scores, totals, finishedAts,
	)
	return err
}

// ListByVisitor returns a visitor's attempts, most recent first.
func (r *AttemptRepository) ListByVisitor(ctx context.Context, visitorID uuid.UUID, limit int) ([]model.QuizAttempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, visitor_id, score, total, finished_at
		 FROM quiz_attempts WHERE visitor_id = $1
		 ORDER BY finished_at DESC
		 LIMIT $2`, visitorID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.QuizAttempt
	for rows.Next() {
		var a model.QuizAttempt
		if err := rows.Scan(&a.ID, &a.VisitorID, &a.Score, &a.Total, &a.FinishedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
