// package submissionrepository is the PostgreSQL implementation of the
// submission ledger.
package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
	"gitlab.com/codeclash-2026.net/internal/domain"
	querybuilder "gitlab.com/codeclash-2026.net/internal/utils"
)

var _ secondary.SubmissionLedger = (*submissionRepo)(nil)

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.SubmissionLedger {
	return &submissionRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// CreatePending inserts a new ledger entry. The entry must carry the Pending
// status; the final verdict arrives later through UpdateVerdict.
func (r *submissionRepo) CreatePending(ctx context.Context, submission *domain.Submission) error {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			tbl.ID, tbl.UserID, tbl.ProblemID, tbl.Code, tbl.Language,
			tbl.Status, tbl.TotalTestCases, tbl.TestCasesPassed,
			tbl.Runtime, tbl.Memory, tbl.ErrorMessage,
			tbl.CreatedAt, tbl.UpdatedAt,
		).
		Into(tbl.TableName()).
		Values(
			submission.ID, submission.UserID, submission.ProblemID, submission.Code, submission.Language,
			submission.Status, submission.TotalTestCases, submission.TestCasesPassed,
			submission.Runtime, submission.Memory, submission.ErrorMessage,
			submission.CreatedAt, submission.UpdatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to insert submission", "submissionId", submission.ID, "error", err)
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// UpdateVerdict writes the final verdict fields of an entry in place.
func (r *submissionRepo) UpdateVerdict(ctx context.Context, submission *domain.Submission) error {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName(), querybuilder.UpdateData{
			tbl.Status:          submission.Status,
			tbl.TestCasesPassed: submission.TestCasesPassed,
			tbl.Runtime:         submission.Runtime,
			tbl.Memory:          submission.Memory,
			tbl.ErrorMessage:    submission.ErrorMessage,
			tbl.UpdatedAt:       time.Now(),
		}).
		Where(fmt.Sprintf("%s = ?", tbl.ID), submission.ID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update submission verdict", "submissionId", submission.ID, "error", err)
		return fmt.Errorf("failed to update submission verdict: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("submission %s not found for verdict update", submission.ID)
	}
	return nil
}

// GetByID retrieves a ledger entry, nil when not found.
func (r *submissionRepo) GetByID(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.UserID, tbl.ProblemID, tbl.Code, tbl.Language,
			tbl.Status, tbl.TotalTestCases, tbl.TestCasesPassed,
			tbl.Runtime, tbl.Memory, tbl.ErrorMessage,
			tbl.CreatedAt, tbl.UpdatedAt,
		).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), submissionID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var submission domain.Submission
	if err := r.db.GetContext(ctx, &submission, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &submission, nil
}
