// package problemrepository is the read-only PostgreSQL view of problem
// content. Test cases and code stubs live in JSONB columns.
package problemrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
	"gitlab.com/codeclash-2026.net/internal/domain"
	querybuilder "gitlab.com/codeclash-2026.net/internal/utils"
)

var _ secondary.ProblemStore = (*problemRepo)(nil)

type problemRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.ProblemStore {
	return &problemRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// GetProblem retrieves a problem by ID, nil when not found.
func (r *problemRepo) GetProblem(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.Title,
			tbl.VisibleTestCases, tbl.HiddenTestCases,
			tbl.StartCode, tbl.ReferenceSolutions,
			tbl.CreatedAt,
		).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), problemID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var problem domain.Problem
	var visibleJSON, hiddenJSON, startJSON, referenceJSON []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&problem.ID,
		&problem.Title,
		&visibleJSON,
		&hiddenJSON,
		&startJSON,
		&referenceJSON,
		&problem.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	for _, col := range []struct {
		raw  []byte
		dest interface{}
	}{
		{visibleJSON, &problem.VisibleTestCases},
		{hiddenJSON, &problem.HiddenTestCases},
		{startJSON, &problem.StartCode},
		{referenceJSON, &problem.ReferenceSolutions},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			r.logger.Error("Failed to unmarshal problem column", "problemId", problemID, "error", err)
			return nil, fmt.Errorf("failed to unmarshal problem content: %w", err)
		}
	}

	return &problem, nil
}
