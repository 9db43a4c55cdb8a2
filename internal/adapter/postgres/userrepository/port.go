// package userrepository touches the single slice of user state this service
// owns a write path to: the solved-problem set.
package userrepository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
	querybuilder "gitlab.com/codeclash-2026.net/internal/utils"
)

var _ secondary.UserStore = (*userRepo)(nil)

const solvedProblemsTable = "user_solved_problems"

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserStore {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// AddSolvedProblem records the problem in the user's solved set. The insert
// is a set union: (user_id, problem_id) is the primary key and a conflict is
// a no-op, so repeat accepted submissions neither duplicate nor error, and
// concurrent adds need no locking.
func (r *userRepo) AddSolvedProblem(ctx context.Context, userID string, problemID uuid.UUID) error {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert("user_id", "problem_id", "solved_at").
		Into(solvedProblemsTable).
		Values(userID, problemID, time.Now()).
		OnConflict("user_id", "problem_id").
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to add solved problem", "userId", userID, "problemId", problemID, "error", err)
		return fmt.Errorf("failed to add solved problem: %w", err)
	}
	return nil
}
