package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// schedulerStore implements driven.SchedulerStore.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// RecordResult logs a cycle result.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.CycleResult) error {
	if result == nil || result.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO cycle_history (id, started_at, ended_at, repos_checked, reports_delivered, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.ID,
		result.StartedAt.UTC().Format(time.RFC3339),
		result.EndedAt.UTC().Format(time.RFC3339),
		result.ReposChecked,
		result.ReportsDelivered,
		boolToInt(result.Success),
		nullString(result.Error))

	if err != nil {
		return fmt.Errorf("recording cycle result: %w", err)
	}
	return nil
}

// History returns recent results, most recent first. A limit of zero or
// less returns every result.
func (s *schedulerStore) History(ctx context.Context, limit int) ([]domain.CycleResult, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, repos_checked, reports_delivered, success, error
		FROM cycle_history
		ORDER BY started_at DESC, seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying cycle history: %w", err)
	}
	defer rows.Close()

	var results []domain.CycleResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanCycleResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cycle history: %w", err)
	}
	return results, nil
}

// PruneHistory keeps only the most recent 'keep' results.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM cycle_history
		WHERE seq NOT IN (
			SELECT seq FROM cycle_history
			ORDER BY started_at DESC, seq DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning cycle history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

func scanCycleResult(rows *sql.Rows) (domain.CycleResult, error) {
	var result domain.CycleResult
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&result.ID, &startedAt, &endedAt,
		&result.ReposChecked, &result.ReportsDelivered, &success, &errMsg); err != nil {
		return result, fmt.Errorf("scanning cycle result: %w", err)
	}

	result.StartedAt = parseTime(startedAt)
	result.EndedAt = parseTime(endedAt)
	result.Success = success == 1
	if errMsg.Valid {
		result.Error = errMsg.String
	}
	return result, nil
}

// parseTime parses an RFC3339 column, returning zero time on error.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
