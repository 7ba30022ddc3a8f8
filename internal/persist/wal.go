package persist

import (
	"context"
	"fmt"
)

// ExpEntry is one experience award, appended to the experience log.
type ExpEntry struct {
	Character string
	Amount    int64
	TotalExp  int64
	Level     int
}

// ExpLogRepo is the append-only experience ledger.
type ExpLogRepo struct {
	db *DB
}

func NewExpLogRepo(db *DB) *ExpLogRepo {
	return &ExpLogRepo{db: db}
}

// Append writes a batch of entries in a single transaction.
func (r *ExpLogRepo) Append(ctx context.Context, entries []ExpEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("exp log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO experience_log (character_name, amount, total_exp, level)
			 VALUES ($1, $2, $3, $4)`,
			e.Character, e.Amount, e.TotalExp, e.Level,
		); err != nil {
			return fmt.Errorf("exp log insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Sum returns the total experience logged for a character.
func (r *ExpLogRepo) Sum(ctx context.Context, character string) (int64, error) {
	var total int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM experience_log WHERE character_name = $1`, character,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("exp log sum: %w", err)
	}
	return total, nil
}
